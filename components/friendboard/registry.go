package friendboard

// TypeRegistry is a closed catalog of widget types. The multiplicity rule is
// an allow-list: only types explicitly marked AllowsMultiple may appear more
// than once per friend, and unknown ids answer false.
type TypeRegistry struct {
	order []WidgetTypeID
	byID  map[WidgetTypeID]WidgetTypeDescriptor
}

// NewTypeRegistry builds the registry over the default catalog.
func NewTypeRegistry() *TypeRegistry {
	return NewTypeRegistryWith(DefaultTypeDescriptors())
}

// NewTypeRegistryWith builds a registry over an explicit catalog. Later
// duplicates of an id replace earlier ones without disturbing catalog order.
func NewTypeRegistryWith(descriptors []WidgetTypeDescriptor) *TypeRegistry {
	reg := &TypeRegistry{byID: make(map[WidgetTypeID]WidgetTypeDescriptor, len(descriptors))}
	for _, desc := range descriptors {
		if desc.ID == "" {
			continue
		}
		if _, seen := reg.byID[desc.ID]; !seen {
			reg.order = append(reg.order, desc.ID)
		}
		reg.byID[desc.ID] = desc
	}
	return reg
}

// Descriptor fetches a catalog entry by id.
func (r *TypeRegistry) Descriptor(id WidgetTypeID) (WidgetTypeDescriptor, bool) {
	desc, ok := r.byID[id]
	return desc, ok
}

// Descriptors returns the catalog in declaration order.
func (r *TypeRegistry) Descriptors() []WidgetTypeDescriptor {
	out := make([]WidgetTypeDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// AllowsMultiple reports the multiplicity rule for a type. Unknown ids are
// single-instance.
func (r *TypeRegistry) AllowsMultiple(id WidgetTypeID) bool {
	desc, ok := r.byID[id]
	return ok && desc.AllowsMultiple
}
