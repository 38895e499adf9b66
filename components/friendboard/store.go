package friendboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var errMissingProvider = errors.New("friendboard: persistence provider not configured")

// StoreOptions configures the instance store. Every collaborator is an
// interface so applications can swap implementations.
type StoreOptions struct {
	Provider  PersistenceProvider
	Registry  *TypeRegistry
	Validator ConfigValidator
	Hook      RefreshHook
	Telemetry Telemetry
	Now       func() time.Time
	NewID     func() string
}

// InstanceStore owns widget instance collections per friend. It validates the
// catalog and multiplicity invariants against its last-known snapshot
// immediately before issuing each conditional write, so a losing concurrent
// writer surfaces ErrConflict instead of corrupting state. On conflict the
// cached snapshot is dropped; callers re-fetch List and retry.
type InstanceStore struct {
	opts StoreOptions

	mu     sync.Mutex
	cache  map[string]*friendSnapshot
	owners map[string]string
}

type friendSnapshot struct {
	instances []WidgetInstance
	revision  Revision
}

// NewInstanceStore builds a store with safe defaults for every collaborator
// except the provider, which callers must supply.
func NewInstanceStore(opts StoreOptions) *InstanceStore {
	if opts.Registry == nil {
		opts.Registry = NewTypeRegistry()
	}
	if opts.Validator == nil {
		opts.Validator = NewSchemaValidator()
	}
	if opts.Hook == nil {
		opts.Hook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &InstanceStore{
		opts:   opts,
		cache:  make(map[string]*friendSnapshot),
		owners: make(map[string]string),
	}
}

// Registry exposes the widget catalog backing this store.
func (s *InstanceStore) Registry() *TypeRegistry {
	return s.opts.Registry
}

// List returns a friend's instances ordered by Order ascending, ties broken
// by CreatedAt ascending. The returned slice is a copy.
func (s *InstanceStore) List(ctx context.Context, friendID string) ([]WidgetInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load(ctx, friendID)
	if err != nil {
		return nil, err
	}
	out := make([]WidgetInstance, len(snap.instances))
	copy(out, snap.instances)
	sortInstances(out)
	return out, nil
}

// Create places a new instance of typeID for the friend, appended after the
// current highest order.
func (s *InstanceStore) Create(ctx context.Context, session Session, friendID string, typeID WidgetTypeID, config map[string]any) (WidgetInstance, error) {
	if err := s.authorize(session); err != nil {
		return WidgetInstance{}, err
	}
	desc, ok := s.opts.Registry.Descriptor(typeID)
	if !ok {
		return WidgetInstance{}, fmt.Errorf("%w: %s", ErrUnknownType, typeID)
	}
	if err := s.opts.Validator.Validate(desc, config); err != nil {
		return WidgetInstance{}, err
	}

	s.mu.Lock()
	snap, err := s.load(ctx, friendID)
	if err != nil {
		s.mu.Unlock()
		return WidgetInstance{}, err
	}
	if !desc.AllowsMultiple {
		for _, inst := range snap.instances {
			if inst.Type == typeID {
				s.mu.Unlock()
				return WidgetInstance{}, fmt.Errorf("%w: %s", ErrMultiplicity, typeID)
			}
		}
	}
	now := s.opts.Now().UTC()
	instance := WidgetInstance{
		ID:        s.opts.NewID(),
		FriendID:  friendID,
		Type:      typeID,
		Order:     nextOrder(snap.instances),
		Config:    config,
		CreatedAt: now,
		UpdatedAt: now,
	}
	rev, err := s.opts.Provider.SaveInstance(ctx, instance, snap.revision)
	if err != nil {
		s.dropLocked(friendID, err)
		s.mu.Unlock()
		return WidgetInstance{}, err
	}
	snap.instances = append(snap.instances, instance)
	snap.revision = rev
	s.owners[instance.ID] = friendID
	s.mu.Unlock()

	s.record(ctx, "friendboard.widget.create", map[string]any{
		"friend_id": friendID,
		"type":      string(typeID),
	})
	return instance, s.emit(ctx, InstanceEvent{FriendID: friendID, Op: OpCreate})
}

// Update patches an instance's config and/or order. Type and friend are
// immutable; changing type is delete + create so the multiplicity invariant
// holds atomically.
func (s *InstanceStore) Update(ctx context.Context, session Session, instanceID string, patch UpdatePatch) (WidgetInstance, error) {
	if err := s.authorize(session); err != nil {
		return WidgetInstance{}, err
	}

	s.mu.Lock()
	friendID, idx, snap, err := s.locate(ctx, instanceID)
	if err != nil {
		s.mu.Unlock()
		return WidgetInstance{}, err
	}
	next := snap.instances[idx]
	if patch.Config != nil {
		if desc, ok := s.opts.Registry.Descriptor(next.Type); ok {
			if err := s.opts.Validator.Validate(desc, patch.Config); err != nil {
				s.mu.Unlock()
				return WidgetInstance{}, err
			}
		}
		next.Config = patch.Config
	}
	if patch.Order != nil {
		next.Order = *patch.Order
	}
	next.UpdatedAt = s.opts.Now().UTC()
	rev, err := s.opts.Provider.SaveInstance(ctx, next, snap.revision)
	if err != nil {
		s.dropLocked(friendID, err)
		s.mu.Unlock()
		return WidgetInstance{}, err
	}
	snap.instances[idx] = next
	snap.revision = rev
	s.mu.Unlock()

	s.record(ctx, "friendboard.widget.update", map[string]any{
		"friend_id":   friendID,
		"instance_id": instanceID,
	})
	return next, s.emit(ctx, InstanceEvent{FriendID: friendID, Op: OpUpdate})
}

// Reorder reassigns order 0..n-1 following the given sequence. The id set
// must exactly match the friend's current instances; otherwise the call is
// rejected and no partial reorder is observable.
func (s *InstanceStore) Reorder(ctx context.Context, session Session, friendID string, orderedIDs []string) error {
	if err := s.authorize(session); err != nil {
		return err
	}

	s.mu.Lock()
	snap, err := s.load(ctx, friendID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	byID := make(map[string]WidgetInstance, len(snap.instances))
	for _, inst := range snap.instances {
		byID[inst.ID] = inst
	}
	if len(orderedIDs) != len(byID) {
		s.mu.Unlock()
		return ErrSetMismatch
	}
	seen := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := byID[id]; !ok {
			s.mu.Unlock()
			return ErrSetMismatch
		}
		if _, dup := seen[id]; dup {
			s.mu.Unlock()
			return ErrSetMismatch
		}
		seen[id] = struct{}{}
	}
	rev, err := s.opts.Provider.SaveOrder(ctx, friendID, orderedIDs, snap.revision)
	if err != nil {
		s.dropLocked(friendID, err)
		s.mu.Unlock()
		return err
	}
	now := s.opts.Now().UTC()
	reordered := make([]WidgetInstance, 0, len(orderedIDs))
	for pos, id := range orderedIDs {
		inst := byID[id]
		inst.Order = pos
		inst.UpdatedAt = now
		reordered = append(reordered, inst)
	}
	snap.instances = reordered
	snap.revision = rev
	s.mu.Unlock()

	s.record(ctx, "friendboard.widget.reorder", map[string]any{
		"friend_id": friendID,
		"count":     len(orderedIDs),
	})
	return s.emit(ctx, InstanceEvent{FriendID: friendID, Op: OpReorder})
}

// Delete removes one instance. Remaining order values keep their gaps;
// ordering is by relative value, not contiguity.
func (s *InstanceStore) Delete(ctx context.Context, session Session, instanceID string) error {
	if err := s.authorize(session); err != nil {
		return err
	}

	s.mu.Lock()
	friendID, idx, snap, err := s.locate(ctx, instanceID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	rev, err := s.opts.Provider.DeleteInstance(ctx, instanceID, snap.revision)
	if err != nil {
		s.dropLocked(friendID, err)
		s.mu.Unlock()
		return err
	}
	snap.instances = append(snap.instances[:idx], snap.instances[idx+1:]...)
	snap.revision = rev
	delete(s.owners, instanceID)
	s.mu.Unlock()

	s.record(ctx, "friendboard.widget.delete", map[string]any{
		"friend_id":   friendID,
		"instance_id": instanceID,
	})
	return s.emit(ctx, InstanceEvent{FriendID: friendID, Op: OpDelete})
}

// DeleteAllForFriend is the cascade hook invoked when a friend record is
// removed. Other friends' collections are untouched.
func (s *InstanceStore) DeleteAllForFriend(ctx context.Context, session Session, friendID string) error {
	if err := s.authorize(session); err != nil {
		return err
	}

	s.mu.Lock()
	snap, err := s.load(ctx, friendID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	removed := 0
	rev := snap.revision
	for _, inst := range snap.instances {
		rev, err = s.opts.Provider.DeleteInstance(ctx, inst.ID, rev)
		if err != nil {
			s.dropLocked(friendID, err)
			s.mu.Unlock()
			return err
		}
		delete(s.owners, inst.ID)
		removed++
	}
	snap.instances = nil
	snap.revision = rev
	s.mu.Unlock()

	if removed == 0 {
		return nil
	}
	s.record(ctx, "friendboard.widget.cascade", map[string]any{
		"friend_id": friendID,
		"count":     removed,
	})
	return s.emit(ctx, InstanceEvent{FriendID: friendID, Op: OpCascade})
}

// Invalidate drops the cached snapshot for a friend so the next List
// re-fetches from the provider. Callers use it when retrying after
// ErrConflict.
func (s *InstanceStore) Invalidate(friendID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(friendID)
}

func (s *InstanceStore) authorize(session Session) error {
	if s.opts.Provider == nil {
		return errMissingProvider
	}
	if !session.CanEdit() {
		return ErrForbidden
	}
	return nil
}

// load returns the cached snapshot for a friend, fetching it from the
// provider on first access. Caller holds s.mu.
func (s *InstanceStore) load(ctx context.Context, friendID string) (*friendSnapshot, error) {
	if s.opts.Provider == nil {
		return nil, errMissingProvider
	}
	if snap, ok := s.cache[friendID]; ok {
		return snap, nil
	}
	loaded, err := s.opts.Provider.LoadInstances(ctx, friendID)
	if err != nil {
		return nil, err
	}
	snap := &friendSnapshot{
		instances: append([]WidgetInstance(nil), loaded.Instances...),
		revision:  loaded.Revision,
	}
	s.cache[friendID] = snap
	for _, inst := range snap.instances {
		s.owners[inst.ID] = friendID
	}
	return snap, nil
}

// locate resolves an instance id to its friend snapshot. Caller holds s.mu.
func (s *InstanceStore) locate(ctx context.Context, instanceID string) (string, int, *friendSnapshot, error) {
	friendID, ok := s.owners[instanceID]
	if !ok {
		return "", 0, nil, fmt.Errorf("%w: instance %s", ErrNotFound, instanceID)
	}
	snap, err := s.load(ctx, friendID)
	if err != nil {
		return "", 0, nil, err
	}
	for idx, inst := range snap.instances {
		if inst.ID == instanceID {
			return friendID, idx, snap, nil
		}
	}
	return "", 0, nil, fmt.Errorf("%w: instance %s", ErrNotFound, instanceID)
}

// dropLocked evicts the friend's snapshot when a conditional write loses the
// race. Caller holds s.mu.
func (s *InstanceStore) dropLocked(friendID string, err error) {
	if errors.Is(err, ErrConflict) {
		s.evictLocked(friendID)
	}
}

func (s *InstanceStore) evictLocked(friendID string) {
	snap, ok := s.cache[friendID]
	if !ok {
		return
	}
	for _, inst := range snap.instances {
		delete(s.owners, inst.ID)
	}
	delete(s.cache, friendID)
}

func (s *InstanceStore) emit(ctx context.Context, event InstanceEvent) error {
	return s.opts.Hook.InstanceChanged(ctx, event)
}

func (s *InstanceStore) record(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func sortInstances(instances []WidgetInstance) {
	sort.SliceStable(instances, func(i, j int) bool {
		if instances[i].Order != instances[j].Order {
			return instances[i].Order < instances[j].Order
		}
		return instances[i].CreatedAt.Before(instances[j].CreatedAt)
	})
}

func nextOrder(instances []WidgetInstance) int {
	if len(instances) == 0 {
		return 0
	}
	max := instances[0].Order
	for _, inst := range instances[1:] {
		if inst.Order > max {
			max = inst.Order
		}
	}
	return max + 1
}
