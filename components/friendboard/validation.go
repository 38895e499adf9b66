package friendboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator checks a widget config payload against its type descriptor
// before it can reach a renderer.
type ConfigValidator interface {
	Validate(desc WidgetTypeDescriptor, config map[string]any) error
}

// SchemaValidator compiles descriptor schemas on first use and validates
// configuration maps against them.
type SchemaValidator struct {
	mu       sync.RWMutex
	compiled map[WidgetTypeID]*jsonschema.Schema
}

// NewSchemaValidator builds a validator backed by jsonschema v5.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{
		compiled: make(map[WidgetTypeID]*jsonschema.Schema),
	}
}

// Validate ensures config satisfies the descriptor schema. Descriptors with
// no schema accept anything.
func (v *SchemaValidator) Validate(desc WidgetTypeDescriptor, config map[string]any) error {
	if len(desc.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(desc)
	if err != nil {
		return err
	}
	payload := map[string]any{}
	if config != nil {
		data, err := json.Marshal(config)
		if err != nil {
			return fmt.Errorf("friendboard: marshal config for %s: %w", desc.ID, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("friendboard: normalize config for %s: %w", desc.ID, err)
		}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("friendboard: configuration for %s failed validation: %w", desc.ID, err)
	}
	return nil
}

func (v *SchemaValidator) schemaFor(desc WidgetTypeDescriptor) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[desc.ID]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(desc.Schema)
	if err != nil {
		return nil, fmt.Errorf("friendboard: marshal schema %s: %w", desc.ID, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(desc.ID) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("friendboard: load schema %s: %w", desc.ID, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("friendboard: compile schema %s: %w", desc.ID, err)
	}
	v.mu.Lock()
	v.compiled[desc.ID] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopConfigValidator struct{}

func (noopConfigValidator) Validate(WidgetTypeDescriptor, map[string]any) error { return nil }
