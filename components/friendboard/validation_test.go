package friendboard

import "testing"

func TestSchemaValidatorRejectsInvalidPayload(t *testing.T) {
	validator := NewSchemaValidator()
	desc := WidgetTypeDescriptor{
		ID: TypeStickyNote,
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"text"},
			"properties": map[string]any{
				"text": map[string]any{"type": "string", "minLength": 1},
			},
			"additionalProperties": false,
		},
	}
	if err := validator.Validate(desc, map[string]any{"text": "see you friday"}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if err := validator.Validate(desc, map[string]any{}); err == nil {
		t.Fatal("expected validation error for missing text")
	}
	if err := validator.Validate(desc, map[string]any{"text": "hi", "font": "comic"}); err == nil {
		t.Fatal("expected validation error for unexpected property")
	}
}

func TestSchemaValidatorAcceptsSchemalessDescriptors(t *testing.T) {
	validator := NewSchemaValidator()
	desc := WidgetTypeDescriptor{ID: "freeform"}
	if err := validator.Validate(desc, map[string]any{"anything": true}); err != nil {
		t.Fatalf("expected schemaless descriptor to accept config, got %v", err)
	}
}

func TestSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewSchemaValidator()
	desc := WidgetTypeDescriptor{
		ID:     TypeGuestbook,
		Schema: map[string]any{"type": "object"},
	}
	if err := validator.Validate(desc, nil); err != nil {
		t.Fatalf("unexpected error validating config: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to contain 1 entry, got %d", len(validator.compiled))
	}
	if err := validator.Validate(desc, map[string]any{}); err != nil {
		t.Fatalf("unexpected error on cached validation: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to remain 1 entry, got %d", len(validator.compiled))
	}
}

func TestDefaultCatalogSchemasCompile(t *testing.T) {
	validator := NewSchemaValidator()
	valid := map[WidgetTypeID]map[string]any{
		TypeMusicPlayer: {"tracks": []any{map[string]any{"title": "Mix", "url": "https://example.com/a.mp3"}}},
		TypePixelArt:    {"width": 16, "height": 16},
		TypeStickyNote:  {"text": "hello"},
		TypeCountdown:   {"target": "2026-12-24T18:00:00Z", "label": "Next visit"},
	}
	for _, desc := range DefaultTypeDescriptors() {
		config := valid[desc.ID]
		if config == nil {
			continue
		}
		if err := validator.Validate(desc, config); err != nil {
			t.Fatalf("catalog schema %s rejected valid config: %v", desc.ID, err)
		}
	}
}
