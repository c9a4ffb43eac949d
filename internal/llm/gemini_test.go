package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash-lite", "gemini-2.5-flash-lite"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"concept": map[string]any{"type": "string"},
			"minutes": map[string]any{"type": "integer"},
			"tier":    map[string]any{"type": "string", "enum": []any{"low", "medium", "high"}},
			"practice": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"concept", "minutes"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["concept"].Type != "STRING" {
		t.Fatalf("expected STRING for concept, got %s", schema.Properties["concept"].Type)
	}
	if schema.Properties["minutes"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for minutes, got %s", schema.Properties["minutes"].Type)
	}
	if len(schema.Properties["tier"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["tier"].Enum))
	}
	if schema.Properties["practice"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for practice, got %s", schema.Properties["practice"].Type)
	}
	if schema.Properties["practice"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for practice items, got %s", schema.Properties["practice"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_NullableAndMinimum(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type":    []any{"integer", "null"},
		"minimum": float64(0),
	})
	if schema.Type != "INTEGER" {
		t.Fatalf("expected INTEGER, got %s", schema.Type)
	}
	if schema.Nullable == nil || !*schema.Nullable {
		t.Fatal("expected nullable schema")
	}
	if schema.Minimum == nil || *schema.Minimum != 0 {
		t.Fatalf("expected minimum 0, got %v", schema.Minimum)
	}
	if got := buildGeminiSchema(map[string]any{"type": "date"}).Type; got != "STRING" {
		t.Errorf("unknown type mapped to %s, want STRING", got)
	}
}
