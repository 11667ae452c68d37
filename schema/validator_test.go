package schema

import (
	"errors"
	"testing"
)

func panelSchema() *Schema {
	return Object().
		Prop("title", String().MinLength(1)).
		Prop("width", Integer().Minimum(10).Maximum(120).Default(30)).
		Prop("collapsible", Boolean().Default(false)).
		Prop("mode", StringEnum("compact", "full").Default("full")).
		Required("title").
		AdditionalProperties(false).
		Build()
}

func TestValidator_ApplyDefaults(t *testing.T) {
	v := NewValidator(panelSchema())

	out, err := v.Apply(map[string]any{"title": "Filters"})
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	if out["title"] != "Filters" {
		t.Errorf("title = %v, want Filters", out["title"])
	}
	if out["width"] != 30 {
		t.Errorf("width default = %v, want 30", out["width"])
	}
	if out["collapsible"] != false {
		t.Errorf("collapsible default = %v, want false", out["collapsible"])
	}
	if out["mode"] != "full" {
		t.Errorf("mode default = %v, want full", out["mode"])
	}
}

func TestValidator_ApplyDoesNotMutateInput(t *testing.T) {
	v := NewValidator(panelSchema())

	raw := map[string]any{"title": "Filters"}
	if _, err := v.Apply(raw); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if len(raw) != 1 {
		t.Errorf("input map mutated: %v", raw)
	}
}

func TestValidator_TypeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"wrong string type", map[string]any{"title": 7}},
		{"wrong bool type", map[string]any{"title": "t", "collapsible": "yes"}},
		{"non-integer", map[string]any{"title": "t", "width": 12.5}},
		{"below minimum", map[string]any{"title": "t", "width": 5}},
		{"above maximum", map[string]any{"title": "t", "width": 500}},
		{"enum violation", map[string]any{"title": "t", "mode": "wide"}},
		{"empty required string", map[string]any{"title": ""}},
		{"unknown property", map[string]any{"title": "t", "bogus": 1}},
		{"missing required", map[string]any{"width": 20}},
	}

	v := NewValidator(panelSchema())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Apply(tt.raw)
			if err == nil {
				t.Fatalf("Apply(%v) succeeded, want validation error", tt.raw)
			}
			var verrs *ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error type = %T, want *ValidationErrors", err)
			}
			if !verrs.HasErrors() {
				t.Error("expected at least one field-level violation")
			}
		})
	}
}

func TestValidator_IntegerAcceptsWholeFloat(t *testing.T) {
	// JSON decoding delivers numbers as float64; whole floats must pass
	// integer schemas.
	v := NewValidator(panelSchema())
	out, err := v.Apply(map[string]any{"title": "t", "width": float64(40)})
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if toFloat(out["width"]) != 40 {
		t.Errorf("width = %v, want 40", out["width"])
	}
}

func TestValidator_NestedObjectDefaults(t *testing.T) {
	s := Object().
		Prop("style", Object().
			Prop("accent", String().Default("blue")).
			Prop("border", Boolean().Default(true))).
		Build()

	v := NewValidator(s)
	out, err := v.Apply(map[string]any{"style": map[string]any{"border": false}})
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	style := out["style"].(map[string]any)
	if style["accent"] != "blue" {
		t.Errorf("nested default accent = %v, want blue", style["accent"])
	}
	if style["border"] != false {
		t.Errorf("explicit nested value overridden: border = %v", style["border"])
	}
}

func TestValidator_PatternAndArrays(t *testing.T) {
	s := Object().
		Prop("key", String().Pattern(`^[a-z][a-z0-9-]*$`)).
		Prop("tags", Array().Items(String().Build()).MinItems(1)).
		Build()
	v := NewValidator(s)

	if _, err := v.Apply(map[string]any{"key": "col-1", "tags": []any{"a"}}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if _, err := v.Apply(map[string]any{"key": "Bad Key"}); err == nil {
		t.Error("pattern violation accepted")
	}
	if _, err := v.Apply(map[string]any{"tags": []any{}}); err == nil {
		t.Error("minItems violation accepted")
	}
	if _, err := v.Apply(map[string]any{"tags": []any{"a", 2}}); err == nil {
		t.Error("item type violation accepted")
	}
}

func TestValidator_NilSchemaAcceptsAnything(t *testing.T) {
	v := NewValidator(nil)
	out, err := v.Apply(map[string]any{"anything": 1})
	if err != nil {
		t.Fatalf("nil schema rejected input: %v", err)
	}
	if out["anything"] != 1 {
		t.Errorf("value lost: %v", out)
	}
}
