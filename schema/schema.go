// Package schema provides runtime validation for plugin configuration.
//
// A Schema describes the shape a plugin's configuration must have. Plugins
// declare one at definition time; the grid validates raw configuration
// against it and fills in defaults before the plugin ever renders, so a
// misconfigured plugin fails at wiring time rather than mid-render.
package schema

import (
	"encoding/json"
	"fmt"
)

// Value types a schema can require.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Schema describes constraints on a configuration value.
type Schema struct {
	// Type is the required value type (string, number, integer, boolean,
	// array, object). Empty means any type is accepted.
	Type string `json:"type,omitempty"`

	// Description provides documentation.
	Description string `json:"description,omitempty"`

	// Default is the value used when the property is absent.
	Default any `json:"default,omitempty"`

	// Enum lists allowed values.
	Enum []any `json:"enum,omitempty"`

	// Minimum and Maximum bound numeric values.
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// MinLength and MaxLength bound string lengths.
	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	// Pattern is a regular expression strings must match.
	Pattern string `json:"pattern,omitempty"`

	// MinItems and MaxItems bound array lengths.
	MinItems *int `json:"minItems,omitempty"`
	MaxItems *int `json:"maxItems,omitempty"`

	// Items is the schema array elements must satisfy.
	Items *Schema `json:"items,omitempty"`

	// Properties defines object properties (for type: object).
	Properties map[string]*Schema `json:"properties,omitempty"`

	// Required lists required property names.
	Required []string `json:"required,omitempty"`

	// AdditionalProperties controls whether unknown properties are allowed.
	// Nil means allowed.
	AdditionalProperties *bool `json:"additionalProperties,omitempty"`
}

// Parse parses a schema from JSON bytes.
func Parse(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return s, nil
}

// IsRequired checks if a property name is listed as required.
func (s *Schema) IsRequired(name string) bool {
	for _, req := range s.Required {
		if req == name {
			return true
		}
	}
	return false
}

// AllowsAdditionalProperties returns whether unknown properties are allowed.
func (s *Schema) AllowsAdditionalProperties() bool {
	if s.AdditionalProperties == nil {
		return true
	}
	return *s.AdditionalProperties
}

// Property returns the schema for a named property, or nil.
func (s *Schema) Property(name string) *Schema {
	if s == nil || s.Properties == nil {
		return nil
	}
	return s.Properties[name]
}
