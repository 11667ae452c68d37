package schema

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sync"
	"unicode/utf8"
)

// Validator validates configuration values against a schema.
type Validator struct {
	schema *Schema

	// Compiled regexes for Pattern constraints.
	patternCache sync.Map // map[string]*regexp.Regexp
}

// NewValidator creates a validator for the given schema. A nil schema
// accepts anything.
func NewValidator(s *Schema) *Validator {
	return &Validator{schema: s}
}

// Apply validates raw against the schema and returns a copy with schema
// defaults filled in for absent properties. raw is never mutated. On
// failure the returned error is a *ValidationErrors carrying every
// field-level violation found.
func (v *Validator) Apply(raw map[string]any) (map[string]any, error) {
	if v.schema == nil {
		return copyMap(raw), nil
	}

	out := v.withDefaults(raw, v.schema)

	errs := &ValidationErrors{}
	v.validateValue("", out, v.schema, errs)
	if err := errs.AsError(); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks value against the schema without applying defaults.
func (v *Validator) Validate(value any) error {
	if v.schema == nil {
		return nil
	}
	errs := &ValidationErrors{}
	v.validateValue("", value, v.schema, errs)
	return errs.AsError()
}

// withDefaults returns a copy of raw with defaults from the schema's
// properties filled in recursively.
func (v *Validator) withDefaults(raw map[string]any, s *Schema) map[string]any {
	out := copyMap(raw)
	for name, prop := range s.Properties {
		existing, present := out[name]
		switch {
		case !present:
			if prop.Default != nil {
				out[name] = prop.Default
			}
		case prop.Type == TypeObject && len(prop.Properties) > 0:
			if sub, ok := existing.(map[string]any); ok {
				out[name] = v.withDefaults(sub, prop)
			}
		}
	}
	return out
}

func (v *Validator) validateValue(path string, value any, s *Schema, errs *ValidationErrors) {
	if s == nil {
		return
	}

	if value == nil {
		// Absent values are caught by the required check on the parent.
		return
	}

	if s.Type != "" && !typeMatches(s.Type, value) {
		errs.Add(path, fmt.Sprintf("expected %s, got %s", s.Type, typeName(value)), value)
		return
	}

	if len(s.Enum) > 0 && !enumContains(s.Enum, value) {
		errs.Add(path, fmt.Sprintf("value %v not in allowed set %v", value, s.Enum), value)
	}

	switch s.Type {
	case TypeString:
		v.validateString(path, value.(string), s, errs)
	case TypeNumber, TypeInteger:
		v.validateNumber(path, toFloat(value), s, errs)
	case TypeArray:
		v.validateArray(path, value, s, errs)
	case TypeObject:
		v.validateObject(path, value, s, errs)
	}
}

func (v *Validator) validateString(path, str string, s *Schema, errs *ValidationErrors) {
	length := utf8.RuneCountInString(str)
	if s.MinLength != nil && length < *s.MinLength {
		errs.Add(path, fmt.Sprintf("string length %d below minimum %d", length, *s.MinLength), str)
	}
	if s.MaxLength != nil && length > *s.MaxLength {
		errs.Add(path, fmt.Sprintf("string length %d above maximum %d", length, *s.MaxLength), str)
	}
	if s.Pattern != "" {
		re, err := v.compilePattern(s.Pattern)
		if err != nil {
			errs.Add(path, fmt.Sprintf("invalid pattern %q: %v", s.Pattern, err), str)
		} else if !re.MatchString(str) {
			errs.Add(path, fmt.Sprintf("string does not match pattern %q", s.Pattern), str)
		}
	}
}

func (v *Validator) validateNumber(path string, n float64, s *Schema, errs *ValidationErrors) {
	if s.Minimum != nil && n < *s.Minimum {
		errs.Add(path, fmt.Sprintf("value %v below minimum %v", n, *s.Minimum), n)
	}
	if s.Maximum != nil && n > *s.Maximum {
		errs.Add(path, fmt.Sprintf("value %v above maximum %v", n, *s.Maximum), n)
	}
}

func (v *Validator) validateArray(path string, value any, s *Schema, errs *ValidationErrors) {
	rv := reflect.ValueOf(value)
	length := rv.Len()
	if s.MinItems != nil && length < *s.MinItems {
		errs.Add(path, fmt.Sprintf("array length %d below minimum %d", length, *s.MinItems), value)
	}
	if s.MaxItems != nil && length > *s.MaxItems {
		errs.Add(path, fmt.Sprintf("array length %d above maximum %d", length, *s.MaxItems), value)
	}
	if s.Items != nil {
		for i := 0; i < length; i++ {
			v.validateValue(fmt.Sprintf("%s[%d]", path, i), rv.Index(i).Interface(), s.Items, errs)
		}
	}
}

func (v *Validator) validateObject(path string, value any, s *Schema, errs *ValidationErrors) {
	obj, ok := value.(map[string]any)
	if !ok {
		errs.Add(path, "expected object", value)
		return
	}

	for _, name := range s.Required {
		if _, present := obj[name]; !present {
			errs.Add(joinPath(path, name), "required property missing", nil)
		}
	}

	for name, val := range obj {
		prop := s.Property(name)
		if prop == nil {
			if !s.AllowsAdditionalProperties() {
				errs.Add(joinPath(path, name), "unknown property", val)
			}
			continue
		}
		v.validateValue(joinPath(path, name), val, prop, errs)
	}
}

func (v *Validator) compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := v.patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	v.patternCache.Store(pattern, re)
	return re, nil
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, val := range in {
		out[k] = val
	}
	return out
}

// typeMatches reports whether a Go value satisfies a schema type name.
// Integers arriving as float64 (the JSON decoding) count as integers when
// they are whole numbers.
func typeMatches(typ string, value any) bool {
	switch typ {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeNumber:
		return isNumeric(value)
	case TypeInteger:
		if !isNumeric(value) {
			return false
		}
		f := toFloat(value)
		return f == math.Trunc(f)
	case TypeArray:
		kind := reflect.ValueOf(value).Kind()
		return kind == reflect.Slice || kind == reflect.Array
	case TypeObject:
		_, ok := value.(map[string]any)
		return ok
	}
	return true
}

func isNumeric(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

func toFloat(value any) float64 {
	switch n := value.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func typeName(value any) string {
	switch value.(type) {
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case map[string]any:
		return TypeObject
	}
	if isNumeric(value) {
		return TypeNumber
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return TypeArray
	}
	return fmt.Sprintf("%T", value)
}

func enumContains(enum []any, value any) bool {
	for _, e := range enum {
		if reflect.DeepEqual(e, value) {
			return true
		}
		// JSON decoding turns numbers into float64; compare numerically
		// so an enum of ints still matches.
		if isNumeric(e) && isNumeric(value) && toFloat(e) == toFloat(value) {
			return true
		}
	}
	return false
}
