package schema

// Builder provides a fluent API for constructing schemas.
type Builder struct {
	schema *Schema
}

// NewBuilder creates a new schema builder.
func NewBuilder() *Builder {
	return &Builder{schema: &Schema{}}
}

// Build returns the constructed schema.
func (b *Builder) Build() *Schema {
	return b.schema
}

// Type sets the schema type.
func (b *Builder) Type(typ string) *Builder {
	b.schema.Type = typ
	return b
}

// Description sets the schema description.
func (b *Builder) Description(desc string) *Builder {
	b.schema.Description = desc
	return b
}

// Default sets the default value.
func (b *Builder) Default(value any) *Builder {
	b.schema.Default = value
	return b
}

// Enum sets allowed values.
func (b *Builder) Enum(values ...any) *Builder {
	b.schema.Enum = values
	return b
}

// Minimum sets the minimum value for numbers.
func (b *Builder) Minimum(minimum float64) *Builder {
	b.schema.Minimum = &minimum
	return b
}

// Maximum sets the maximum value for numbers.
func (b *Builder) Maximum(maximum float64) *Builder {
	b.schema.Maximum = &maximum
	return b
}

// MinLength sets the minimum string length.
func (b *Builder) MinLength(length int) *Builder {
	b.schema.MinLength = &length
	return b
}

// MaxLength sets the maximum string length.
func (b *Builder) MaxLength(length int) *Builder {
	b.schema.MaxLength = &length
	return b
}

// Pattern sets the regex pattern for strings.
func (b *Builder) Pattern(pattern string) *Builder {
	b.schema.Pattern = pattern
	return b
}

// MinItems sets the minimum array length.
func (b *Builder) MinItems(count int) *Builder {
	b.schema.MinItems = &count
	return b
}

// MaxItems sets the maximum array length.
func (b *Builder) MaxItems(count int) *Builder {
	b.schema.MaxItems = &count
	return b
}

// Items sets the schema for array elements.
func (b *Builder) Items(schema *Schema) *Builder {
	b.schema.Items = schema
	return b
}

// Property adds a property to an object schema.
func (b *Builder) Property(name string, schema *Schema) *Builder {
	if b.schema.Properties == nil {
		b.schema.Properties = make(map[string]*Schema)
	}
	b.schema.Properties[name] = schema
	return b
}

// Prop adds a property built by a nested builder.
func (b *Builder) Prop(name string, builder *Builder) *Builder {
	return b.Property(name, builder.Build())
}

// Required marks properties as required.
func (b *Builder) Required(names ...string) *Builder {
	b.schema.Required = append(b.schema.Required, names...)
	return b
}

// AdditionalProperties sets whether unknown properties are allowed.
func (b *Builder) AdditionalProperties(allowed bool) *Builder {
	b.schema.AdditionalProperties = &allowed
	return b
}

// Convenience constructors for common schema types.

// String creates a string schema builder.
func String() *Builder {
	return NewBuilder().Type(TypeString)
}

// Integer creates an integer schema builder.
func Integer() *Builder {
	return NewBuilder().Type(TypeInteger)
}

// Number creates a number schema builder.
func Number() *Builder {
	return NewBuilder().Type(TypeNumber)
}

// Boolean creates a boolean schema builder.
func Boolean() *Builder {
	return NewBuilder().Type(TypeBoolean)
}

// Array creates an array schema builder.
func Array() *Builder {
	return NewBuilder().Type(TypeArray)
}

// Object creates an object schema builder.
func Object() *Builder {
	return NewBuilder().Type(TypeObject)
}

// StringEnum creates a string schema restricted to the given values.
func StringEnum(values ...string) *Builder {
	anyValues := make([]any, len(values))
	for i, v := range values {
		anyValues[i] = v
	}
	return String().Enum(anyValues...)
}
