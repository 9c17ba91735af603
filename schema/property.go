package schema

import "maps"

// Constraints holds the optional limits declared on a property.
// A nil pointer means the constraint is absent.
type Constraints struct {
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum *bool    `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *bool    `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`
	MinLength        *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern          string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinItems         *int     `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems         *int     `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	UniqueItems      bool     `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`
}

// IsExclusiveMinimum reports whether the minimum bound is exclusive.
// An undefined flag means inclusive.
func (c Constraints) IsExclusiveMinimum() bool {
	return c.ExclusiveMinimum != nil && *c.ExclusiveMinimum
}

// IsExclusiveMaximum reports whether the maximum bound is exclusive.
// An undefined flag means inclusive.
func (c Constraints) IsExclusiveMaximum() bool {
	return c.ExclusiveMaximum != nil && *c.ExclusiveMaximum
}

// Property describes one schema property or operation parameter.
type Property struct {
	// Name is unique within the owning definition.
	Name string `json:"name" yaml:"name"`

	// Type is the declared primitive type. Empty for references.
	Type PrimitiveType `json:"type,omitempty" yaml:"type,omitempty"`

	// Ref is the $ref target when the property points at another definition.
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Format is the optional format, e.g. "date" or "date-time".
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// CollectionFormat is set only for arrays carried in a single string.
	CollectionFormat CollectionFormat `json:"collectionFormat,omitempty" yaml:"collectionFormat,omitempty"`

	// Required is the parameter-level required flag. For object properties the
	// owning definition's Required list is authoritative.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Default is the declared default value; nil means no default.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Enum is the ordered set of allowed literal values.
	Enum []any `json:"enum,omitempty" yaml:"enum,omitempty"`

	Constraints `yaml:",inline"`

	// Location is where the value originates. Empty for plain object properties.
	Location Location `json:"in,omitempty" yaml:"in,omitempty"`
}

// IsReference reports whether the property is a $ref without a primitive type.
func (p *Property) IsReference() bool {
	return p.Type == "" && p.Ref != ""
}

// IsCollection reports whether the property is an array serialized in a string.
func (p *Property) IsCollection() bool {
	return p.Type == TypeArray && p.CollectionFormat != ""
}

// Clone returns a copy of p that can be modified without affecting p.
// Enum values are copied shallowly.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	c := *p
	if p.Enum != nil {
		c.Enum = append([]any(nil), p.Enum...)
	}
	if m, ok := p.Default.(map[string]any); ok {
		c.Default = maps.Clone(m)
	}
	return &c
}
