package schema

import (
	"slices"
	"sort"
)

// Definition is a named bag of property descriptors describing an object.
type Definition struct {
	Name       string        `json:"name" yaml:"name"`
	Type       PrimitiveType `json:"type,omitempty" yaml:"type,omitempty"`
	Properties []*Property   `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required   []string      `json:"required,omitempty" yaml:"required,omitempty"`
}

// Property returns the property with the given name.
func (d *Definition) Property(name string) (*Property, bool) {
	if d == nil {
		return nil, false
	}
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// IsRequired reports whether name is in the definition's required list.
func (d *Definition) IsRequired(name string) bool {
	return d != nil && slices.Contains(d.Required, name)
}

// PropertyNames returns the property names in declaration order.
func (d *Definition) PropertyNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Properties))
	for _, p := range d.Properties {
		names = append(names, p.Name)
	}
	return names
}

// Lookup resolves a definition by bare name or local reference.
type Lookup interface {
	Lookup(ref string) (*Definition, bool)
}

// Definitions maps definition names to definitions.
type Definitions map[string]*Definition

// Lookup implements Lookup. Both "Pet" and "#/components/schemas/Pet" find
// the definition named Pet.
func (d Definitions) Lookup(ref string) (*Definition, bool) {
	def, ok := d[RefName(ref)]
	return def, ok && def != nil
}

// Names returns the definition names sorted alphabetically.
func (d Definitions) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ Lookup = Definitions(nil)

// RequestBody is the body of an operation: either a reference to a named
// definition or an inline object schema.
type RequestBody struct {
	Ref    string      `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Inline *Definition `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Operation is one route+method with its parameters and request body.
type Operation struct {
	ID          string       `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Route       string       `json:"route" yaml:"route"`
	Method      string       `json:"method" yaml:"method"`
	Parameters  []*Property  `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
}
