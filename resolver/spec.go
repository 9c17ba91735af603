package resolver

import (
	"errors"
	"fmt"
	"slices"

	"github.com/erraggy/oasresolver/internal/schemautil"
	"github.com/erraggy/oasresolver/normalizer"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

// Entry is the compiled state of one key.
type Entry struct {
	Name          string           `json:"name"`
	Property      *schema.Property `json:"property"`
	AllowedTypes  []schema.TypeTag `json:"allowedTypes"`
	AllowedValues []any            `json:"allowedValues,omitempty"`
	Default       any              `json:"default,omitempty"`
	HasDefault    bool             `json:"hasDefault,omitempty"`
	Required      bool             `json:"required,omitempty"`

	// Normalizer coerces the raw value before type checking. May be nil.
	Normalizer normalizer.Func `json:"-"`
}

// Normalized reports whether a normalizer is attached.
func (e *Entry) Normalized() bool {
	return e.Normalizer != nil
}

// Spec is the immutable, compiled resolution spec of one schema definition.
type Spec struct {
	name    string
	entries []*Entry
	index   map[string]int
}

// Name returns the name of the definition the spec was compiled from.
func (s *Spec) Name() string {
	return s.name
}

// Len returns the number of declared keys.
func (s *Spec) Len() int {
	return len(s.entries)
}

// Names returns the declared keys in declaration order.
func (s *Spec) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// Required returns the required keys in declaration order.
func (s *Spec) Required() []string {
	var names []string
	for _, e := range s.entries {
		if e.Required {
			names = append(names, e.Name)
		}
	}
	return names
}

// Entry returns a copy of the compiled state of name.
func (s *Spec) Entry(name string) (Entry, bool) {
	i, ok := s.index[name]
	if !ok {
		return Entry{}, false
	}
	e := *s.entries[i]
	e.AllowedTypes = slices.Clone(e.AllowedTypes)
	e.AllowedValues = slices.Clone(e.AllowedValues)
	return e, true
}

// Entries returns copies of every entry in declaration order.
func (s *Spec) Entries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, name := range s.Names() {
		e, _ := s.Entry(name)
		out = append(out, e)
	}
	return out
}

// IsDefined reports whether name is a declared key.
func (s *Spec) IsDefined(name string) bool {
	_, ok := s.index[name]
	return ok
}

// SpecBuilder assembles a Spec one key at a time. Errors are accumulated and
// reported by Build, so calls can be chained.
//
// SpecBuilder is not safe for concurrent use.
type SpecBuilder struct {
	name     string
	entries  []*Entry
	index    map[string]int
	required []string
	errs     []error
}

// NewSpecBuilder starts a spec for the named definition.
func NewSpecBuilder(name string) *SpecBuilder {
	return &SpecBuilder{
		name:  name,
		index: make(map[string]int),
	}
}

// Define declares a key described by p. Redefining a key replaces its
// descriptor and keeps its position.
func (b *SpecBuilder) Define(name string, p *schema.Property) *SpecBuilder {
	if p == nil {
		p = &schema.Property{Name: name}
	}
	if i, ok := b.index[name]; ok {
		b.entries[i].Property = p
		return b
	}
	b.index[name] = len(b.entries)
	b.entries = append(b.entries, &Entry{Name: name, Property: p})
	return b
}

// SetRequired marks names as required. Names that are not defined yet are
// defined with an empty descriptor.
func (b *SpecBuilder) SetRequired(names ...string) *SpecBuilder {
	for _, name := range names {
		if !slices.Contains(b.required, name) {
			b.required = append(b.required, name)
		}
	}
	return b
}

// IsRequired reports whether name has been marked required.
func (b *SpecBuilder) IsRequired(name string) bool {
	return slices.Contains(b.required, name)
}

// SetDefault sets the value used when name is absent from the input.
func (b *SpecBuilder) SetDefault(name string, value any) *SpecBuilder {
	if e := b.entry(name, "default"); e != nil {
		e.Default = value
		e.HasDefault = true
	}
	return b
}

// SetAllowedTypes replaces the allowed runtime types of name.
func (b *SpecBuilder) SetAllowedTypes(name string, types ...schema.TypeTag) *SpecBuilder {
	if e := b.entry(name, "allowedTypes"); e != nil {
		e.AllowedTypes = slices.Clone(types)
	}
	return b
}

// AddAllowedTypes widens the allowed runtime types of name.
func (b *SpecBuilder) AddAllowedTypes(name string, types ...schema.TypeTag) *SpecBuilder {
	if e := b.entry(name, "allowedTypes"); e != nil {
		for _, t := range types {
			e.AllowedTypes = schemautil.AddType(e.AllowedTypes, t)
		}
	}
	return b
}

// SetAllowedValues restricts name to the given literals.
func (b *SpecBuilder) SetAllowedValues(name string, values ...any) *SpecBuilder {
	if e := b.entry(name, "allowedValues"); e != nil {
		e.AllowedValues = slices.Clone(values)
	}
	return b
}

// SetNormalizer attaches a coercion function to name.
func (b *SpecBuilder) SetNormalizer(name string, fn normalizer.Func) *SpecBuilder {
	if e := b.entry(name, "normalizer"); e != nil {
		e.Normalizer = fn
	}
	return b
}

// Build returns the immutable Spec, or every error recorded while building.
func (b *SpecBuilder) Build() (*Spec, error) {
	for _, name := range b.required {
		if _, ok := b.index[name]; !ok {
			b.Define(name, nil)
		}
	}
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	spec := &Spec{
		name:    b.name,
		entries: make([]*Entry, len(b.entries)),
		index:   make(map[string]int, len(b.entries)),
	}
	for i, e := range b.entries {
		c := *e
		c.Required = slices.Contains(b.required, e.Name)
		c.AllowedTypes = slices.Clone(e.AllowedTypes)
		c.AllowedValues = slices.Clone(e.AllowedValues)
		spec.entries[i] = &c
		spec.index[e.Name] = i
	}
	return spec, nil
}

func (b *SpecBuilder) entry(name, option string) *Entry {
	i, ok := b.index[name]
	if !ok {
		b.errs = append(b.errs, &oaserrors.ConfigError{
			Option:  option,
			Value:   name,
			Message: fmt.Sprintf("property %q is not defined in %q", name, b.name),
		})
		return nil
	}
	return b.entries[i]
}
