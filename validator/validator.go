package validator

import (
	"slices"

	"github.com/erraggy/oasresolver/schema"
)

// Validator is a constraint check for a family of properties.
type Validator interface {
	// Supports reports whether the validator applies to the property.
	Supports(p *schema.Property) bool

	// Validate checks value, returning a *oaserrors.ValidationError when the
	// constraint is violated.
	Validate(p *schema.Property, name string, value any) error
}

// Entry pairs a validator with its priority. Higher priorities run first.
type Entry struct {
	Validator Validator
	Priority  int
}

// Chain is an immutable, priority-ordered list of validators.
// It is safe for concurrent use.
type Chain struct {
	entries []Entry
}

// NewChain returns a chain holding entries ordered by descending priority.
// Entries with equal priority keep their registration order.
func NewChain(entries ...Entry) *Chain {
	sorted := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Validator != nil {
			sorted = append(sorted, e)
		}
	}
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return b.Priority - a.Priority
	})
	return &Chain{entries: sorted}
}

// Default returns a chain with every built-in validator.
func Default() *Chain {
	return NewChain(
		Entry{Validator: ArrayMinItems{}},
		Entry{Validator: ArrayMaxItems{}},
		Entry{Validator: ArrayUniqueItems{}},
		Entry{Validator: NumberMinimum{}},
		Entry{Validator: NumberMaximum{}},
		Entry{Validator: NumberMultipleOf{}},
		Entry{Validator: StringMinLength{}},
		Entry{Validator: StringMaxLength{}},
		Entry{Validator: NewStringPattern()},
		Entry{Validator: Date{}},
		Entry{Validator: DateTime{}},
	)
}

// With returns a new chain holding c's entries and entries, re-ordered by
// priority. c is not modified.
func (c *Chain) With(entries ...Entry) *Chain {
	all := make([]Entry, 0, c.Len()+len(entries))
	if c != nil {
		all = append(all, c.entries...)
	}
	return NewChain(append(all, entries...)...)
}

// Len returns the number of validators in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Validators returns the validators in run order.
func (c *Chain) Validators() []Validator {
	if c == nil {
		return nil
	}
	out := make([]Validator, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Validator
	}
	return out
}

// Supporting returns, in run order, the validators that apply to p.
func (c *Chain) Supporting(p *schema.Property) []Validator {
	if c == nil {
		return nil
	}
	var out []Validator
	for _, e := range c.entries {
		if e.Validator.Supports(p) {
			out = append(out, e.Validator)
		}
	}
	return out
}

// Validate runs every supporting validator against value and returns the
// first failure.
func (c *Chain) Validate(p *schema.Property, name string, value any) error {
	return Run(c.Supporting(p), p, name, value)
}

// Run applies validators in order and returns the first failure.
func Run(validators []Validator, p *schema.Property, name string, value any) error {
	for _, v := range validators {
		if err := v.Validate(p, name, value); err != nil {
			return err
		}
	}
	return nil
}
