package normalizer

import (
	"slices"

	"github.com/erraggy/oasresolver/schema"
)

// Func coerces one raw value. It returns the typed value or a
// *oaserrors.NormalizationError.
type Func func(value any) (any, error)

// Normalizer is a coercion rule for a family of properties.
type Normalizer interface {
	// Supports reports whether the normalizer applies to the property.
	Supports(p *schema.Property, name string, required bool) bool

	// Normalizer returns the coercion function for the property. It is only
	// called after Supports returned true.
	Normalizer(p *schema.Property, name string, required bool) Func
}

// Entry pairs a normalizer with its priority. Higher priorities are tried first.
type Entry struct {
	Normalizer Normalizer
	Priority   int
}

// Registry is an immutable, priority-ordered list of normalizers.
// It is safe for concurrent use.
type Registry struct {
	entries []Entry
}

// NewRegistry returns a registry holding entries ordered by descending
// priority. Entries with equal priority keep their registration order.
func NewRegistry(entries ...Entry) *Registry {
	sorted := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Normalizer != nil {
			sorted = append(sorted, e)
		}
	}
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return b.Priority - a.Priority
	})
	return &Registry{entries: sorted}
}

// Default returns a registry with the built-in Boolean and Integer normalizers.
func Default() *Registry {
	return NewRegistry(
		Entry{Normalizer: Boolean{}},
		Entry{Normalizer: Integer{}},
	)
}

// With returns a new registry holding r's entries followed by entries,
// re-ordered by priority. r is not modified.
func (r *Registry) With(entries ...Entry) *Registry {
	all := make([]Entry, 0, r.Len()+len(entries))
	if r != nil {
		all = append(all, r.entries...)
	}
	return NewRegistry(append(all, entries...)...)
}

// First returns the coercion function of the first normalizer that supports
// the property, or nil when none does.
func (r *Registry) First(p *schema.Property, name string, required bool) Func {
	if r == nil {
		return nil
	}
	for _, e := range r.entries {
		if e.Normalizer.Supports(p, name, required) {
			return e.Normalizer.Normalizer(p, name, required)
		}
	}
	return nil
}

// Len returns the number of registered normalizers.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Normalizers returns the normalizers in the order they are tried.
func (r *Registry) Normalizers() []Normalizer {
	if r == nil {
		return nil
	}
	out := make([]Normalizer, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Normalizer
	}
	return out
}
