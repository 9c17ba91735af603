package loader

import (
	"fmt"
	"math"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasresolver/internal/schemautil"
	"github.com/erraggy/oasresolver/schema"
)

// warnings collects conversion notices for Document.Warnings.
type warnings []string

func (w *warnings) addf(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

// primaryType returns the first non-null entry of a type list. OAS 3.1
// documents may declare ["string", "null"].
func primaryType(types *openapi3.Types) schema.PrimitiveType {
	for _, t := range types.Slice() {
		if t != "null" {
			return schema.PrimitiveType(t)
		}
	}
	return ""
}

// isObjectLike reports whether a schema of type t describes an object.
// A schema without a type is treated as one.
func isObjectLike(t schema.PrimitiveType) bool {
	return t == "" || t == schema.TypeObject
}

// bounds mirrors the constraint fields shared by Swagger 2.0 parameters and
// schemas of both versions.
type bounds struct {
	minimum, maximum, multipleOf *float64
	exclusiveMin, exclusiveMax   bool
	minLength                    uint64
	maxLength                    *uint64
	pattern                      string
	minItems                     uint64
	maxItems                     *uint64
	uniqueItems                  bool
}

func (b bounds) constraints() schema.Constraints {
	c := schema.Constraints{
		Minimum:     b.minimum,
		Maximum:     b.maximum,
		MultipleOf:  b.multipleOf,
		MinLength:   positive(b.minLength),
		MaxLength:   limit(b.maxLength),
		Pattern:     b.pattern,
		MinItems:    positive(b.minItems),
		MaxItems:    limit(b.maxItems),
		UniqueItems: b.uniqueItems,
	}
	if b.exclusiveMin {
		c.ExclusiveMinimum = schema.Ptr(true)
	}
	if b.exclusiveMax {
		c.ExclusiveMaximum = schema.Ptr(true)
	}
	return c
}

// positive converts a zero-defaulted lower bound; zero means absent.
func positive(n uint64) *int {
	if n == 0 {
		return nil
	}
	return schema.Ptr(clampInt(n))
}

func limit(n *uint64) *int {
	if n == nil {
		return nil
	}
	return schema.Ptr(clampInt(*n))
}

func clampInt(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

// literals converts enum values like schemautil.Literal.
func literals(t schema.PrimitiveType, vs []any) []any {
	if len(vs) == 0 {
		return nil
	}
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = schemautil.Literal(t, v)
	}
	return out
}

func required(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	return slices.Clone(names)
}

// mergeParameters overlays operation parameters on path-level parameters.
// A parameter with the same name and location replaces the path-level one
// in place.
func mergeParameters(pathLevel, opLevel []*schema.Property) []*schema.Property {
	out := slices.Clone(pathLevel)
	for _, p := range opLevel {
		i := slices.IndexFunc(out, func(q *schema.Property) bool {
			return q.Name == p.Name && q.Location == p.Location
		})
		if i >= 0 {
			out[i] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
