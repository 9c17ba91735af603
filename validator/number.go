package validator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/erraggy/oasresolver/internal/schemautil"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

// multipleOfTolerance is the relative slack allowed when checking that a
// quotient is integral.
const multipleOfTolerance = 1e-9

// NumberMinimum enforces minimum and exclusiveMinimum.
type NumberMinimum struct{}

// Supports implements Validator.
func (NumberMinimum) Supports(p *schema.Property) bool {
	return p.Type.IsNumeric() && p.Minimum != nil
}

// Validate implements Validator.
func (NumberMinimum) Validate(p *schema.Property, name string, value any) error {
	n, err := number(name, value)
	if err != nil {
		return err
	}
	limit := *p.Minimum
	switch {
	case p.IsExclusiveMinimum() && n <= limit:
		return rangeError(name, "minimum", value, "strictly greater than", limit)
	case !p.IsExclusiveMinimum() && n < limit:
		return rangeError(name, "minimum", value, "greater than or equal to", limit)
	}
	return nil
}

// NumberMaximum enforces maximum and exclusiveMaximum.
type NumberMaximum struct{}

// Supports implements Validator.
func (NumberMaximum) Supports(p *schema.Property) bool {
	return p.Type.IsNumeric() && p.Maximum != nil
}

// Validate implements Validator.
func (NumberMaximum) Validate(p *schema.Property, name string, value any) error {
	n, err := number(name, value)
	if err != nil {
		return err
	}
	limit := *p.Maximum
	switch {
	case p.IsExclusiveMaximum() && n >= limit:
		return rangeError(name, "maximum", value, "strictly lower than", limit)
	case !p.IsExclusiveMaximum() && n > limit:
		return rangeError(name, "maximum", value, "lower than or equal to", limit)
	}
	return nil
}

// NumberMultipleOf enforces multipleOf.
type NumberMultipleOf struct{}

// Supports implements Validator.
func (NumberMultipleOf) Supports(p *schema.Property) bool {
	return p.Type.IsNumeric() && p.MultipleOf != nil && *p.MultipleOf != 0
}

// Validate implements Validator.
func (NumberMultipleOf) Validate(p *schema.Property, name string, value any) error {
	n, err := number(name, value)
	if err != nil {
		return err
	}
	q := n / *p.MultipleOf
	if math.Abs(q-math.Round(q)) > multipleOfTolerance*math.Max(1, math.Abs(q)) {
		return &oaserrors.ValidationError{
			Property: name,
			Rule:     "multipleOf",
			Value:    value,
			Message:  "should be an integer after division by " + formatNumber(*p.MultipleOf),
		}
	}
	return nil
}

func number(name string, value any) (float64, error) {
	n, ok := schemautil.Float64(value)
	if !ok || math.IsNaN(n) {
		return 0, &oaserrors.ValidationError{
			Property: name,
			Rule:     "type",
			Value:    value,
			Message:  fmt.Sprintf("should be a number, got %s", schemautil.TypeName(value)),
		}
	}
	return n, nil
}

func rangeError(name, rule string, value any, relation string, limit float64) error {
	return &oaserrors.ValidationError{
		Property: name,
		Rule:     rule,
		Value:    value,
		Message:  fmt.Sprintf("value should be %s %s", relation, formatNumber(limit)),
	}
}

// formatNumber renders 10 as "10" and 2.5 as "2.5".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
