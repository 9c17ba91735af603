package normalizer

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

// numericRegex matches decimal and exponent notation with optional sign and
// surrounding whitespace.
var numericRegex = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)

// Integer coerces integer properties. Numeric-looking values are truncated
// toward zero.
type Integer struct{}

// Supports implements Normalizer.
func (Integer) Supports(p *schema.Property, _ string, _ bool) bool {
	return p.Type == schema.TypeInteger
}

// Normalizer implements Normalizer.
func (Integer) Normalizer(_ *schema.Property, name string, required bool) Func {
	return func(value any) (any, error) {
		if value == nil && !required {
			return nil, nil
		}
		if n, ok := toInt64(value); ok {
			return n, nil
		}
		return nil, &oaserrors.NormalizationError{Property: name, Value: value}
	}
}

func toInt64(value any) (int64, bool) {
	if n, ok := integral(value); ok {
		return n, true
	}
	switch v := value.(type) {
	case float64:
		return truncate(v)
	case float32:
		return truncate(float64(v))
	case json.Number:
		return parseNumeric(string(v))
	case string:
		return parseNumeric(v)
	}
	return 0, false
}

func parseNumeric(s string) (int64, bool) {
	if !numericRegex.MatchString(s) {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return truncate(f)
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
