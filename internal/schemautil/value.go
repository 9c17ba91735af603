package schemautil

import (
	"encoding/json"
	"math"
	"reflect"

	"github.com/erraggy/oasresolver/schema"
)

// Float64 converts numeric values, including json.Number, to float64.
func Float64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// IsIntegral reports whether f has no fractional part.
func IsIntegral(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

// Matches reports whether value satisfies the runtime type tag.
//
// Integer tags accept Go integer kinds and integral floats, since JSON
// decoding yields float64 for every number. Float tags accept every numeric
// kind. Reference tags accept values implementing schema.Referent whose
// definition name matches the reference.
func Matches(value any, tag schema.TypeTag) bool {
	if value == nil {
		return tag == schema.TagNull
	}
	switch tag {
	case schema.TagNull:
		return false
	case schema.TagString:
		return reflect.TypeOf(value).Kind() == reflect.String && !isNumber(value)
	case schema.TagBoolean:
		return reflect.TypeOf(value).Kind() == reflect.Bool
	case schema.TagInteger:
		if isIntKind(reflect.TypeOf(value).Kind()) {
			return true
		}
		if f, ok := floatish(value); ok {
			return IsIntegral(f)
		}
		return false
	case schema.TagFloat:
		_, ok := Float64(value)
		return ok
	case schema.TagSequence:
		k := reflect.TypeOf(value).Kind()
		return k == reflect.Slice || k == reflect.Array
	case schema.TagObject:
		k := reflect.TypeOf(value).Kind()
		if k == reflect.Map || k == reflect.Struct {
			return true
		}
		if k == reflect.Pointer {
			return reflect.TypeOf(value).Elem().Kind() == reflect.Struct
		}
		return false
	}
	r, ok := value.(schema.Referent)
	return ok && schema.RefName(r.DefinitionName()) == schema.RefName(string(tag))
}

// MatchesAny reports whether value satisfies at least one of tags.
func MatchesAny(value any, tags []schema.TypeTag) bool {
	for _, tag := range tags {
		if Matches(value, tag) {
			return true
		}
	}
	return false
}

// TypeName returns a short name for the runtime type of value, for diagnostics.
func TypeName(value any) string {
	if value == nil {
		return "null"
	}
	if isNumber(value) {
		return "number"
	}
	switch k := reflect.TypeOf(value).Kind(); {
	case k == reflect.String:
		return "string"
	case k == reflect.Bool:
		return "boolean"
	case isIntKind(k):
		return "integer"
	case k == reflect.Float32 || k == reflect.Float64:
		return "float"
	case k == reflect.Slice || k == reflect.Array:
		return "sequence"
	case k == reflect.Map || k == reflect.Struct || k == reflect.Pointer:
		return "object"
	}
	return reflect.TypeOf(value).String()
}

// Equal reports whether a and b are the same enum literal. Numbers compare by
// value across kinds, so int64(1) equals float64(1).
func Equal(a, b any) bool {
	if fa, ok := Float64(a); ok {
		if fb, ok := Float64(b); ok {
			return fa == fb
		}
		return false
	}
	if isNumber(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func isNumber(v any) bool {
	_, ok := v.(json.Number)
	return ok
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// floatish returns the value of float kinds and json.Number.
func floatish(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64 {
		return rv.Float(), true
	}
	return 0, false
}

// Literal converts a decoded JSON number to int64 when the declared type is
// integer. Decoded defaults and enum values then keep the declared type.
func Literal(t schema.PrimitiveType, v any) any {
	if t != schema.TypeInteger {
		return v
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		var ok bool
		if f, ok = Float64(n); !ok {
			return v
		}
	default:
		return v
	}
	if !IsIntegral(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return v
	}
	return int64(f)
}

// RestoreLiterals applies Literal to the default and enum values of every
// property of def, after a JSON round trip.
func RestoreLiterals(def *schema.Definition) {
	if def == nil {
		return
	}
	for _, p := range def.Properties {
		p.Default = Literal(p.Type, p.Default)
		for i, v := range p.Enum {
			p.Enum[i] = Literal(p.Type, v)
		}
	}
}
