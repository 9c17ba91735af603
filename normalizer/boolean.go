package normalizer

import (
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

// Boolean coerces boolean properties.
type Boolean struct{}

// Supports implements Normalizer.
func (Boolean) Supports(p *schema.Property, _ string, _ bool) bool {
	return p.Type == schema.TypeBoolean
}

// Normalizer implements Normalizer.
func (Boolean) Normalizer(_ *schema.Property, name string, required bool) Func {
	return func(value any) (any, error) {
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			switch v {
			case "true", "1":
				return true, nil
			case "false", "0":
				return false, nil
			}
		case nil:
			if !required {
				return nil, nil
			}
		default:
			if n, ok := integral(v); ok {
				switch n {
				case 1:
					return true, nil
				case 0:
					return false, nil
				}
			}
		}
		return nil, &oaserrors.NormalizationError{Property: name, Value: value}
	}
}

// integral reports the value of an integer-kinded number.
func integral(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	return 0, false
}
