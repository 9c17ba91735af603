package resolver

import (
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/erraggy/oasresolver/oaserrors"
)

type result struct {
	value any
	err   error
}

// Values is the resolved view of one raw input. Each key is resolved on first
// read and the outcome is remembered, so repeated reads are consistent.
// Values is safe for concurrent use.
type Values struct {
	resolver *Resolver
	raw      map[string]any

	mu      sync.Mutex
	results map[string]result
}

// Get resolves and returns the value of name. Reading a key the spec does not
// declare returns *oaserrors.UndefinedPropertyError.
func (v *Values) Get(name string) (any, error) {
	i, ok := v.resolver.spec.index[name]
	if !ok {
		return nil, &oaserrors.UndefinedPropertyError{Property: name, Defined: v.resolver.spec.Names()}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if res, ok := v.results[name]; ok {
		return res.value, res.err
	}
	value, err := v.resolver.resolveEntry(i, v.raw)
	if err != nil {
		v.resolver.logger.Debug("property failed to resolve", "property", name, "error", err)
	}
	v.results[name] = result{value: value, err: err}
	return value, err
}

// Has reports whether name is declared and resolved to a non-nil value.
func (v *Values) Has(name string) bool {
	value, err := v.Get(name)
	return err == nil && value != nil
}

// All resolves every declared key and returns them by name. Undeclared input
// keys are reported after the declared ones unless the resolver ignores them.
func (v *Values) All() (map[string]any, error) {
	out := make(map[string]any, len(v.resolver.spec.entries))
	var errs []error
	for _, name := range v.resolver.spec.Names() {
		value, err := v.Get(name)
		if err != nil {
			if v.resolver.failFast {
				return nil, err
			}
			errs = append(errs, err)
			continue
		}
		out[name] = value
	}

	defined := v.resolver.spec.Names()
	for _, key := range v.resolver.undefinedKeys(v.raw) {
		err := &oaserrors.UndefinedPropertyError{Property: key, Defined: defined}
		if v.resolver.failFast {
			return nil, err
		}
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, &oaserrors.AggregateError{Errors: errs}
	}
	return out, nil
}

// Decode resolves every key and stores the result in dst, which must be a
// pointer to a struct or map. Struct fields are matched by their json tag.
func (v *Values) Decode(dst any) error {
	all, err := v.All()
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          "json",
		WeaklyTypedInput: true,
		ZeroFields:       false,
	})
	if err != nil {
		return &oaserrors.ConfigError{Option: "decode", Message: "invalid decode target", Cause: err}
	}
	return dec.Decode(all)
}
