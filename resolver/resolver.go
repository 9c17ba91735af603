package resolver

import (
	"fmt"
	"slices"
	"sort"

	"github.com/erraggy/oasresolver/internal/schemautil"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/oaslog"
	"github.com/erraggy/oasresolver/schema"
	"github.com/erraggy/oasresolver/validator"
)

// Resolver resolves raw input against one Spec. It holds no per-call state
// and is safe for concurrent use.
type Resolver struct {
	spec            *Spec
	validators      [][]validator.Validator // by entry index
	failFast        bool
	ignoreUndefined bool
	logger          oaslog.Logger
}

// New creates a Resolver for spec.
func New(spec *Spec, opts ...Option) (*Resolver, error) {
	if spec == nil {
		return nil, &oaserrors.ConfigError{Option: "spec", Message: "spec cannot be nil"}
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	r := &Resolver{
		spec:            spec,
		validators:      make([][]validator.Validator, len(spec.entries)),
		failFast:        cfg.failFast,
		ignoreUndefined: cfg.ignoreUndefined,
		logger:          cfg.logger.With("definition", spec.name),
	}
	for i, e := range spec.entries {
		r.validators[i] = cfg.validators.Supporting(e.Property)
	}
	return r, nil
}

// Spec returns the spec the resolver was created with.
func (r *Resolver) Spec() *Spec {
	return r.spec
}

// Bind returns lazily resolved Values over raw. No key is checked until it
// is read. raw is not copied and must not be modified while the Values are
// in use.
func (r *Resolver) Bind(raw map[string]any) *Values {
	return &Values{
		resolver: r,
		raw:      raw,
		results:  make(map[string]result, len(r.spec.entries)),
	}
}

// Resolve checks every key of raw and returns the resolved Values. On
// failure it returns an *oaserrors.AggregateError (or the first failure with
// WithFailFast).
func (r *Resolver) Resolve(raw map[string]any) (*Values, error) {
	v := r.Bind(raw)
	if _, err := v.All(); err != nil {
		return nil, err
	}
	return v, nil
}

// undefinedKeys returns the keys of raw the spec does not declare, sorted.
func (r *Resolver) undefinedKeys(raw map[string]any) []string {
	if r.ignoreUndefined {
		return nil
	}
	var keys []string
	for k := range raw {
		if !r.spec.IsDefined(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// resolveEntry runs the per-key steps for entry i.
func (r *Resolver) resolveEntry(i int, raw map[string]any) (any, error) {
	e := r.spec.entries[i]

	value, present := raw[e.Name]
	if !present && e.HasDefault {
		value, present = e.Default, true
	}
	if !present {
		if e.Required {
			return nil, &oaserrors.MissingRequiredPropertyError{Property: e.Name}
		}
		return nil, nil
	}

	if e.Normalizer != nil {
		normalized, err := e.Normalizer(value)
		if err != nil {
			return nil, err
		}
		value = normalized
	}

	if len(e.AllowedTypes) > 0 && !schemautil.MatchesAny(value, e.AllowedTypes) {
		return nil, &oaserrors.ValidationError{
			Property: e.Name,
			Rule:     "type",
			Value:    value,
			Message: fmt.Sprintf("expected type %s, got %s",
				joinTags(e.AllowedTypes), schemautil.TypeName(value)),
		}
	}

	if value == nil {
		return nil, nil
	}

	if len(e.AllowedValues) > 0 && !slices.ContainsFunc(e.AllowedValues, func(a any) bool {
		return schemautil.Equal(value, a)
	}) {
		return nil, &oaserrors.ValidationError{
			Property: e.Name,
			Rule:     "enum",
			Value:    value,
			Message:  fmt.Sprintf("value %v is not one of the allowed values %v", value, e.AllowedValues),
		}
	}

	if err := validator.Run(r.validators[i], e.Property, e.Name, value); err != nil {
		return nil, err
	}

	if s, ok := value.(string); ok && e.Property.IsCollection() {
		seq, err := validator.ToSequence(e.Property, e.Name, s)
		if err != nil {
			return nil, err
		}
		return seq, nil
	}
	return value, nil
}

func joinTags(tags []schema.TypeTag) string {
	s := ""
	for i, t := range tags {
		if i > 0 {
			s += "|"
		}
		s += string(t)
	}
	return s
}
