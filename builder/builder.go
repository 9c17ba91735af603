package builder

import (
	"slices"

	"github.com/erraggy/oasresolver/internal/schemautil"
	"github.com/erraggy/oasresolver/normalizer"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/oaslog"
	"github.com/erraggy/oasresolver/resolver"
	"github.com/erraggy/oasresolver/schema"
)

// Builder compiles schema definitions into resolver specs. Its configuration
// is fixed at construction, so a Builder is safe for concurrent use.
type Builder struct {
	normalizers *normalizer.Registry
	locations   []schema.Location
	logger      oaslog.Logger
}

// New creates a Builder.
func New(opts ...Option) (*Builder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &Builder{
		normalizers: cfg.normalizers,
		locations:   slices.Clone(cfg.locations),
		logger:      cfg.logger,
	}, nil
}

// Build compiles def. Property declaration order is preserved.
func (b *Builder) Build(def *schema.Definition) (*resolver.Spec, error) {
	if def == nil {
		return nil, &oaserrors.ConfigError{Option: "definition", Message: "definition cannot be nil"}
	}

	sb := resolver.NewSpecBuilder(def.Name)
	if len(def.Required) > 0 {
		sb.SetRequired(def.Required...)
	}

	for _, p := range def.Properties {
		name := p.Name
		sb.Define(name, p)

		types, err := schemautil.AllowedTypes(p, def.Name)
		if err != nil {
			b.logger.Warn("definition failed to compile", "definition", def.Name, "property", name, "error", err)
			return nil, err
		}
		required := sb.IsRequired(name)
		if !required {
			types = append(types, schema.TagNull)
		}
		sb.SetAllowedTypes(name, types...)

		if fn := b.normalizerFor(p, name, required); fn != nil {
			sb.SetNormalizer(name, fn).AddAllowedTypes(name, schema.TagString)
		}

		if p.Default != nil {
			sb.SetDefault(name, p.Default)
		}
		if len(p.Enum) > 0 {
			sb.SetAllowedValues(name, p.Enum...)
		}
	}

	spec, err := sb.Build()
	if err != nil {
		return nil, err
	}
	b.logger.Debug("compiled definition", "definition", def.Name, "properties", spec.Len())
	return spec, nil
}

// normalizerFor returns the coercion for p, or nil when its location is not
// normalized or no normalizer supports it.
func (b *Builder) normalizerFor(p *schema.Property, name string, required bool) normalizer.Func {
	if !slices.Contains(b.locations, p.Location) {
		return nil
	}
	return b.normalizers.First(p, name, required)
}

// Locations returns the normalized locations.
func (b *Builder) Locations() []schema.Location {
	return slices.Clone(b.locations)
}
