package builder

import (
	"fmt"

	"github.com/erraggy/oasresolver/normalizer"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/oaslog"
	"github.com/erraggy/oasresolver/schema"
)

// Option is a functional option for configuring a Builder.
type Option func(*config) error

type config struct {
	normalizers *normalizer.Registry
	locations   []schema.Location
	logger      oaslog.Logger
}

func defaultConfig() *config {
	return &config{
		normalizers: normalizer.Default(),
		locations:   schema.TextLocations(),
		logger:      oaslog.NopLogger{},
	}
}

// WithNormalizers sets the normalizer registry. A nil registry disables
// normalization. Defaults to normalizer.Default().
func WithNormalizers(reg *normalizer.Registry) Option {
	return func(c *config) error {
		c.normalizers = reg
		return nil
	}
}

// WithNormalizationLocations sets the locations whose values are normalized.
// Defaults to path, query, header and cookie.
func WithNormalizationLocations(locations ...schema.Location) Option {
	return func(c *config) error {
		for _, l := range locations {
			if !l.IsValid() {
				return &oaserrors.ConfigError{
					Option:  "normalizationLocations",
					Value:   l,
					Message: fmt.Sprintf("unknown location %q", l),
				}
			}
		}
		c.locations = locations
		return nil
	}
}

// WithLogger sets the logger. Defaults to oaslog.NopLogger.
func WithLogger(l oaslog.Logger) Option {
	return func(c *config) error {
		c.logger = oaslog.OrNop(l)
		return nil
	}
}
