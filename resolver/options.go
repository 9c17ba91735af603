package resolver

import (
	"github.com/erraggy/oasresolver/oaslog"
	"github.com/erraggy/oasresolver/validator"
)

// Option is a functional option for configuring a Resolver.
type Option func(*config) error

type config struct {
	validators      *validator.Chain
	failFast        bool
	ignoreUndefined bool
	logger          oaslog.Logger
}

func defaultConfig() *config {
	return &config{
		validators: validator.Default(),
		logger:     oaslog.NopLogger{},
	}
}

// WithValidators sets the validator chain. A nil chain disables constraint
// checks. Defaults to validator.Default().
func WithValidators(chain *validator.Chain) Option {
	return func(c *config) error {
		c.validators = chain
		return nil
	}
}

// WithFailFast makes resolution stop at the first failing key instead of
// collecting every failure.
func WithFailFast(enabled bool) Option {
	return func(c *config) error {
		c.failFast = enabled
		return nil
	}
}

// WithIgnoreUndefined drops input keys the spec does not declare instead of
// reporting them as *oaserrors.UndefinedPropertyError.
func WithIgnoreUndefined(enabled bool) Option {
	return func(c *config) error {
		c.ignoreUndefined = enabled
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
