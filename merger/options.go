package merger

import (
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/oaslog"
)

// Option is a functional option for configuring a Merger.
type Option func(*config) error

type config struct {
	strategy Strategy
	logger   oaslog.Logger
}

func defaultConfig() *config {
	return &config{
		strategy: ReplaceLastWin{},
		logger:   oaslog.NopLogger{},
	}
}

// WithStrategy sets the merge strategy. Defaults to ReplaceLastWin.
func WithStrategy(s Strategy) Option {
	return func(c *config) error {
		if s == nil {
			return &oaserrors.ConfigError{Option: "strategy", Message: "strategy cannot be nil"}
		}
		c.strategy = s
		return nil
	}
}

// WithStrategyName sets the merge strategy by name.
// See ValidStrategies for accepted names.
func WithStrategyName(name string) Option {
	return func(c *config) error {
		s, err := ParseStrategy(name)
		if err != nil {
			return err
		}
		c.strategy = s
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
