package httpresolver

import (
	"github.com/erraggy/oasresolver/merger"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/oaslog"
)

// DefaultMaxBodySize is the largest request body Bind reads.
const DefaultMaxBodySize int64 = 10 << 20

// Option is a functional option for configuring a Binder.
type Option func(*config) error

type config struct {
	strategy    merger.Strategy
	maxBodySize int64
	logger      oaslog.Logger
}

func defaultConfig() *config {
	return &config{
		strategy:    merger.ReplaceLastWin{},
		maxBodySize: DefaultMaxBodySize,
		logger:      oaslog.NopLogger{},
	}
}

// WithStrategy sets the key naming. It must match the merger the resolved
// spec was built with. Defaults to merger.ReplaceLastWin.
func WithStrategy(s merger.Strategy) Option {
	return func(c *config) error {
		if s == nil {
			return &oaserrors.ConfigError{Option: "strategy", Message: "strategy cannot be nil"}
		}
		c.strategy = s
		return nil
	}
}

// WithMaxBodySize sets the maximum request body size in bytes.
// Default: 10 MiB.
func WithMaxBodySize(n int64) Option {
	return func(c *config) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "maxBodySize", Value: n, Message: "maxBodySize must be positive"}
		}
		c.maxBodySize = n
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
