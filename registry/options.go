package registry

import (
	"time"

	"github.com/erraggy/oasresolver/builder"
	"github.com/erraggy/oasresolver/merger"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/oaslog"
	"github.com/erraggy/oasresolver/resolver"
)

// DefaultTTL is how long a stored definition stays valid.
const DefaultTTL = time.Hour

// Option is a functional option for configuring a Registry.
type Option func(*config) error

type config struct {
	store        Store
	ttl          time.Duration
	namespace    string
	builder      *builder.Builder
	merger       *merger.Merger
	resolverOpts []resolver.Option
	metrics      *Metrics
	logger       oaslog.Logger
}

func defaultConfig() *config {
	return &config{
		ttl:    DefaultTTL,
		logger: oaslog.NopLogger{},
	}
}

// WithStore sets the definition store. Defaults to a new MemoryStore.
func WithStore(s Store) Option {
	return func(c *config) error {
		if s == nil {
			return &oaserrors.ConfigError{Option: "store", Message: "store cannot be nil"}
		}
		c.store = s
		return nil
	}
}

// WithTTL sets the lifetime of stored definitions. Zero disables expiry.
// Defaults to DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) error {
		if ttl < 0 {
			return &oaserrors.ConfigError{Option: "ttl", Value: ttl, Message: "ttl cannot be negative"}
		}
		c.ttl = ttl
		return nil
	}
}

// WithNamespace sets the prefix of store keys. Defaults to the document's
// source path plus a prefix of its checksum, so documents sharing a store do
// not collide.
func WithNamespace(ns string) Option {
	return func(c *config) error {
		c.namespace = ns
		return nil
	}
}

// WithBuilder sets the compiler. Defaults to builder.New().
func WithBuilder(b *builder.Builder) Option {
	return func(c *config) error {
		c.builder = b
		return nil
	}
}

// WithMerger sets the operation merger. Defaults to merger.New().
func WithMerger(m *merger.Merger) Option {
	return func(c *config) error {
		c.merger = m
		return nil
	}
}

// WithResolverOptions sets the options passed to resolver.New for the
// Resolve methods.
func WithResolverOptions(opts ...resolver.Option) Option {
	return func(c *config) error {
		c.resolverOpts = opts
		return nil
	}
}

// WithMetrics enables prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *config) error {
		c.metrics = m
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
