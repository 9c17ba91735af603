// Package settings holds the runtime defaults shared by the CLI and the MCP
// server. Values come from OASRESOLVER_* environment variables and may be
// overridden by a YAML file.
package settings

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasresolver/builder"
	"github.com/erraggy/oasresolver/loader"
	"github.com/erraggy/oasresolver/merger"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/oaslog"
	"github.com/erraggy/oasresolver/registry"
	"github.com/erraggy/oasresolver/resolver"
	"github.com/erraggy/oasresolver/schema"
)

// Environment variable names.
const (
	EnvMergeStrategy      = "OASRESOLVER_MERGE_STRATEGY"
	EnvNormalizeLocations = "OASRESOLVER_NORMALIZE_LOCATIONS"
	EnvFailFast           = "OASRESOLVER_FAIL_FAST"
	EnvIgnoreUndefined    = "OASRESOLVER_IGNORE_UNDEFINED"
	EnvCacheTTL           = "OASRESOLVER_CACHE_TTL"
	EnvRedisAddr          = "OASRESOLVER_REDIS_ADDR"
	EnvRedisPrefix        = "OASRESOLVER_REDIS_PREFIX"
	EnvListLimit          = "OASRESOLVER_LIST_LIMIT"
	EnvMaxInlineSize      = "OASRESOLVER_MAX_INLINE_SIZE"
)

// EnvKeys returns every variable FromEnv reads.
func EnvKeys() []string {
	return []string{
		EnvMergeStrategy, EnvNormalizeLocations, EnvFailFast, EnvIgnoreUndefined,
		EnvCacheTTL, EnvRedisAddr, EnvRedisPrefix, EnvListLimit, EnvMaxInlineSize,
	}
}

// Settings holds the configurable defaults.
type Settings struct {
	MergeStrategy      string
	NormalizeLocations []schema.Location
	FailFast           bool
	IgnoreUndefined    bool
	CacheTTL           time.Duration
	RedisAddr          string
	RedisPrefix        string
	ListLimit          int
	MaxInlineSize      int64
}

// Default returns the built-in defaults.
func Default() *Settings {
	return &Settings{
		MergeStrategy:      string(merger.StrategyReplaceLastWin),
		NormalizeLocations: schema.TextLocations(),
		CacheTTL:           registry.DefaultTTL,
		RedisPrefix:        registry.DefaultRedisPrefix,
		ListLimit:          100,
		MaxInlineSize:      10 << 20,
	}
}

// FromEnv returns the defaults overridden by OASRESOLVER_* variables.
// Invalid values log a warning and fall back to the default.
func FromEnv() *Settings {
	d := Default()
	return &Settings{
		MergeStrategy:      envStrategy(EnvMergeStrategy, d.MergeStrategy),
		NormalizeLocations: envLocations(EnvNormalizeLocations, d.NormalizeLocations),
		FailFast:           EnvBool(EnvFailFast, d.FailFast),
		IgnoreUndefined:    EnvBool(EnvIgnoreUndefined, d.IgnoreUndefined),
		CacheTTL:           EnvDuration(EnvCacheTTL, d.CacheTTL),
		RedisAddr:          os.Getenv(EnvRedisAddr),
		RedisPrefix:        envString(EnvRedisPrefix, d.RedisPrefix),
		ListLimit:          EnvInt(EnvListLimit, d.ListLimit),
		MaxInlineSize:      int64(EnvInt(EnvMaxInlineSize, int(d.MaxInlineSize))),
	}
}

// fileSettings mirrors Settings for YAML; nil fields keep the current value.
type fileSettings struct {
	MergeStrategy      *string  `yaml:"merge_strategy"`
	NormalizeLocations []string `yaml:"normalize_locations"`
	FailFast           *bool    `yaml:"fail_fast"`
	IgnoreUndefined    *bool    `yaml:"ignore_undefined"`
	CacheTTL           *string  `yaml:"cache_ttl"`
	RedisAddr          *string  `yaml:"redis_addr"`
	RedisPrefix        *string  `yaml:"redis_prefix"`
	ListLimit          *int     `yaml:"list_limit"`
	MaxInlineSize      *int64   `yaml:"max_inline_size"`
}

// LoadFile applies the YAML file at path over s. Unlike environment
// variables, invalid file values are errors.
func (s *Settings) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is provided by the user
	if err != nil {
		return &oaserrors.ConfigError{Option: "config", Value: path, Message: "reading config file", Cause: err}
	}
	return s.Apply(data)
}

// Apply decodes YAML data over s.
func (s *Settings) Apply(data []byte) error {
	var f fileSettings
	if err := yaml.Unmarshal(data, &f); err != nil {
		return &oaserrors.ConfigError{Option: "config", Message: "decoding config file", Cause: err}
	}

	if f.MergeStrategy != nil {
		if !merger.IsValidStrategy(*f.MergeStrategy) {
			_, err := merger.ParseStrategy(*f.MergeStrategy)
			return err
		}
		s.MergeStrategy = *f.MergeStrategy
	}
	if f.NormalizeLocations != nil {
		locations, err := ParseLocations(strings.Join(f.NormalizeLocations, ","))
		if err != nil {
			return err
		}
		s.NormalizeLocations = locations
	}
	if f.FailFast != nil {
		s.FailFast = *f.FailFast
	}
	if f.IgnoreUndefined != nil {
		s.IgnoreUndefined = *f.IgnoreUndefined
	}
	if f.CacheTTL != nil {
		ttl, err := time.ParseDuration(*f.CacheTTL)
		if err != nil || ttl < 0 {
			return &oaserrors.ConfigError{Option: "cache_ttl", Value: *f.CacheTTL, Message: "invalid duration"}
		}
		s.CacheTTL = ttl
	}
	if f.RedisAddr != nil {
		s.RedisAddr = *f.RedisAddr
	}
	if f.RedisPrefix != nil {
		s.RedisPrefix = *f.RedisPrefix
	}
	if f.ListLimit != nil {
		if *f.ListLimit <= 0 {
			return &oaserrors.ConfigError{Option: "list_limit", Value: *f.ListLimit, Message: "must be positive"}
		}
		s.ListLimit = *f.ListLimit
	}
	if f.MaxInlineSize != nil {
		if *f.MaxInlineSize <= 0 {
			return &oaserrors.ConfigError{Option: "max_inline_size", Value: *f.MaxInlineSize, Message: "must be positive"}
		}
		s.MaxInlineSize = *f.MaxInlineSize
	}
	return nil
}

// ParseLocations parses a comma-separated location list. An empty list
// disables normalization; the environment spells that "none".
func ParseLocations(list string) ([]schema.Location, error) {
	var out []schema.Location
	for _, part := range strings.Split(list, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		l := schema.Location(part)
		if !l.IsValid() {
			return nil, &oaserrors.ConfigError{
				Option:  "normalize_locations",
				Value:   part,
				Message: "unknown location",
			}
		}
		out = append(out, l)
	}
	return out, nil
}

// ResolverOptions returns the resolver options s describes.
func (s *Settings) ResolverOptions() []resolver.Option {
	return []resolver.Option{
		resolver.WithFailFast(s.FailFast),
		resolver.WithIgnoreUndefined(s.IgnoreUndefined),
	}
}

// NewRegistry builds a registry for doc. With RedisAddr set, definitions are
// cached in Redis; the returned close function releases the client.
func (s *Settings) NewRegistry(doc *loader.Document, logger oaslog.Logger) (*registry.Registry, func() error, error) {
	b, err := builder.New(
		builder.WithNormalizationLocations(s.NormalizeLocations...),
		builder.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	m, err := merger.New(merger.WithStrategyName(s.MergeStrategy), merger.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	opts := []registry.Option{
		registry.WithBuilder(b),
		registry.WithMerger(m),
		registry.WithResolverOptions(s.ResolverOptions()...),
		registry.WithTTL(s.CacheTTL),
		registry.WithLogger(logger),
	}
	closeFn := func() error { return nil }
	if s.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: s.RedisAddr})
		opts = append(opts, registry.WithStore(registry.NewRedisStore(client, s.RedisPrefix)))
		closeFn = client.Close
	}

	reg, err := registry.New(doc, opts...)
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("creating registry: %w", err)
	}
	return reg, closeFn, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvBool reads a boolean variable, warning and falling back on bad input.
func EnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

// EnvInt reads a positive integer variable, warning and falling back on bad
// input.
func EnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

// EnvDuration reads a non-negative duration variable, warning and falling
// back on bad input.
func EnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

func envStrategy(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if !merger.IsValidStrategy(v) {
		slog.Warn("invalid strategy env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return v
}

func envLocations(key string, fallback []schema.Location) []schema.Location {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if strings.EqualFold(v, "none") {
		return nil
	}
	locations, err := ParseLocations(v)
	if err != nil {
		slog.Warn("invalid locations env var, using default", "key", key, "value", v, "error", err) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return locations
}
