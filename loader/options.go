package loader

import (
	"io"

	"github.com/erraggy/oasresolver/internal/options"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/oaslog"
)

// Option is a function that configures a load operation
type Option func(*loadConfig) error

// loadConfig holds configuration for a load operation
type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	externalRefs bool
	logger       oaslog.Logger

	// Source identification
	sourceName *string
}

func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{logger: oaslog.NopLogger{}}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"loader: must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"loader: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a local file as the input source
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "filePath", Message: "loader: file path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *loadConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "reader", Message: "loader: reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "bytes", Message: "loader: bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithSourceName overrides Document.SourcePath. Useful with WithBytes and
// WithReader, where the default is a placeholder.
func WithSourceName(name string) Option {
	return func(cfg *loadConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithExternalRefs allows OAS 3.x documents loaded from a file to resolve
// $ref values pointing at sibling files.
// Default: false
func WithExternalRefs(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.externalRefs = enabled
		return nil
	}
}

// WithLogger sets the logger. Each conversion warning is also logged at
// warn level.
func WithLogger(l oaslog.Logger) Option {
	return func(cfg *loadConfig) error {
		cfg.logger = oaslog.OrNop(l)
		return nil
	}
}

func (cfg *loadConfig) source() string {
	switch {
	case cfg.sourceName != nil:
		return *cfg.sourceName
	case cfg.filePath != nil:
		return *cfg.filePath
	case cfg.reader != nil:
		return "reader.yaml"
	}
	return "bytes.yaml"
}
