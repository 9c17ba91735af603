// Package oaslog is the logging seam of the compiler, merger, registry and
// resolver. Each takes a Logger through a WithLogger option and stays silent
// by default. Attributes are alternating key-value pairs, as in log/slog:
//
//	reg, err := registry.New(doc, registry.WithLogger(oaslog.NewTextLogger(os.Stderr, true)))
package oaslog

import (
	"io"
	"log/slog"
)

// Logger receives diagnostic events: compiled definitions, store misses,
// replaced merge keys, keys that failed to resolve.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)

	// With returns a Logger that prepends attrs, e.g. the definition name.
	With(attrs ...any) Logger
}

// NopLogger discards everything. Components use it when no logger is set.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter backs Logger with a *slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger; nil means slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.logger.Debug(msg, attrs...) }
func (s *SlogAdapter) Info(msg string, attrs ...any)  { s.logger.Info(msg, attrs...) }
func (s *SlogAdapter) Warn(msg string, attrs ...any)  { s.logger.Warn(msg, attrs...) }
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.logger.Error(msg, attrs...) }

func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

// NewTextLogger returns the logger the command line uses: slog text records
// on w at debug level when verbose, and a NopLogger otherwise.
func NewTextLogger(w io.Writer, verbose bool) Logger {
	if !verbose {
		return NopLogger{}
	}
	return NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// OrNop returns l, or NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
)
