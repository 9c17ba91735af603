// Package commands provides CLI command handlers for oasresolver.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erraggy/oasresolver/internal/cliutil"
	"github.com/erraggy/oasresolver/internal/settings"
	"github.com/erraggy/oasresolver/loader"
	"github.com/erraggy/oasresolver/merger"
	"github.com/erraggy/oasresolver/oaslog"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// Writef writes formatted output to w.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if !cliutil.IsValidFormat(format) {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s", format, strings.Join(cliutil.ValidFormats(), ", "))
	}
	return nil
}

// OutputStructured writes data to stdout as json or yaml.
func OutputStructured(data any, format string) error {
	if err := cliutil.Encode(stdout, format, data); err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}
	return nil
}

// CommonFlags are accepted by every command that reads a document.
type CommonFlags struct {
	Config          string
	Format          string
	Verbose         bool
	Strategy        string
	Normalize       string
	FailFast        bool
	IgnoreUndefined bool
}

func addCommonFlags(fs *flag.FlagSet, flags *CommonFlags) {
	fs.StringVar(&flags.Config, "config", "", "YAML settings file (overrides OASRESOLVER_* env vars)")
	fs.StringVar(&flags.Format, "format", cliutil.FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Verbose, "v", false, "log debug output to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log debug output to stderr")
	fs.StringVar(&flags.Strategy, "strategy", "", "merge strategy for operations: "+strings.Join(merger.ValidStrategies(), ", "))
	fs.StringVar(&flags.Normalize, "normalize", "", "comma-separated locations whose string values are coerced, or \"none\"")
	fs.BoolVar(&flags.FailFast, "fail-fast", false, "stop at the first failing key")
	fs.BoolVar(&flags.IgnoreUndefined, "ignore-undefined", false, "drop undeclared input keys instead of failing")
}

// Settings returns the effective settings: env vars, then the --config file,
// then flags explicitly set on fs.
func (f *CommonFlags) Settings(fs *flag.FlagSet) (*settings.Settings, error) {
	s := settings.FromEnv()
	if f.Config != "" {
		if err := s.LoadFile(f.Config); err != nil {
			return nil, err
		}
	}

	var err error
	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "strategy":
			if !merger.IsValidStrategy(f.Strategy) {
				err = fmt.Errorf("invalid strategy '%s'. Valid strategies: %v", f.Strategy, merger.ValidStrategies())
				return
			}
			s.MergeStrategy = f.Strategy
		case "normalize":
			if strings.EqualFold(f.Normalize, "none") {
				s.NormalizeLocations = nil
				return
			}
			s.NormalizeLocations, err = settings.ParseLocations(f.Normalize)
		case "fail-fast":
			s.FailFast = f.FailFast
		case "ignore-undefined":
			s.IgnoreUndefined = f.IgnoreUndefined
		}
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Logger returns a debug slog logger on stderr with --verbose, and a no-op
// logger otherwise.
func (f *CommonFlags) Logger() oaslog.Logger {
	return oaslog.NewTextLogger(os.Stderr, f.Verbose)
}

// TargetFlags select a definition or an operation.
type TargetFlags struct {
	Definition string
	Route      string
	Method     string
}

func addTargetFlags(fs *flag.FlagSet, flags *TargetFlags) {
	fs.StringVar(&flags.Definition, "definition", "", "definition name, e.g. Pet")
	fs.StringVar(&flags.Route, "route", "", "operation route as declared, e.g. /pets/{id}")
	fs.StringVar(&flags.Method, "method", "", "operation HTTP method (required with --route)")
}

// Validate checks that exactly one target is selected.
func (t *TargetFlags) Validate() error {
	switch {
	case t.Definition != "" && t.Route != "":
		return errors.New("use either --definition or --route, not both")
	case t.Definition == "" && t.Route == "":
		return errors.New("one of --definition or --route is required")
	case t.Route != "" && t.Method == "":
		return errors.New("--method is required with --route")
	}
	return nil
}

// IsOperation reports whether the target is an operation.
func (t *TargetFlags) IsOperation() bool {
	return t.Route != ""
}

// loadDocument loads the document at path, or from stdin when path is "-".
func loadDocument(path string, logger oaslog.Logger) (*loader.Document, error) {
	opts := []loader.Option{loader.WithLogger(logger)}
	if path == StdinFilePath {
		opts = append(opts, loader.WithReader(os.Stdin), loader.WithSourceName("stdin.yaml"))
	} else {
		opts = append(opts, loader.WithFilePath(path))
	}
	doc, err := loader.LoadWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return doc, nil
}

// parseFlagSet parses args, treating --help as success. It returns
// (false, nil) when the command should stop.
func parseFlagSet(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// requireDocumentArg checks that exactly one document path was given.
func requireDocumentArg(fs *flag.FlagSet, command string) (string, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return "", fmt.Errorf("%s command requires exactly one file path or '-' for stdin", command)
	}
	return fs.Arg(0), nil
}
