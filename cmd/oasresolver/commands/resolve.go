package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/erraggy/oasresolver/httpresolver"
	"github.com/erraggy/oasresolver/internal/cliutil"
	"github.com/erraggy/oasresolver/internal/issues"
	"github.com/erraggy/oasresolver/merger"
	"github.com/erraggy/oasresolver/resolver"
	"github.com/erraggy/oasresolver/schema"
)

// ErrResolutionFailed is returned after the issues of a failed resolution
// have been printed.
var ErrResolutionFailed = errors.New("resolution failed")

// keyValues is a repeatable key=value flag.
type keyValues map[string]string

func (kv keyValues) String() string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + kv[k]
	}
	return strings.Join(parts, ",")
}

func (kv keyValues) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	kv[k] = v
	return nil
}

// ResolveFlags contains flags for the resolve command
type ResolveFlags struct {
	Common CommonFlags
	Target TargetFlags
	Values keyValues
	Body   string
}

// SetupResolveFlags creates and configures a FlagSet for the resolve command.
func SetupResolveFlags() (*flag.FlagSet, *ResolveFlags) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	flags := &ResolveFlags{Values: keyValues{}}
	addCommonFlags(fs, &flags.Common)
	addTargetFlags(fs, &flags.Target)
	fs.Var(flags.Values, "set", "raw value as key=value (repeatable)")
	fs.StringVar(&flags.Body, "body", "", "JSON object file with body values (or a definition's raw values)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasresolver resolve [flags] <file|->\n\n")
		Writef(fs.Output(), "Resolve raw values against a definition or an operation.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasresolver resolve --route /pets --method get --set limit=5 --set tags=cat,dog openapi.yaml\n")
		Writef(fs.Output(), "  oasresolver resolve --definition Pet --body pet.json openapi.yaml\n")
		Writef(fs.Output(), "  oasresolver resolve --route /pets/{id} --method put --set id=7 --body pet.json --format json openapi.yaml\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    All values resolved\n")
		Writef(fs.Output(), "  1    Resolution failed or invalid input\n")
	}
	return fs, flags
}

// ResolveOutput is the structured output of the resolve command.
type ResolveOutput struct {
	Valid  bool           `json:"valid" yaml:"valid"`
	Name   string         `json:"name" yaml:"name"`
	Values map[string]any `json:"values,omitempty" yaml:"values,omitempty"`
	Issues []issues.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// HandleResolve executes the resolve command
func HandleResolve(args []string) error {
	fs, flags := SetupResolveFlags()
	if ok, err := parseFlagSet(fs, args); !ok {
		return err
	}
	path, err := requireDocumentArg(fs, "resolve")
	if err != nil {
		return err
	}
	if err := ValidateOutputFormat(flags.Common.Format); err != nil {
		return err
	}
	if err := flags.Target.Validate(); err != nil {
		return err
	}

	s, reg, closeFn, err := openRegistry(fs, &flags.Common, path)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	raw := make(map[string]any, len(flags.Values))
	for k, v := range flags.Values {
		raw[k] = v
	}
	if flags.Body != "" {
		strategy, err := merger.ParseStrategy(s.MergeStrategy)
		if err != nil {
			return err
		}
		if err := addBodyValues(raw, flags.Body, flags.Target.IsOperation(), strategy); err != nil {
			return err
		}
	}

	ctx := context.Background()
	spec, err := compileTarget(ctx, reg, &flags.Target)
	if err != nil {
		return err
	}
	var values *resolver.Values
	if flags.Target.IsOperation() {
		values, err = reg.ResolveOperation(ctx, flags.Target.Route, flags.Target.Method, raw)
	} else {
		values, err = reg.ResolveDefinition(ctx, flags.Target.Definition, raw)
	}

	out := ResolveOutput{Name: spec.Name()}
	if err != nil {
		out.Issues = issues.FromError(err)
	} else {
		out.Valid = true
		if out.Values, err = values.All(); err != nil {
			return err
		}
	}

	if flags.Common.Format != cliutil.FormatText {
		if err := OutputStructured(out, flags.Common.Format); err != nil {
			return err
		}
	} else {
		writeResolveText(out, spec.Names())
	}
	if !out.Valid {
		return fmt.Errorf("%w: %d issue(s)", ErrResolutionFailed, len(out.Issues))
	}
	return nil
}

func writeResolveText(out ResolveOutput, order []string) {
	if !out.Valid {
		Writef(stdout, "%s: %d issue(s)\n", out.Name, len(out.Issues))
		for _, i := range out.Issues {
			Writef(stdout, "  %s\n", i)
		}
		return
	}
	Writef(stdout, "%s: resolved\n", out.Name)
	for _, name := range order {
		v := out.Values[name]
		if v == nil {
			Writef(stdout, "  %s = <nil>\n", name)
			continue
		}
		Writef(stdout, "  %s = %v (%T)\n", name, v, v)
	}
}

// addBodyValues reads a JSON object from path into raw. Operation body keys
// are named by the merge strategy.
func addBodyValues(raw map[string]any, path string, operation bool, strategy merger.Strategy) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is provided by the user
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	fields, err := httpresolver.DecodeBody("application/json", data)
	if err != nil {
		return fmt.Errorf("decoding body %s: %w", path, err)
	}
	for k, v := range fields {
		if operation {
			k = strategy.Key(schema.LocationBody, k)
		}
		raw[k] = v
	}
	return nil
}
