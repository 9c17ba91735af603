package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/erraggy/oasresolver/internal/cliutil"
	"github.com/erraggy/oasresolver/internal/settings"
	"github.com/erraggy/oasresolver/registry"
	"github.com/erraggy/oasresolver/resolver"
)

// CompileFlags contains flags for the compile command
type CompileFlags struct {
	Common CommonFlags
	Target TargetFlags
}

// SetupCompileFlags creates and configures a FlagSet for the compile command.
func SetupCompileFlags() (*flag.FlagSet, *CompileFlags) {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	flags := &CompileFlags{}
	addCommonFlags(fs, &flags.Common)
	addTargetFlags(fs, &flags.Target)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasresolver compile [flags] <file|->\n\n")
		Writef(fs.Output(), "Compile a definition or an operation and print its resolution spec.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasresolver compile --definition Pet openapi.yaml\n")
		Writef(fs.Output(), "  oasresolver compile --route /pets/{id} --method put --strategy combine-name openapi.yaml\n")
	}
	return fs, flags
}

// CompiledEntry is one key of a compiled spec.
type CompiledEntry struct {
	Name       string   `json:"name" yaml:"name"`
	Location   string   `json:"location,omitempty" yaml:"location,omitempty"`
	Types      []string `json:"types" yaml:"types"`
	Required   bool     `json:"required" yaml:"required"`
	Default    any      `json:"default,omitempty" yaml:"default,omitempty"`
	Enum       []any    `json:"enum,omitempty" yaml:"enum,omitempty"`
	Normalized bool     `json:"normalized" yaml:"normalized"`
}

// CompileOutput is the structured output of the compile command.
type CompileOutput struct {
	Name    string          `json:"name" yaml:"name"`
	Entries []CompiledEntry `json:"entries" yaml:"entries"`
}

// HandleCompile executes the compile command
func HandleCompile(args []string) error {
	fs, flags := SetupCompileFlags()
	if ok, err := parseFlagSet(fs, args); !ok {
		return err
	}
	path, err := requireDocumentArg(fs, "compile")
	if err != nil {
		return err
	}
	if err := ValidateOutputFormat(flags.Common.Format); err != nil {
		return err
	}
	if err := flags.Target.Validate(); err != nil {
		return err
	}

	_, reg, closeFn, err := openRegistry(fs, &flags.Common, path)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	spec, err := compileTarget(context.Background(), reg, &flags.Target)
	if err != nil {
		return err
	}
	out := buildCompileOutput(spec)

	if flags.Common.Format != cliutil.FormatText {
		return OutputStructured(out, flags.Common.Format)
	}

	Writef(stdout, "%s (%d keys)\n", out.Name, len(out.Entries))
	for _, e := range out.Entries {
		var marks []string
		if e.Required {
			marks = append(marks, "required")
		}
		if e.Normalized {
			marks = append(marks, "normalized")
		}
		if e.Default != nil {
			marks = append(marks, fmt.Sprintf("default=%v", e.Default))
		}
		if len(e.Enum) > 0 {
			marks = append(marks, fmt.Sprintf("enum=%v", e.Enum))
		}
		name := e.Name
		if e.Location != "" {
			name += " (" + e.Location + ")"
		}
		line := fmt.Sprintf("  %-24s %s", name, strings.Join(e.Types, "|"))
		if len(marks) > 0 {
			line += "  " + strings.Join(marks, ", ")
		}
		Writef(stdout, "%s\n", line)
	}
	return nil
}

// openRegistry loads the document and builds a registry from the effective
// settings, which it also returns.
func openRegistry(fs *flag.FlagSet, common *CommonFlags, path string) (*settings.Settings, *registry.Registry, func() error, error) {
	s, err := common.Settings(fs)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := common.Logger()
	doc, err := loadDocument(path, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	reg, closeFn, err := s.NewRegistry(doc, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return s, reg, closeFn, nil
}

func compileTarget(ctx context.Context, reg *registry.Registry, t *TargetFlags) (*resolver.Spec, error) {
	if t.IsOperation() {
		return reg.Operation(ctx, t.Route, t.Method)
	}
	return reg.Definition(ctx, t.Definition)
}

func buildCompileOutput(spec *resolver.Spec) CompileOutput {
	out := CompileOutput{Name: spec.Name()}
	for _, e := range spec.Entries() {
		ce := CompiledEntry{
			Name:       e.Name,
			Types:      make([]string, len(e.AllowedTypes)),
			Required:   e.Required,
			Enum:       e.AllowedValues,
			Normalized: e.Normalized(),
		}
		for i, tag := range e.AllowedTypes {
			ce.Types[i] = string(tag)
		}
		if e.HasDefault {
			ce.Default = e.Default
		}
		if e.Property != nil {
			ce.Location = string(e.Property.Location)
		}
		out.Entries = append(out.Entries, ce)
	}
	return out
}
