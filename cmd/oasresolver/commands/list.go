package commands

import (
	"flag"
	"strings"

	"github.com/erraggy/oasresolver/internal/cliutil"
	"github.com/erraggy/oasresolver/internal/issues"
	"github.com/erraggy/oasresolver/loader"
	"github.com/erraggy/oasresolver/schema"
)

// ListFlags contains flags for the list command
type ListFlags struct {
	Common CommonFlags
}

// SetupListFlags creates and configures a FlagSet for the list command.
func SetupListFlags() (*flag.FlagSet, *ListFlags) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	flags := &ListFlags{}
	addCommonFlags(fs, &flags.Common)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasresolver list [flags] <file|->\n\n")
		Writef(fs.Output(), "List the definitions and operations of an OpenAPI 2.0 or 3.0 document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasresolver list openapi.yaml\n")
		Writef(fs.Output(), "  oasresolver list --format json swagger.json | jq '.operations[].route'\n")
	}
	return fs, flags
}

// ListOperation is one operation in list output.
type ListOperation struct {
	Method      string `json:"method" yaml:"method"`
	Route       string `json:"route" yaml:"route"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  int    `json:"parameters" yaml:"parameters"`
	Body        string `json:"body,omitempty" yaml:"body,omitempty"`
}

// ListOutput is the structured output of the list command.
type ListOutput struct {
	Source      string          `json:"source" yaml:"source"`
	Version     string          `json:"version" yaml:"version"`
	Definitions []string        `json:"definitions" yaml:"definitions"`
	Operations  []ListOperation `json:"operations" yaml:"operations"`
	Warnings    []issues.Issue  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HandleList executes the list command
func HandleList(args []string) error {
	fs, flags := SetupListFlags()
	if ok, err := parseFlagSet(fs, args); !ok {
		return err
	}
	path, err := requireDocumentArg(fs, "list")
	if err != nil {
		return err
	}
	if err := ValidateOutputFormat(flags.Common.Format); err != nil {
		return err
	}

	doc, err := loadDocument(path, flags.Common.Logger())
	if err != nil {
		return err
	}
	out := buildListOutput(doc)

	if flags.Common.Format != cliutil.FormatText {
		return OutputStructured(out, flags.Common.Format)
	}

	Writef(stdout, "Source: %s\n", out.Source)
	Writef(stdout, "Version: %s\n", out.Version)
	Writef(stdout, "\nDefinitions (%d):\n", len(out.Definitions))
	for _, name := range out.Definitions {
		Writef(stdout, "  %s\n", name)
	}
	Writef(stdout, "\nOperations (%d):\n", len(out.Operations))
	for _, op := range out.Operations {
		line := "  " + op.Method + " " + op.Route
		if op.OperationID != "" {
			line += " (" + op.OperationID + ")"
		}
		if op.Body != "" {
			line += " body: " + op.Body
		}
		Writef(stdout, "%s\n", line)
	}
	if len(out.Warnings) > 0 {
		Writef(stdout, "\nWarnings (%d):\n", len(out.Warnings))
		for _, w := range out.Warnings {
			Writef(stdout, "  %s\n", w)
		}
	}
	return nil
}

func buildListOutput(doc *loader.Document) ListOutput {
	out := ListOutput{
		Source:      doc.SourcePath,
		Version:     doc.Version,
		Definitions: doc.Definitions.Names(),
		Operations:  make([]ListOperation, 0, len(doc.Operations)),
		Warnings:    issues.FromWarnings(doc.Warnings),
	}
	for _, op := range doc.Operations {
		lo := ListOperation{
			Method:      strings.ToUpper(op.Method),
			Route:       op.Route,
			OperationID: op.ID,
			Parameters:  len(op.Parameters),
		}
		if body := op.RequestBody; body != nil {
			switch {
			case body.Ref != "":
				lo.Body = schema.RefName(body.Ref)
			case body.Inline != nil:
				lo.Body = "inline"
			}
		}
		out.Operations = append(out.Operations, lo)
	}
	return out
}
