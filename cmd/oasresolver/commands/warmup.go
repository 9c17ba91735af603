package commands

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/erraggy/oasresolver/internal/cliutil"
)

// WarmupFlags contains flags for the warmup command
type WarmupFlags struct {
	Common CommonFlags
}

// SetupWarmupFlags creates and configures a FlagSet for the warmup command.
func SetupWarmupFlags() (*flag.FlagSet, *WarmupFlags) {
	fs := flag.NewFlagSet("warmup", flag.ContinueOnError)
	flags := &WarmupFlags{}
	addCommonFlags(fs, &flags.Common)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasresolver warmup [flags] <file|->\n\n")
		Writef(fs.Output(), "Compile every definition and operation of a document. With\n")
		Writef(fs.Output(), "OASRESOLVER_REDIS_ADDR set, merged definitions are stored for other processes.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Everything compiled\n")
		Writef(fs.Output(), "  1    At least one definition or operation failed\n")
	}
	return fs, flags
}

// WarmupOutput is the structured output of the warmup command.
type WarmupOutput struct {
	Compiled int               `json:"compiled" yaml:"compiled"`
	Failed   map[string]string `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// HandleWarmup executes the warmup command
func HandleWarmup(args []string) error {
	fs, flags := SetupWarmupFlags()
	if ok, err := parseFlagSet(fs, args); !ok {
		return err
	}
	path, err := requireDocumentArg(fs, "warmup")
	if err != nil {
		return err
	}
	if err := ValidateOutputFormat(flags.Common.Format); err != nil {
		return err
	}

	_, reg, closeFn, err := openRegistry(fs, &flags.Common, path)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	result, err := reg.Warmup(context.Background())
	if err != nil {
		return err
	}

	out := WarmupOutput{Compiled: result.Compiled}
	if len(result.Failed) > 0 {
		out.Failed = make(map[string]string, len(result.Failed))
		for name, ferr := range result.Failed {
			out.Failed[name] = ferr.Error()
		}
	}

	if flags.Common.Format != cliutil.FormatText {
		if err := OutputStructured(out, flags.Common.Format); err != nil {
			return err
		}
	} else {
		Writef(stdout, "Compiled: %d\n", out.Compiled)
		names := make([]string, 0, len(out.Failed))
		for name := range out.Failed {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			Writef(stdout, "✗ %s: %s\n", name, out.Failed[name])
		}
	}

	if len(out.Failed) > 0 {
		return fmt.Errorf("warmup: %d of %d failed", len(out.Failed), len(out.Failed)+out.Compiled)
	}
	return nil
}
