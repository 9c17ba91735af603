package commands

import (
	"flag"

	"github.com/erraggy/oasresolver"
)

// VersionFlags contains flags for the version command
type VersionFlags struct {
	Verbose bool
}

// SetupVersionFlags creates and configures a FlagSet for the version command.
func SetupVersionFlags() (*flag.FlagSet, *VersionFlags) {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	flags := &VersionFlags{}
	fs.BoolVar(&flags.Verbose, "v", false, "print build details")
	fs.BoolVar(&flags.Verbose, "verbose", false, "print build details")
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasresolver version [-v]\n")
	}
	return fs, flags
}

// HandleVersion prints the version, or the full build details with -v.
func HandleVersion(args []string) error {
	fs, flags := SetupVersionFlags()
	if ok, err := parseFlagSet(fs, args); !ok {
		return err
	}
	if flags.Verbose {
		Writef(stdout, "%s\n", oasresolver.BuildInfo())
		return nil
	}
	Writef(stdout, "oasresolver v%s\n", oasresolver.Version())
	return nil
}
