package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasresolver/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. It takes no flags;
// the server is configured through OASRESOLVER_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasresolver mcp\n\n")
		Writef(fs.Output(), "Serve the list, compile and resolve tools over MCP on stdin/stdout.\n\n")
		Writef(fs.Output(), "Environment:\n")
		Writef(fs.Output(), "  OASRESOLVER_MERGE_STRATEGY         replace-last-win or combine-name\n")
		Writef(fs.Output(), "  OASRESOLVER_NORMALIZE_LOCATIONS    comma-separated locations, or none\n")
		Writef(fs.Output(), "  OASRESOLVER_REDIS_ADDR             share compiled definitions through redis\n")
		Writef(fs.Output(), "  OASRESOLVER_MCP_CACHE_ENABLED      cache loaded documents (default true)\n")
		Writef(fs.Output(), "  OASRESOLVER_MCP_CACHE_MAX_SIZE     cached document limit (default 10)\n")
	}
	return fs
}

// HandleMCP runs the MCP server until stdin closes or the process is
// interrupted.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if ok, err := parseFlagSet(fs, args); !ok {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
