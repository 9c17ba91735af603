// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasresolver capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasresolver"
	"github.com/erraggy/oasresolver/oaslog"
	"github.com/erraggy/oasresolver/resolver"
)

const serverInstructions = `oasresolver MCP server: lists, compiles and resolves values against OpenAPI 2.0 and 3.0 definitions and operations.

Configuration: All defaults are configurable via OASRESOLVER_* environment variables set in your MCP client config.

Key settings:
- OASRESOLVER_MERGE_STRATEGY (default: replace-last-win) - key naming for operations; combine-name prefixes keys with the location, e.g. query_limit
- OASRESOLVER_NORMALIZE_LOCATIONS (default: path,query,header,cookie) - locations whose string values are coerced; "none" disables
- OASRESOLVER_FAIL_FAST (default: false) - stop at the first failing key
- OASRESOLVER_IGNORE_UNDEFINED (default: false) - drop undeclared input keys instead of failing
- OASRESOLVER_REDIS_ADDR - cache definitions in Redis instead of memory
- OASRESOLVER_LIST_LIMIT (default: 100) - default result limit for list
- OASRESOLVER_MCP_CACHE_DOCUMENT_TTL (default: 15m) - how long loaded documents stay cached

Caching: Loaded documents and their compiled specs are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		documentCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasresolver", Version: oasresolver.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list",
		Description: "List the definitions (2.0 definitions or 3.x components.schemas) and operations of an OpenAPI document, with loader warnings for anything skipped during conversion. Use kind to list only definitions or only operations, and offset/limit to paginate. Default limit is configurable via OASRESOLVER_LIST_LIMIT.",
	}, handleList)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compile",
		Description: "Compile a definition, or an operation (route + method), into its resolution spec. Returns one entry per key: allowed runtime types, required flag, default, enum, and whether string values are normalized. Operation keys follow the merge strategy set by OASRESOLVER_MERGE_STRATEGY.",
	}, handleCompile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve raw values against a definition, or an operation (route + method). Values may be strings as they arrive in query strings and headers; they are coerced, type checked and validated. Returns the resolved values, or one issue per failing key with the violated rule. Use fail_fast to stop at the first failure and ignore_undefined to drop undeclared keys.",
	}, handleResolve)
}

// target identifies what a tool compiles: a definition, or an operation.
type target struct {
	Definition string
	Route      string
	Method     string
}

func (t target) validate() error {
	switch {
	case t.Definition != "" && t.Route != "":
		return errors.New("provide either definition or route, not both")
	case t.Definition == "" && t.Route == "":
		return errors.New("provide a definition name, or a route and method")
	case t.Route != "" && t.Method == "":
		return errors.New("method is required with route")
	}
	return nil
}

func (t target) kind() string {
	if t.Definition != "" {
		return "definition"
	}
	return "operation"
}

// spec compiles the target through the document's registry.
func (t target) spec(ctx context.Context, d *loadedDocument) (*resolver.Spec, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	if t.Definition != "" {
		return d.reg.Definition(ctx, t.Definition)
	}
	return d.reg.Operation(ctx, t.Route, t.Method)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// logger adapts the process-wide slog logger.
func logger() oaslog.Logger {
	return oaslog.NewSlogAdapter(slog.Default())
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// upperMethod renders a method the way operations are keyed.
func upperMethod(method string) string {
	return strings.ToUpper(method)
}

// operationLabel returns "METHOD /route".
func operationLabel(method, route string) string {
	return fmt.Sprintf("%s %s", upperMethod(method), route)
}
