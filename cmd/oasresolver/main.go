package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasresolver/cmd/oasresolver/commands"
)

var handlers = map[string]func([]string) error{
	"list":    commands.HandleList,
	"compile": commands.HandleCompile,
	"resolve": commands.HandleResolve,
	"warmup":  commands.HandleWarmup,
	"mcp":     commands.HandleMCP,
	"version": commands.HandleVersion,
}

// commandNames lists every command, including help, for suggestions.
var commandNames = []string{"compile", "help", "list", "mcp", "resolve", "version", "warmup"}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]
	switch command {
	case "-v", "--version":
		command = "version"
	case "help", "-h", "--help":
		printUsage()
		return 0
	}

	handler, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		return 1
	}
	if err := handler(args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oasresolver - Resolve runtime values against OpenAPI schemas

Usage:
  oasresolver <command> [options]

Commands:
  list        List the definitions and operations of a document
  compile     Print the resolution spec of a definition or operation
  resolve     Resolve raw values against a definition or operation
  warmup      Compile every definition and operation
  mcp         Serve the tools over the Model Context Protocol (stdio)
  version     Show version information
  help        Show this help message

Examples:
  oasresolver list openapi.yaml
  oasresolver compile --definition Pet openapi.yaml
  oasresolver resolve --route /pets --method get --set limit=5 openapi.yaml
  oasresolver warmup --strategy combine-name swagger.yaml

Run 'oasresolver <command> --help' for more information on a command.`)
}
