package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasresolver/resolver"
)

type compileInput struct {
	Spec       specInput `json:"spec"                 jsonschema:"The OpenAPI document containing the definition or operation"`
	Definition string    `json:"definition,omitempty" jsonschema:"Definition name (e.g. Pet) or reference (#/definitions/Pet)"`
	Route      string    `json:"route,omitempty"      jsonschema:"Operation route as declared, e.g. /pets/{id}"`
	Method     string    `json:"method,omitempty"     jsonschema:"Operation HTTP method (required with route)"`
}

type entrySummary struct {
	Name             string   `json:"name"`
	Location         string   `json:"location,omitempty"`
	Types            []string `json:"types"`
	Required         bool     `json:"required,omitempty"`
	Default          any      `json:"default,omitempty"`
	Enum             []any    `json:"enum,omitempty"`
	Normalized       bool     `json:"normalized,omitempty"`
	Format           string   `json:"format,omitempty"`
	CollectionFormat string   `json:"collection_format,omitempty"`
}

type compileOutput struct {
	Name     string         `json:"name"`
	Kind     string         `json:"kind"`
	Strategy string         `json:"strategy,omitempty"`
	Count    int            `json:"count"`
	Entries  []entrySummary `json:"entries,omitempty"`
}

func handleCompile(ctx context.Context, _ *mcp.CallToolRequest, input compileInput) (*mcp.CallToolResult, compileOutput, error) {
	t := target{Definition: input.Definition, Route: input.Route, Method: input.Method}
	if err := t.validate(); err != nil {
		return errResult(err), compileOutput{}, nil
	}
	loaded, err := input.Spec.load()
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}
	spec, err := t.spec(ctx, loaded)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}

	output := compileOutput{
		Name:  spec.Name(),
		Kind:  t.kind(),
		Count: spec.Len(),
	}
	if t.Route != "" {
		output.Strategy = cfg.MergeStrategy
	}
	entries := spec.Entries()
	output.Entries = makeSlice[entrySummary](len(entries))
	for _, e := range entries {
		output.Entries = append(output.Entries, summarizeEntry(e))
	}
	return nil, output, nil
}

func summarizeEntry(e resolver.Entry) entrySummary {
	s := entrySummary{
		Name:       e.Name,
		Types:      make([]string, len(e.AllowedTypes)),
		Required:   e.Required,
		Enum:       e.AllowedValues,
		Normalized: e.Normalized(),
	}
	for i, tag := range e.AllowedTypes {
		s.Types[i] = string(tag)
	}
	if e.HasDefault {
		s.Default = e.Default
	}
	if p := e.Property; p != nil {
		s.Location = string(p.Location)
		s.Format = p.Format
		s.CollectionFormat = string(p.CollectionFormat)
	}
	return s
}
