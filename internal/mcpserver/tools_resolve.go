package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasresolver/internal/issues"
	"github.com/erraggy/oasresolver/resolver"
)

type resolveInput struct {
	Spec            specInput      `json:"spec"                       jsonschema:"The OpenAPI document containing the definition or operation"`
	Definition      string         `json:"definition,omitempty"       jsonschema:"Definition name (e.g. Pet) or reference (#/definitions/Pet)"`
	Route           string         `json:"route,omitempty"            jsonschema:"Operation route as declared, e.g. /pets/{id}"`
	Method          string         `json:"method,omitempty"           jsonschema:"Operation HTTP method (required with route)"`
	Values          map[string]any `json:"values,omitempty"           jsonschema:"Raw values keyed by property name (or location_name with the combine-name strategy)"`
	FailFast        *bool          `json:"fail_fast,omitempty"        jsonschema:"Stop at the first failing key"`
	IgnoreUndefined *bool          `json:"ignore_undefined,omitempty" jsonschema:"Drop undeclared input keys instead of failing"`
}

type resolveIssue struct {
	Property string `json:"property,omitempty"`
	Rule     string `json:"rule,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type resolveOutput struct {
	Valid      bool           `json:"valid"`
	Name       string         `json:"name"`
	Values     map[string]any `json:"values,omitempty"`
	IssueCount int            `json:"issue_count"`
	Issues     []resolveIssue `json:"issues,omitempty"`
}

func handleResolve(ctx context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	t := target{Definition: input.Definition, Route: input.Route, Method: input.Method}
	if err := t.validate(); err != nil {
		return errResult(err), resolveOutput{}, nil
	}
	loaded, err := input.Spec.load()
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}
	spec, err := t.spec(ctx, loaded)
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	// Apply config defaults when input fields are omitted (nil).
	opts := cfg.ResolverOptions()
	if input.FailFast != nil {
		opts = append(opts, resolver.WithFailFast(*input.FailFast))
	}
	if input.IgnoreUndefined != nil {
		opts = append(opts, resolver.WithIgnoreUndefined(*input.IgnoreUndefined))
	}
	res, err := resolver.New(spec, opts...)
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	raw := input.Values
	if raw == nil {
		raw = map[string]any{}
	}
	output := resolveOutput{Name: spec.Name()}
	values, err := res.Resolve(raw)
	if err != nil {
		found := issues.FromError(err)
		output.IssueCount = len(found)
		output.Issues = makeSlice[resolveIssue](len(found))
		for _, i := range found {
			output.Issues = append(output.Issues, resolveIssue{
				Property: i.Property,
				Rule:     i.Rule,
				Message:  i.Message,
				Severity: i.Severity.String(),
			})
		}
		return nil, output, nil
	}

	all, err := values.All()
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}
	output.Valid = true
	output.Values = all
	return nil, output, nil
}
