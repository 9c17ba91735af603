package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasresolver/schema"
)

const (
	listKindDefinitions = "definitions"
	listKindOperations  = "operations"
)

type listInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to list"`
	Kind   string    `json:"kind,omitempty"   jsonschema:"Restrict output to definitions or operations (default: both)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N items (for pagination)"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of items to return (default 100). Applied independently to definitions and operations."`
}

type operationSummary struct {
	Method      string `json:"method"`
	Route       string `json:"route"`
	OperationID string `json:"operation_id,omitempty"`
	Parameters  int    `json:"parameters"`
	Body        string `json:"body,omitempty"`
}

type listOutput struct {
	Source          string             `json:"source"`
	Version         string             `json:"version"`
	DefinitionCount int                `json:"definition_count"`
	OperationCount  int                `json:"operation_count"`
	Returned        int                `json:"returned"`
	Definitions     []string           `json:"definitions,omitempty"`
	Operations      []operationSummary `json:"operations,omitempty"`
	Warnings        []string           `json:"warnings,omitempty"`
}

func handleList(_ context.Context, _ *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listOutput, error) {
	if input.Kind != "" && input.Kind != listKindDefinitions && input.Kind != listKindOperations {
		return errResult(fmt.Errorf("invalid kind %q; valid values: %s, %s",
			input.Kind, listKindDefinitions, listKindOperations)), listOutput{}, nil
	}

	loaded, err := input.Spec.load()
	if err != nil {
		return errResult(err), listOutput{}, nil
	}
	doc := loaded.doc

	output := listOutput{
		Source:          doc.SourcePath,
		Version:         doc.Version,
		DefinitionCount: len(doc.Definitions),
		OperationCount:  len(doc.Operations),
		Warnings:        doc.Warnings,
	}

	if input.Kind != listKindOperations {
		output.Definitions = paginate(doc.Definitions.Names(), input.Offset, input.Limit)
		output.Returned += len(output.Definitions)
	}
	if input.Kind != listKindDefinitions {
		page := paginate(doc.Operations, input.Offset, input.Limit)
		output.Operations = makeSlice[operationSummary](len(page))
		for _, op := range page {
			output.Operations = append(output.Operations, summarizeOperation(op))
		}
		output.Returned += len(output.Operations)
	}

	return nil, output, nil
}

func summarizeOperation(op *schema.Operation) operationSummary {
	s := operationSummary{
		Method:      upperMethod(op.Method),
		Route:       op.Route,
		OperationID: op.ID,
		Parameters:  len(op.Parameters),
	}
	if body := op.RequestBody; body != nil {
		switch {
		case body.Ref != "":
			s.Body = schema.RefName(body.Ref)
		case body.Inline != nil:
			s.Body = "inline"
		}
	}
	return s
}
