package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasresolver/internal/testutil"
)

func petstore2() specInput {
	return specInput{Content: testutil.PetstoreOAS2YAML}
}

func TestListTool(t *testing.T) {
	t.Cleanup(documentCache.reset)

	result, output, err := handleList(context.Background(), &mcp.CallToolRequest{}, listInput{Spec: petstore2()})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "2.0", output.Version)
	assert.Equal(t, 2, output.DefinitionCount)
	assert.Equal(t, 3, output.OperationCount)
	assert.Equal(t, 5, output.Returned)
	assert.Equal(t, []string{"Pet", "Tag"}, output.Definitions)
	require.Len(t, output.Operations, 3)
	assert.Equal(t, operationSummary{Method: "GET", Route: "/pets", OperationID: "listPets", Parameters: 4}, output.Operations[0])
	assert.Equal(t, operationSummary{Method: "POST", Route: "/pets", OperationID: "createPet", Body: "Pet"}, output.Operations[1])
}

func TestListTool_KindAndPagination(t *testing.T) {
	t.Cleanup(documentCache.reset)

	_, output, err := handleList(context.Background(), &mcp.CallToolRequest{}, listInput{
		Spec:   petstore2(),
		Kind:   listKindOperations,
		Offset: 1,
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Empty(t, output.Definitions)
	require.Len(t, output.Operations, 1)
	assert.Equal(t, "createPet", output.Operations[0].OperationID)
	assert.Equal(t, 1, output.Returned)
	assert.Equal(t, 3, output.OperationCount)

	_, output, err = handleList(context.Background(), &mcp.CallToolRequest{}, listInput{
		Spec: specInput{Content: testutil.PetstoreOAS3YAML},
		Kind: listKindDefinitions,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pet", "Tag"}, output.Definitions)
	assert.Empty(t, output.Operations)
}

func TestListTool_Errors(t *testing.T) {
	result, _, err := handleList(context.Background(), &mcp.CallToolRequest{}, listInput{Spec: petstore2(), Kind: "paths"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	result, _, err = handleList(context.Background(), &mcp.CallToolRequest{}, listInput{Spec: specInput{Content: "openapi: 4.0.0\n"}})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestCompileTool_Definition(t *testing.T) {
	t.Cleanup(documentCache.reset)

	result, output, err := handleCompile(context.Background(), &mcp.CallToolRequest{}, compileInput{
		Spec:       petstore2(),
		Definition: "Pet",
	})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "Pet", output.Name)
	assert.Equal(t, "definition", output.Kind)
	assert.Empty(t, output.Strategy)
	require.Equal(t, 4, output.Count)

	names := make([]string, len(output.Entries))
	for i, e := range output.Entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"birthday", "id", "name", "tag"}, names)

	id := output.Entries[1]
	assert.Equal(t, []string{"integer"}, id.Types)
	assert.True(t, id.Required)
	assert.False(t, id.Normalized)

	birthday := output.Entries[0]
	assert.Equal(t, []string{"string", "null"}, birthday.Types)
	assert.Equal(t, "date", birthday.Format)
}

func TestCompileTool_Operation(t *testing.T) {
	t.Cleanup(documentCache.reset)

	_, output, err := handleCompile(context.Background(), &mcp.CallToolRequest{}, compileInput{
		Spec:   petstore2(),
		Route:  "/pets",
		Method: "get",
	})
	require.NoError(t, err)
	assert.Equal(t, "listPets", output.Name)
	assert.Equal(t, "operation", output.Kind)
	assert.Equal(t, cfg.MergeStrategy, output.Strategy)
	require.Len(t, output.Entries, 4)

	limit := output.Entries[0]
	assert.Equal(t, "limit", limit.Name)
	assert.Equal(t, "query", limit.Location)
	assert.Equal(t, []string{"integer", "null", "string"}, limit.Types)
	assert.EqualValues(t, 20, limit.Default)
	assert.True(t, limit.Normalized)

	tags := output.Entries[1]
	assert.Equal(t, "csv", tags.CollectionFormat)
	assert.Equal(t, []any{"asc", "desc"}, output.Entries[2].Enum)
}

func TestCompileTool_Errors(t *testing.T) {
	t.Cleanup(documentCache.reset)

	tests := []struct {
		name  string
		input compileInput
	}{
		{"no target", compileInput{Spec: petstore2()}},
		{"both targets", compileInput{Spec: petstore2(), Definition: "Pet", Route: "/pets", Method: "get"}},
		{"route without method", compileInput{Spec: petstore2(), Route: "/pets"}},
		{"unknown definition", compileInput{Spec: petstore2(), Definition: "Order"}},
		{"unknown operation", compileInput{Spec: petstore2(), Route: "/orders", Method: "get"}},
		{"invalid method", compileInput{Spec: petstore2(), Route: "/pets", Method: "fetch"}},
		{"no document", compileInput{Definition: "Pet"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleCompile(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}

func TestResolveTool(t *testing.T) {
	t.Cleanup(documentCache.reset)

	result, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{
		Spec:   petstore2(),
		Route:  "/pets",
		Method: "GET",
		Values: map[string]any{"limit": "5", "tags": "cat,dog"},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.True(t, output.Valid)
	assert.Equal(t, "listPets", output.Name)
	assert.Equal(t, int64(5), output.Values["limit"])
	assert.Equal(t, []any{"cat", "dog"}, output.Values["tags"])
	assert.Nil(t, output.Values["sort"])
	assert.Zero(t, output.IssueCount)
}

func TestResolveTool_Defaults(t *testing.T) {
	t.Cleanup(documentCache.reset)

	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{
		Spec:   petstore2(),
		Route:  "/pets",
		Method: "get",
	})
	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.EqualValues(t, 20, output.Values["limit"])
}

func TestResolveTool_Issues(t *testing.T) {
	t.Cleanup(documentCache.reset)

	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{
		Spec:   petstore2(),
		Route:  "/pets",
		Method: "get",
		Values: map[string]any{"limit": "500", "sort": "name", "extra": 1},
	})
	require.NoError(t, err)
	assert.False(t, output.Valid)
	assert.Empty(t, output.Values)
	require.Equal(t, 3, output.IssueCount)
	assert.Equal(t, resolveIssue{
		Property: "limit",
		Rule:     "maximum",
		Message:  "value should be lower than or equal to 100",
		Severity: "error",
	}, output.Issues[0])
	assert.Equal(t, "sort", output.Issues[1].Property)
	assert.Equal(t, "enum", output.Issues[1].Rule)
	assert.Equal(t, "extra", output.Issues[2].Property)
	assert.Equal(t, "undefined", output.Issues[2].Rule)
}

func TestResolveTool_Overrides(t *testing.T) {
	t.Cleanup(documentCache.reset)
	yes := true

	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{
		Spec:     petstore2(),
		Route:    "/pets",
		Method:   "get",
		Values:   map[string]any{"limit": "500", "sort": "name"},
		FailFast: &yes,
	})
	require.NoError(t, err)
	assert.False(t, output.Valid)
	assert.Equal(t, 1, output.IssueCount)

	_, output, err = handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{
		Spec:            petstore2(),
		Definition:      "Tag",
		Values:          map[string]any{"label": "cat", "extra": true},
		IgnoreUndefined: &yes,
	})
	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Equal(t, map[string]any{"label": "cat"}, output.Values)
}

func TestResolveTool_Definition(t *testing.T) {
	t.Cleanup(documentCache.reset)

	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{
		Spec:       specInput{Content: testutil.PetstoreOAS3YAML},
		Definition: "#/components/schemas/Pet",
		Values:     map[string]any{"id": 7.0, "name": "Rex", "birthday": "2020-02-30"},
	})
	require.NoError(t, err)
	assert.False(t, output.Valid)
	require.Len(t, output.Issues, 1)
	assert.Equal(t, "birthday", output.Issues[0].Property)
	assert.Equal(t, "format", output.Issues[0].Rule)
}

func TestResolveTool_TargetError(t *testing.T) {
	result, _, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{Spec: petstore2()})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
