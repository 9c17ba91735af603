package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasresolver/internal/testutil"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

func operationIDs(doc *Document) []string {
	ids := make([]string, 0, len(doc.Operations))
	for _, op := range doc.Operations {
		ids = append(ids, op.ID)
	}
	return ids
}

func TestLoadOAS2(t *testing.T) {
	doc, err := LoadWithOptions(WithBytes([]byte(testutil.PetstoreOAS2YAML)))
	require.NoError(t, err)

	assert.Equal(t, "2.0", doc.Version)
	assert.True(t, doc.IsOAS2())
	assert.Equal(t, "bytes.yaml", doc.SourcePath)
	assert.Empty(t, doc.Warnings)
	assert.Equal(t, testutil.NewPetDefinitions(), doc.Definitions)
	assert.Equal(t, []string{"listPets", "createPet", "updatePet"}, operationIDs(doc))

	list, ok := doc.OperationByID("listPets")
	require.True(t, ok)
	assert.Equal(t, testutil.NewListPetsOperation(), list)

	update, ok := doc.Operation("/pets/{id}", "PUT")
	require.True(t, ok)
	assert.Equal(t, testutil.NewUpdatePetOperation(), update)

	create, ok := doc.OperationByID("createPet")
	require.True(t, ok)
	assert.Empty(t, create.Parameters)
	require.NotNil(t, create.RequestBody)
	assert.Equal(t, "#/definitions/Pet", create.RequestBody.Ref)
}

func TestLoadOAS3(t *testing.T) {
	doc, err := LoadWithOptions(WithBytes([]byte(testutil.PetstoreOAS3YAML)), WithSourceName("petstore.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.Version)
	assert.False(t, doc.IsOAS2())
	assert.Equal(t, "petstore.yaml", doc.SourcePath)
	assert.Empty(t, doc.Warnings)
	assert.Equal(t, []string{"listPets", "createPet", "updatePet", "createTag"}, operationIDs(doc))

	pet, ok := doc.Lookup("#/components/schemas/Pet")
	require.True(t, ok)
	assert.Equal(t, []string{"birthday", "id", "name", "tag"}, pet.PropertyNames())
	assert.Equal(t, []string{"id", "name"}, pet.Required)
	tag, _ := pet.Property("tag")
	assert.Equal(t, &schema.Property{Name: "tag", Ref: "#/components/schemas/Tag"}, tag)

	list, ok := doc.Operation("/pets", "get")
	require.True(t, ok)
	assert.Equal(t, testutil.NewListPetsOperation(), list)

	update, ok := doc.OperationByID("updatePet")
	require.True(t, ok)
	assert.Equal(t, testutil.NewUpdatePetOperation().Parameters, update.Parameters)
	assert.Equal(t, &schema.RequestBody{Ref: "#/components/schemas/Pet"}, update.RequestBody)

	createTag, ok := doc.OperationByID("createTag")
	require.True(t, ok)
	require.NotNil(t, createTag.RequestBody)
	inline := createTag.RequestBody.Inline
	require.NotNil(t, inline)
	assert.Equal(t, schema.TypeObject, inline.Type)
	assert.Equal(t, []string{"label"}, inline.Required)
	assert.Equal(t, []string{"color", "label"}, inline.PropertyNames())
	color, _ := inline.Property("color")
	assert.Equal(t, "^#[0-9a-f]{6}$", color.Pattern)
}

func TestLoadOAS3_CollectionFormats(t *testing.T) {
	doc := `openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /items/{ids}:
    get:
      parameters:
        - {name: ids, in: path, required: true, schema: {type: array, items: {type: integer}}}
        - {name: exploded, in: query, schema: {type: array, items: {type: string}}}
        - {name: spaced, in: query, style: spaceDelimited, explode: false, schema: {type: array, items: {type: string}}}
        - {name: piped, in: query, style: pipeDelimited, explode: false, schema: {type: array, items: {type: string}}}
        - {name: X-Ids, in: header, schema: {type: array, items: {type: string}}}
        - {name: filter, in: query, style: deepObject, schema: {type: array, items: {type: string}}}
      responses:
        "200": {description: ok}
`
	got, err := LoadWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	op, ok := got.Operation("/items/{ids}", "get")
	require.True(t, ok)

	want := map[string]schema.CollectionFormat{
		"ids":      schema.CollectionCSV,
		"exploded": schema.CollectionMulti,
		"spaced":   schema.CollectionSSV,
		"piped":    schema.CollectionPipes,
		"X-Ids":    schema.CollectionCSV,
		"filter":   schema.CollectionCSV,
	}
	require.Len(t, op.Parameters, len(want))
	for _, p := range op.Parameters {
		assert.Equal(t, want[p.Name], p.CollectionFormat, p.Name)
	}
	assert.Equal(t, "get", op.Method)
	assert.Empty(t, op.ID)
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], `style "deepObject"`)
}

func TestLoadOAS2_Conversions(t *testing.T) {
	doc := `swagger: "2.0"
info: {title: t, version: "1"}
paths:
  /upload:
    parameters:
      - {name: trace, in: header, type: string}
    post:
      parameters:
        - {name: trace, in: header, type: string, required: true}
        - {name: file, in: formData, type: file}
        - {name: ids, in: query, type: array, items: {type: integer}}
        - {name: mode, in: query, type: array, collectionFormat: bogus, items: {type: string}}
        - {name: page, in: query, type: integer, minimum: 1, exclusiveMinimum: true, enum: [1, 2, 3]}
        - $ref: "#/parameters/Missing"
        - name: body
          in: body
          schema:
            type: object
            required: [status]
            properties:
              status: {$ref: "#/definitions/Status"}
              owner: {$ref: "#/definitions/Owner"}
      responses:
        200: {description: ok}
definitions:
  Status:
    type: string
    enum: [active, archived]
  Owner:
    type: object
    properties:
      name: {type: string}
`
	got, err := LoadWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	op, ok := got.Operation("/upload", "post")
	require.True(t, ok)

	require.Len(t, op.Parameters, 4)
	assert.Equal(t, "trace", op.Parameters[0].Name)
	assert.True(t, op.Parameters[0].Required, "operation parameter overrides the path-level one")
	assert.Equal(t, schema.CollectionCSV, op.Parameters[1].CollectionFormat)
	assert.Equal(t, schema.CollectionCSV, op.Parameters[2].CollectionFormat)

	page := op.Parameters[3]
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, page.Enum)
	assert.True(t, page.IsExclusiveMinimum())
	require.NotNil(t, page.Minimum)
	assert.InDelta(t, 1.0, *page.Minimum, 0)

	require.NotNil(t, op.RequestBody)
	inline := op.RequestBody.Inline
	require.NotNil(t, inline)
	status, _ := inline.Property("status")
	assert.Equal(t, schema.TypeString, status.Type, "primitive references are inlined")
	assert.Equal(t, []any{"active", "archived"}, status.Enum)
	owner, _ := inline.Property("owner")
	assert.Equal(t, "#/definitions/Owner", owner.Ref)
	assert.True(t, inline.IsRequired("status"))

	require.Len(t, got.Warnings, 3)
	assert.Contains(t, got.Warnings[0], "formData")
	assert.Contains(t, got.Warnings[1], "bogus")
	assert.Contains(t, got.Warnings[2], "#/parameters/Missing")
}

func TestLoadWithOptions_Sources(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreOAS3YAML))

	t.Run("file", func(t *testing.T) {
		doc, err := LoadWithOptions(WithFilePath(path))
		require.NoError(t, err)
		assert.Equal(t, path, doc.SourcePath)
		assert.Len(t, doc.Operations, 4)
	})

	t.Run("reader", func(t *testing.T) {
		doc, err := LoadWithOptions(WithReader(strings.NewReader(testutil.PetstoreOAS2YAML)))
		require.NoError(t, err)
		assert.Equal(t, "reader.yaml", doc.SourcePath)
		assert.Len(t, doc.Operations, 3)
	})

	t.Run("json", func(t *testing.T) {
		doc, err := LoadWithOptions(WithBytes([]byte(`{"swagger":"2.0","info":{"title":"t","version":"1"},"paths":{}}`)))
		require.NoError(t, err)
		assert.Empty(t, doc.Operations)
		assert.Empty(t, doc.Definitions)
	})
}

func TestLoadWithOptions_Checksum(t *testing.T) {
	a, err := LoadWithOptions(WithBytes([]byte(testutil.PetstoreOAS2YAML)))
	require.NoError(t, err)
	b, err := LoadWithOptions(WithBytes([]byte(testutil.PetstoreOAS2YAML)))
	require.NoError(t, err)
	c, err := LoadWithOptions(WithBytes([]byte(testutil.PetstoreOAS3YAML)))
	require.NoError(t, err)

	assert.Len(t, a.Checksum, 64)
	assert.Equal(t, a.Checksum, b.Checksum)
	assert.NotEqual(t, a.Checksum, c.Checksum)
}

func TestLoadWithOptions_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		target  error
		message string
	}{
		{"no source", nil, oaserrors.ErrConfig, "must specify an input source"},
		{
			"two sources",
			[]Option{WithBytes([]byte("a: 1")), WithReader(strings.NewReader("a: 1"))},
			oaserrors.ErrConfig, "exactly one input source",
		},
		{"nil reader", []Option{WithReader(nil)}, oaserrors.ErrConfig, "reader cannot be nil"},
		{"empty path", []Option{WithFilePath("")}, oaserrors.ErrConfig, "file path cannot be empty"},
		{"missing file", []Option{WithFilePath("does-not-exist.yaml")}, oaserrors.ErrLoad, "reading document"},
		{"invalid yaml", []Option{WithBytes([]byte("a: [1, 2"))}, oaserrors.ErrLoad, "decoding document"},
		{"not a mapping", []Option{WithBytes([]byte("- a\n- b\n"))}, oaserrors.ErrLoad, "root must be a mapping"},
		{"no version", []Option{WithBytes([]byte("info: {}\n"))}, oaserrors.ErrLoad, "unable to detect OpenAPI version"},
		{"unsupported version", []Option{WithBytes([]byte(`swagger: "1.2"`))}, oaserrors.ErrLoad, `unsupported OpenAPI version "1.2"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithOptions(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDocument_Lookups(t *testing.T) {
	doc := &Document{
		Definitions: testutil.NewPetDefinitions(),
		Operations:  []*schema.Operation{testutil.NewListPetsOperation(), testutil.NewUpdatePetOperation()},
	}

	_, ok := doc.Operation("/pets", "POST")
	assert.False(t, ok)
	op, ok := doc.Operation("/pets/{id}", "Put")
	require.True(t, ok)
	assert.Equal(t, "updatePet", op.ID)

	_, ok = doc.OperationByID("")
	assert.False(t, ok)
	_, ok = doc.OperationByID("deletePet")
	assert.False(t, ok)

	def, ok := doc.Lookup("Tag")
	require.True(t, ok)
	assert.Equal(t, "Tag", def.Name)
}

func TestNormalizeYAML(t *testing.T) {
	in := map[string]any{
		"responses": map[any]any{200: map[any]any{"description": "ok"}},
		"tags":      []any{map[any]any{true: "yes"}},
	}
	got := normalizeYAML(in)
	assert.Equal(t, map[string]any{
		"responses": map[string]any{"200": map[string]any{"description": "ok"}},
		"tags":      []any{map[string]any{"true": "yes"}},
	}, got)
}

func TestMergeParameters(t *testing.T) {
	pathID := &schema.Property{Name: "id", Location: schema.LocationPath}
	trace := &schema.Property{Name: "trace", Location: schema.LocationHeader}
	opTrace := &schema.Property{Name: "trace", Location: schema.LocationHeader, Required: true}
	queryID := &schema.Property{Name: "id", Location: schema.LocationQuery}

	got := mergeParameters([]*schema.Property{pathID, trace}, []*schema.Property{opTrace, queryID})
	assert.Equal(t, []*schema.Property{pathID, opTrace, queryID}, got)
	assert.Nil(t, mergeParameters(nil, nil))
}
