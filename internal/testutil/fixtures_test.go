package testutil

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestPetstoreFixturesAreYAML(t *testing.T) {
	for name, doc := range map[string]string{"oas2": PetstoreOAS2YAML, "oas3": PetstoreOAS3YAML} {
		t.Run(name, func(t *testing.T) {
			var out map[string]any
			require.NoError(t, yaml.Unmarshal([]byte(doc), &out))
			assert.Contains(t, out, "paths")
		})
	}
}

func TestNewPetDefinitions(t *testing.T) {
	defs := NewPetDefinitions()
	assert.Equal(t, []string{"Pet", "Tag"}, defs.Names())
	assert.Equal(t, []string{"birthday", "id", "name", "tag"}, defs["Pet"].PropertyNames())
}

func TestOperationFixtures(t *testing.T) {
	list := NewListPetsOperation()
	assert.Len(t, list.Parameters, 4)
	assert.Nil(t, list.RequestBody)

	update := NewUpdatePetOperation()
	require.NotNil(t, update.RequestBody)
	assert.Equal(t, "#/definitions/Pet", update.RequestBody.Ref)

	assert.NotSame(t, NewUpdatePetOperation(), update, "fixtures are fresh copies")
}

func TestWriteTempYAML(t *testing.T) {
	path := WriteTempYAML(t, map[string]any{"swagger": "2.0"})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, "2.0", out["swagger"])
}

func TestWriteTempJSON(t *testing.T) {
	path := WriteTempJSON(t, map[string]any{"openapi": "3.0.3"})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "3.0.3", out["openapi"])
}

func TestWriteTempFile(t *testing.T) {
	path := WriteTempFile(t, "body.json", []byte(`{"id":1}`))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(data))
}
