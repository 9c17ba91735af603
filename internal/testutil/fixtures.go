// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasresolver/schema"
)

// PetstoreOAS2YAML is a Swagger 2.0 document exercising query, header, path
// and body parameters. The 201 response key is deliberately unquoted.
const PetstoreOAS2YAML = `swagger: "2.0"
info:
  title: Petstore
  version: "1.0.0"
basePath: /v1
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          type: integer
          maximum: 100
          default: 20
        - name: tags
          in: query
          type: array
          items:
            type: string
          collectionFormat: csv
          uniqueItems: true
        - name: sort
          in: query
          type: string
          enum: [asc, desc]
        - name: X-Request-ID
          in: header
          type: string
          pattern: "^[a-f0-9-]+$"
      responses:
        "200":
          description: ok
    post:
      operationId: createPet
      parameters:
        - name: body
          in: body
          required: true
          schema:
            $ref: "#/definitions/Pet"
      responses:
        201:
          description: created
  /pets/{id}:
    parameters:
      - $ref: "#/parameters/PetID"
    put:
      operationId: updatePet
      parameters:
        - name: id
          in: query
          type: string
        - name: body
          in: body
          schema:
            $ref: "#/definitions/Pet"
      responses:
        "200":
          description: ok
parameters:
  PetID:
    name: id
    in: path
    required: true
    type: integer
    minimum: 1
definitions:
  Pet:
    type: object
    required: [id, name]
    properties:
      id:
        type: integer
        format: int64
      name:
        type: string
        minLength: 1
        maxLength: 64
      birthday:
        type: string
        format: date
      tag:
        $ref: "#/definitions/Tag"
  Tag:
    type: object
    properties:
      label:
        type: string
`

// PetstoreOAS3YAML is the OAS 3.0 counterpart of PetstoreOAS2YAML with an
// additional inline request body on POST /tags.
const PetstoreOAS3YAML = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
            maximum: 100
            default: 20
        - name: tags
          in: query
          style: form
          explode: false
          schema:
            type: array
            uniqueItems: true
            items:
              type: string
        - name: sort
          in: query
          schema:
            type: string
            enum: [asc, desc]
        - name: X-Request-ID
          in: header
          schema:
            type: string
            pattern: "^[a-f0-9-]+$"
      responses:
        "200":
          description: ok
    post:
      operationId: createPet
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Pet"
      responses:
        "201":
          description: created
  /pets/{id}:
    parameters:
      - $ref: "#/components/parameters/PetID"
    put:
      operationId: updatePet
      parameters:
        - name: id
          in: query
          schema:
            type: string
      requestBody:
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Pet"
      responses:
        "200":
          description: ok
  /tags:
    post:
      operationId: createTag
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [label]
              properties:
                label:
                  type: string
                color:
                  type: string
                  pattern: "^#[0-9a-f]{6}$"
      responses:
        "201":
          description: created
components:
  parameters:
    PetID:
      name: id
      in: path
      required: true
      schema:
        type: integer
        minimum: 1
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
          minLength: 1
          maxLength: 64
        birthday:
          type: string
          format: date
        tag:
          $ref: "#/components/schemas/Tag"
    Tag:
      type: object
      properties:
        label:
          type: string
`

// NewPetDefinitions returns the Pet and Tag definitions of the petstore
// fixtures, with properties in alphabetical order.
func NewPetDefinitions() schema.Definitions {
	return schema.Definitions{
		"Pet": {
			Name:     "Pet",
			Type:     schema.TypeObject,
			Required: []string{"id", "name"},
			Properties: []*schema.Property{
				{Name: "birthday", Type: schema.TypeString, Format: "date"},
				{Name: "id", Type: schema.TypeInteger, Format: "int64"},
				{Name: "name", Type: schema.TypeString, Constraints: schema.Constraints{
					MinLength: schema.Ptr(1), MaxLength: schema.Ptr(64),
				}},
				{Name: "tag", Ref: "#/definitions/Tag"},
			},
		},
		"Tag": {
			Name:       "Tag",
			Type:       schema.TypeObject,
			Properties: []*schema.Property{{Name: "label", Type: schema.TypeString}},
		},
	}
}

// NewListPetsOperation returns GET /pets as the loader produces it.
func NewListPetsOperation() *schema.Operation {
	return &schema.Operation{
		ID:     "listPets",
		Route:  "/pets",
		Method: "get",
		Parameters: []*schema.Property{
			{Name: "limit", Type: schema.TypeInteger, Location: schema.LocationQuery, Default: int64(20),
				Constraints: schema.Constraints{Maximum: schema.Ptr(100.0)}},
			{Name: "tags", Type: schema.TypeArray, Location: schema.LocationQuery,
				CollectionFormat: schema.CollectionCSV, Constraints: schema.Constraints{UniqueItems: true}},
			{Name: "sort", Type: schema.TypeString, Location: schema.LocationQuery, Enum: []any{"asc", "desc"}},
			{Name: "X-Request-ID", Type: schema.TypeString, Location: schema.LocationHeader,
				Constraints: schema.Constraints{Pattern: "^[a-f0-9-]+$"}},
		},
	}
}

// NewUpdatePetOperation returns PUT /pets/{id}: a required path id, an
// optional query id and a Pet body that also declares id.
func NewUpdatePetOperation() *schema.Operation {
	return &schema.Operation{
		ID:     "updatePet",
		Route:  "/pets/{id}",
		Method: "put",
		Parameters: []*schema.Property{
			{Name: "id", Type: schema.TypeInteger, Location: schema.LocationPath, Required: true,
				Constraints: schema.Constraints{Minimum: schema.Ptr(1.0)}},
			{Name: "id", Type: schema.TypeString, Location: schema.LocationQuery},
		},
		RequestBody: &schema.RequestBody{Ref: "#/definitions/Pet"},
	}
}

// WriteTempFile writes data to name inside a per-test temporary directory.
// Returns the path to the file.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", data)
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return WriteTempFile(t, "test.json", data)
}
