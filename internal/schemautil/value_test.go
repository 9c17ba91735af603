package schemautil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasresolver/schema"
)

type pet struct{}

func (pet) DefinitionName() string { return "Pet" }

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		value any
		tag   schema.TypeTag
		want  bool
	}{
		{"string", "abc", schema.TagString, true},
		{"int is not string", 1, schema.TagString, false},
		{"json number is not string", json.Number("1"), schema.TagString, false},
		{"bool", true, schema.TagBoolean, true},
		{"string is not bool", "true", schema.TagBoolean, false},
		{"int64", int64(5), schema.TagInteger, true},
		{"uint8", uint8(5), schema.TagInteger, true},
		{"integral float", 5.0, schema.TagInteger, true},
		{"fractional float", 5.5, schema.TagInteger, false},
		{"json number integer", json.Number("7"), schema.TagInteger, true},
		{"string is not integer", "5", schema.TagInteger, false},
		{"float", 1.5, schema.TagFloat, true},
		{"int satisfies float", 3, schema.TagFloat, true},
		{"slice", []any{1}, schema.TagSequence, true},
		{"string slice", []string{"a"}, schema.TagSequence, true},
		{"map", map[string]any{}, schema.TagObject, true},
		{"struct pointer", &pet{}, schema.TagObject, true},
		{"slice is not object", []any{}, schema.TagObject, false},
		{"nil is null", nil, schema.TagNull, true},
		{"nil is not string", nil, schema.TagString, false},
		{"referent", pet{}, "#/definitions/Pet", true},
		{"referent other name", pet{}, "#/definitions/Tag", false},
		{"plain map is not referent", map[string]any{}, "#/definitions/Pet", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.value, tt.tag))
		})
	}
}

func TestMatchesAny(t *testing.T) {
	tags := []schema.TypeTag{schema.TagInteger, schema.TagNull}
	assert.True(t, MatchesAny(nil, tags))
	assert.True(t, MatchesAny(int64(1), tags))
	assert.False(t, MatchesAny("1", tags))
}

func TestFloat64(t *testing.T) {
	tests := []struct {
		value any
		want  float64
		ok    bool
	}{
		{1, 1, true},
		{int64(-3), -3, true},
		{uint16(9), 9, true},
		{float32(1.5), 1.5, true},
		{2.25, 2.25, true},
		{json.Number("4.5"), 4.5, true},
		{json.Number("x"), 0, false},
		{"4", 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := Float64(tt.value)
		assert.Equal(t, tt.ok, ok, "%#v", tt.value)
		assert.InDelta(t, tt.want, got, 1e-12, "%#v", tt.value)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(int64(1), 1.0))
	assert.True(t, Equal(json.Number("2"), 2))
	assert.True(t, Equal("asc", "asc"))
	assert.False(t, Equal("1", 1))
	assert.False(t, Equal(1, "1"))
	assert.False(t, Equal("asc", "desc"))
	assert.True(t, Equal(true, true))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "null", TypeName(nil))
	assert.Equal(t, "string", TypeName("x"))
	assert.Equal(t, "integer", TypeName(int64(1)))
	assert.Equal(t, "float", TypeName(1.5))
	assert.Equal(t, "number", TypeName(json.Number("1")))
	assert.Equal(t, "boolean", TypeName(false))
	assert.Equal(t, "sequence", TypeName([]any{}))
	assert.Equal(t, "object", TypeName(map[string]any{}))
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		name string
		typ  schema.PrimitiveType
		in   any
		want any
	}{
		{"integral float for integer", schema.TypeInteger, 20.0, int64(20)},
		{"fractional float for integer", schema.TypeInteger, 2.5, 2.5},
		{"json number for integer", schema.TypeInteger, json.Number("7"), int64(7)},
		{"float json number for integer", schema.TypeInteger, json.Number("7.0"), int64(7)},
		{"float for number", schema.TypeNumber, 20.0, 20.0},
		{"string for integer", schema.TypeInteger, "20", "20"},
		{"nil", schema.TypeInteger, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.typ, tt.in))
		})
	}
}

func TestRestoreLiterals(t *testing.T) {
	def := &schema.Definition{Properties: []*schema.Property{
		{Name: "limit", Type: schema.TypeInteger, Default: 20.0, Enum: []any{10.0, 20.0}},
		{Name: "ratio", Type: schema.TypeNumber, Default: 0.5},
	}}
	RestoreLiterals(def)
	assert.Equal(t, int64(20), def.Properties[0].Default)
	assert.Equal(t, []any{int64(10), int64(20)}, def.Properties[0].Enum)
	assert.Equal(t, 0.5, def.Properties[1].Default)
	RestoreLiterals(nil)
}
