package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

func TestBoolean(t *testing.T) {
	prop := &schema.Property{Name: "active", Type: schema.TypeBoolean}
	require.True(t, Boolean{}.Supports(prop, "active", true))
	assert.False(t, Boolean{}.Supports(&schema.Property{Type: schema.TypeString}, "x", true))

	tests := []struct {
		name     string
		required bool
		input    any
		want     any
		wantErr  bool
	}{
		{"string true", true, "true", true, false},
		{"string one", true, "1", true, false},
		{"literal true", true, true, true, false},
		{"number one", true, 1, true, false},
		{"int64 one", true, int64(1), true, false},
		{"string false", true, "false", false, false},
		{"string zero", true, "0", false, false},
		{"literal false", true, false, false, false},
		{"number zero", true, 0, false, false},
		{"nil optional", false, nil, nil, false},
		{"nil required", true, nil, nil, true},
		{"yes", true, "yes", nil, true},
		{"TRUE is not accepted", false, "TRUE", nil, true},
		{"two", true, 2, nil, true},
		{"float one", true, 1.0, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Boolean{}.Normalizer(prop, "active", tt.required)(tt.input)
			if tt.wantErr {
				var nerr *oaserrors.NormalizationError
				require.ErrorAs(t, err, &nerr)
				assert.Equal(t, "active", nerr.Property)
				assert.Equal(t, tt.input, nerr.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInteger(t *testing.T) {
	prop := &schema.Property{Name: "limit", Type: schema.TypeInteger}
	require.True(t, Integer{}.Supports(prop, "limit", true))
	assert.False(t, Integer{}.Supports(&schema.Property{Type: schema.TypeNumber}, "x", true))

	tests := []struct {
		name     string
		required bool
		input    any
		want     any
		wantErr  bool
	}{
		{"string", true, "42", int64(42), false},
		{"negative", true, "-7", int64(-7), false},
		{"plus sign", true, "+5", int64(5), false},
		{"decimal truncates", true, "4.9", int64(4), false},
		{"negative decimal truncates", true, "-4.9", int64(-4), false},
		{"exponent", true, "1e3", int64(1000), false},
		{"leading dot", true, ".5", int64(0), false},
		{"surrounding space", true, " 12 ", int64(12), false},
		{"int", true, 3, int64(3), false},
		{"float", true, 3.7, int64(3), false},
		{"json number", true, json.Number("12"), int64(12), false},
		{"large", true, "9007199254740993", int64(9007199254740993), false},
		{"nil optional", false, nil, nil, false},
		{"nil required", true, nil, nil, true},
		{"letters", true, "abc", nil, true},
		{"empty", true, "", nil, true},
		{"hex", true, "0x1A", nil, true},
		{"bool", true, true, nil, true},
		{"trailing garbage", true, "12abc", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Integer{}.Normalizer(prop, "limit", tt.required)(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, oaserrors.ErrNormalization)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubNormalizer struct {
	id       string
	supports bool
}

func (s stubNormalizer) Supports(*schema.Property, string, bool) bool { return s.supports }

func (s stubNormalizer) Normalizer(*schema.Property, string, bool) Func {
	return func(any) (any, error) { return s.id, nil }
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	prop := &schema.Property{Name: "x"}

	tests := []struct {
		name    string
		entries []Entry
		want    any
	}{
		{
			name: "higher priority first",
			entries: []Entry{
				{Normalizer: stubNormalizer{id: "low", supports: true}, Priority: 1},
				{Normalizer: stubNormalizer{id: "high", supports: true}, Priority: 10},
			},
			want: "high",
		},
		{
			name: "ties keep registration order",
			entries: []Entry{
				{Normalizer: stubNormalizer{id: "first", supports: true}},
				{Normalizer: stubNormalizer{id: "second", supports: true}},
			},
			want: "first",
		},
		{
			name: "unsupported skipped",
			entries: []Entry{
				{Normalizer: stubNormalizer{id: "no"}, Priority: 5},
				{Normalizer: stubNormalizer{id: "yes", supports: true}},
			},
			want: "yes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := NewRegistry(tt.entries...).First(prop, "x", true)
			require.NotNil(t, fn)
			got, err := fn("raw")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_NoMatch(t *testing.T) {
	reg := Default()
	assert.Equal(t, 2, reg.Len())
	assert.Nil(t, reg.First(&schema.Property{Type: schema.TypeString}, "name", true))

	var nilReg *Registry
	assert.Nil(t, nilReg.First(&schema.Property{Type: schema.TypeInteger}, "n", true))
	assert.Zero(t, nilReg.Len())
}

func TestRegistry_With(t *testing.T) {
	base := Default()
	extended := base.With(Entry{Normalizer: stubNormalizer{id: "override", supports: true}, Priority: 100})

	assert.Equal(t, 2, base.Len(), "base registry unchanged")
	assert.Equal(t, 3, extended.Len())

	got, err := extended.First(&schema.Property{Type: schema.TypeInteger}, "n", true)("5")
	require.NoError(t, err)
	assert.Equal(t, "override", got)

	assert.IsType(t, stubNormalizer{}, extended.Normalizers()[0])
}
