package validator

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

type builtinCase struct {
	name    string
	prop    schema.Property
	value   any
	wantMsg string // empty means valid
}

func runBuiltinCases(t *testing.T, v Validator, tests []builtinCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, v.Supports(&tt.prop), "validator should support property")
			err := v.Validate(&tt.prop, "field", tt.value)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			var verr *oaserrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "field", verr.Property)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func arrayProp(format schema.CollectionFormat, c schema.Constraints) schema.Property {
	return schema.Property{Type: schema.TypeArray, CollectionFormat: format, Constraints: c}
}

func TestArrayValidators(t *testing.T) {
	minTwo := schema.Constraints{MinItems: schema.Ptr(2)}
	maxTwo := schema.Constraints{MaxItems: schema.Ptr(2)}
	unique := schema.Constraints{UniqueItems: true}

	runBuiltinCases(t, ArrayMinItems{}, []builtinCase{
		{"enough", arrayProp("", minTwo), []any{1, 2}, ""},
		{"too few", arrayProp("", minTwo), []any{1}, "should have 2 items or more"},
		{"csv enough", arrayProp(schema.CollectionCSV, minTwo), "a,b", ""},
		{"csv too few", arrayProp(schema.CollectionCSV, minTwo), "a", "should have 2 items or more"},
		{"nil is empty", arrayProp("", minTwo), nil, "should have 2 items or more"},
	})
	runBuiltinCases(t, ArrayMaxItems{}, []builtinCase{
		{"within", arrayProp("", maxTwo), []any{1, 2}, ""},
		{"too many", arrayProp("", maxTwo), []any{1, 2, 3}, "should have 2 items or less"},
		{"pipes too many", arrayProp(schema.CollectionPipes, maxTwo), "a|b|c", "should have 2 items or less"},
		{"not an array", arrayProp("", maxTwo), "a,b", "should contain a valid array"},
	})
	runBuiltinCases(t, ArrayUniqueItems{}, []builtinCase{
		{"csv unique", arrayProp(schema.CollectionCSV, unique), "a,b,c", ""},
		{"csv duplicate", arrayProp(schema.CollectionCSV, unique), "a,b,a", "should contain unique items"},
		{"multi duplicate", arrayProp(schema.CollectionMulti, unique), "t=x&t=x", "should contain unique items"},
		{"typed items differ", arrayProp("", unique), []any{1, "1"}, ""},
		{"sequence duplicate", arrayProp("", unique), []any{1.5, 1.5}, "should contain unique items"},
		{"integer equals float", arrayProp("", unique), []any{int64(1), float64(1)}, "should contain unique items"},
		{"numbers differ", arrayProp("", unique), []any{int64(1), 1.5}, ""},
		{"bool is not a number", arrayProp("", unique), []any{true, int64(1)}, ""},
	})

	assert.False(t, ArrayUniqueItems{}.Supports(&schema.Property{Type: schema.TypeArray}))
	assert.False(t, ArrayMinItems{}.Supports(&schema.Property{Type: schema.TypeString, Constraints: minTwo}))
}

func TestNumberValidators(t *testing.T) {
	inclusiveMax := schema.Property{Type: schema.TypeInteger, Constraints: schema.Constraints{
		Maximum: schema.Ptr(10.0), ExclusiveMaximum: schema.Ptr(false),
	}}
	exclusiveMax := schema.Property{Type: schema.TypeInteger, Constraints: schema.Constraints{
		Maximum: schema.Ptr(10.0), ExclusiveMaximum: schema.Ptr(true),
	}}
	undefinedFlagMax := schema.Property{Type: schema.TypeNumber, Constraints: schema.Constraints{
		Maximum: schema.Ptr(10.0),
	}}
	inclusiveMin := schema.Property{Type: schema.TypeNumber, Constraints: schema.Constraints{
		Minimum: schema.Ptr(1.5),
	}}
	exclusiveMin := schema.Property{Type: schema.TypeInteger, Constraints: schema.Constraints{
		Minimum: schema.Ptr(0.0), ExclusiveMinimum: schema.Ptr(true),
	}}

	runBuiltinCases(t, NumberMaximum{}, []builtinCase{
		{"inclusive at bound", inclusiveMax, int64(10), ""},
		{"inclusive above", inclusiveMax, int64(11), "value should be lower than or equal to 10"},
		{"exclusive at bound", exclusiveMax, int64(10), "value should be strictly lower than 10"},
		{"exclusive below", exclusiveMax, int64(9), ""},
		{"undefined flag is inclusive", undefinedFlagMax, 10.0, ""},
		{"float above", undefinedFlagMax, 10.01, "value should be lower than or equal to 10"},
		{"not a number", inclusiveMax, "ten", "should be a number, got string"},
	})
	runBuiltinCases(t, NumberMinimum{}, []builtinCase{
		{"inclusive at bound", inclusiveMin, 1.5, ""},
		{"inclusive below", inclusiveMin, 1, "value should be greater than or equal to 1.5"},
		{"exclusive at bound", exclusiveMin, int64(0), "value should be strictly greater than 0"},
		{"exclusive above", exclusiveMin, int64(1), ""},
	})

	multipleOf := func(m float64) schema.Property {
		return schema.Property{Type: schema.TypeNumber, Constraints: schema.Constraints{MultipleOf: schema.Ptr(m)}}
	}
	runBuiltinCases(t, NumberMultipleOf{}, []builtinCase{
		{"integer multiple", multipleOf(5), int64(15), ""},
		{"integer not multiple", multipleOf(5), int64(16), "should be an integer after division by 5"},
		{"zero", multipleOf(5), int64(0), ""},
		{"fractional divisor", multipleOf(0.1), 0.3, ""},
		{"fractional divisor large", multipleOf(0.01), 19.99, ""},
		{"fractional not multiple", multipleOf(0.1), 0.35, "should be an integer after division by 0.1"},
		{"negative", multipleOf(3), -9.0, ""},
	})

	assert.False(t, NumberMultipleOf{}.Supports(&schema.Property{Type: schema.TypeNumber,
		Constraints: schema.Constraints{MultipleOf: schema.Ptr(0.0)}}))
	assert.False(t, NumberMaximum{}.Supports(&schema.Property{Type: schema.TypeString,
		Constraints: schema.Constraints{Maximum: schema.Ptr(1.0)}}))
}

func TestStringLengthValidators(t *testing.T) {
	minThree := schema.Property{Type: schema.TypeString, Constraints: schema.Constraints{MinLength: schema.Ptr(3)}}
	maxThree := schema.Property{Type: schema.TypeString, Constraints: schema.Constraints{MaxLength: schema.Ptr(3)}}

	runBuiltinCases(t, StringMinLength{}, []builtinCase{
		{"long enough", minThree, "abc", ""},
		{"too short", minThree, "ab", "should have 3 characters or more"},
		{"multibyte counts characters", minThree, "日本語", ""},
	})
	runBuiltinCases(t, StringMaxLength{}, []builtinCase{
		{"short enough", maxThree, "abc", ""},
		{"too long", maxThree, "abcd", "should have 3 characters or less"},
		{"multibyte", maxThree, "ééé", ""},
		{"combining accents count once", maxThree, "e\u0301e\u0301e\u0301", ""},
	})

	assert.Equal(t, 1, CharCount("e\u0301"))
	assert.Equal(t, 4, CharCount("Ünïç"))
}

func TestStringPattern(t *testing.T) {
	upper := schema.Property{Type: schema.TypeString, Constraints: schema.Constraints{Pattern: "^[A-Z]+$"}}
	slashed := schema.Property{Type: schema.TypeString, Constraints: schema.Constraints{Pattern: "/^\\d{3}$/"}}
	broken := schema.Property{Type: schema.TypeString, Constraints: schema.Constraints{Pattern: "(["}}
	unanchored := schema.Property{Type: schema.TypeString, Constraints: schema.Constraints{Pattern: "ab"}}

	v := NewStringPattern()
	runBuiltinCases(t, v, []builtinCase{
		{"matches", upper, "ABC", ""},
		{"does not match", upper, "abc", `should match the pattern "/^[A-Z]+$/"`},
		{"slashes trimmed", slashed, "123", ""},
		{"slashes trimmed mismatch", slashed, "1234", `should match the pattern "/^\\d{3}$/"`},
		{"unanchored searches", unanchored, "xxabxx", ""},
	})

	err := v.Validate(&broken, "field", "x")
	var verr *oaserrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "declares invalid pattern")

	assert.NoError(t, StringPattern{}.Validate(&upper, "field", "ABC"), "zero value compiles without cache")
}

func TestStringPattern_CacheBounded(t *testing.T) {
	v := NewStringPattern()
	for i := 0; i < maxPatternCacheSize+5; i++ {
		p := &schema.Property{Type: schema.TypeString}
		p.Pattern = "^a{" + strconv.Itoa(i) + "}$"
		_ = v.Validate(p, "f", "")
	}
	assert.LessOrEqual(t, v.cache.count.Load(), int64(maxPatternCacheSize))
}

func TestDateValidators(t *testing.T) {
	date := schema.Property{Type: schema.TypeString, Format: "date"}
	dateWithPattern := schema.Property{Type: schema.TypeString, Format: "date",
		Constraints: schema.Constraints{Pattern: `^\d{2}/\d{2}/\d{4}$`}}
	dateTime := schema.Property{Type: schema.TypeString, Format: "date-time"}
	dottedDate := schema.Property{Type: schema.TypeString, Format: "date",
		Constraints: schema.Constraints{Pattern: `^\d{2}\.\d{2}\.\d{4}$`}}
	dashedDate := schema.Property{Type: schema.TypeString, Format: "date",
		Constraints: schema.Constraints{Pattern: `^\d{2}-\d{2}-\d{4}$`}}

	runBuiltinCases(t, Date{}, []builtinCase{
		{"valid", date, "2024-01-15", ""},
		{"empty skipped", date, "", ""},
		{"nil skipped", date, nil, ""},
		{"default pattern mismatch", date, "15/01/2024",
			`should match the pattern "^\\d{4}-\\d{2}-\\d{2}$"; set pattern explicitly to accept other layouts`},
		{"not a calendar date", date, "2024-02-30", "contains invalid date value"},
		{"month out of range", date, "2024-13-01", "contains invalid date value"},
		{"explicit pattern skips default", dateWithPattern, "01/15/2024", ""},
		{"day first dotted", dottedDate, "31.12.2024", ""},
		{"day first dotted invalid", dottedDate, "31.02.2024", "contains invalid date value"},
		{"day first dashed", dashedDate, "31-12-2024", ""},
	})
	runBuiltinCases(t, DateTime{}, []builtinCase{
		{"utc", dateTime, "2024-01-15T10:30:00Z", ""},
		{"offset with fraction", dateTime, "2024-01-15T10:30:00.123+02:00", ""},
		{"missing zone", dateTime, "2024-01-15T10:30:00", "should match the pattern " + strconv.Quote(DefaultDateTimePattern) +
			"; set pattern explicitly to accept other layouts"},
		{"hour out of range", dateTime, "2024-01-15T25:30:00Z", "contains invalid date-time value"},
	})

	assert.False(t, Date{}.Supports(&dateTime))
	assert.False(t, DateTime{}.Supports(&date))
}
