package issues

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasresolver/internal/severity"
	"github.com/erraggy/oasresolver/oaserrors"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name: "property and rule",
			issue: Issue{
				Property: "limit",
				Rule:     "maximum",
				Message:  "value should be lower than or equal to 100",
				Severity: severity.SeverityError,
			},
			want: "✗ limit [maximum]: value should be lower than or equal to 100",
		},
		{
			name:  "document warning",
			issue: Issue{Message: "formData parameter skipped", Severity: severity.SeverityWarning},
			want:  "⚠: formData parameter skipped",
		},
		{
			name:  "property only",
			issue: Issue{Property: "id", Message: "bad", Severity: severity.SeverityInfo},
			want:  "ℹ id: bad",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.String())
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	tests := []struct {
		name string
		err  error
		want Issue
	}{
		{
			"validation",
			&oaserrors.ValidationError{Property: "limit", Rule: "maximum", Value: int64(101), Message: "too big"},
			Issue{Property: "limit", Rule: "maximum", Value: int64(101), Message: "too big"},
		},
		{
			"missing",
			&oaserrors.MissingRequiredPropertyError{Property: "id"},
			Issue{Property: "id", Rule: RuleRequired, Message: `missing required property "id"`},
		},
		{
			"undefined",
			&oaserrors.UndefinedPropertyError{Property: "extra"},
			Issue{Property: "extra", Rule: RuleUndefined, Message: `undefined property "extra"`},
		},
		{
			"normalization",
			&oaserrors.NormalizationError{Property: "limit", Value: "abc"},
			Issue{Property: "limit", Rule: RuleNormalization, Value: "abc",
				Message: `normalization error: property "limit": cannot normalize value "abc"`},
		},
		{
			"undefined type",
			&oaserrors.UndefinedPropertyTypeError{Definition: "Upload", Property: "blob", RawType: "file"},
			Issue{Property: "blob", Rule: RuleType,
				Message: `compile error in definition "Upload": property "blob" has undefined type "file"`},
		},
		{
			"reference",
			fmt.Errorf("merging: %w", &oaserrors.ReferenceError{Ref: "#/definitions/Order"}),
			Issue{Rule: RuleReference, Message: "merging: reference error: #/definitions/Order"},
		},
		{
			"load",
			&oaserrors.LoadError{Path: "api.yaml", Message: "decoding document"},
			Issue{Rule: RuleLoad, Message: "load error in api.yaml: decoding document"},
		},
		{
			"config",
			&oaserrors.ConfigError{Option: "method", Message: "unknown method"},
			Issue{Rule: RuleConfig, Message: "configuration error for method: unknown method"},
		},
		{"plain", errors.New("boom"), Issue{Message: "boom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			require.Len(t, got, 1)
			tt.want.Severity = severity.SeverityError
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestFromError_Aggregate(t *testing.T) {
	agg := &oaserrors.AggregateError{Errors: []error{
		&oaserrors.MissingRequiredPropertyError{Property: "id"},
		&oaserrors.ValidationError{Property: "sort", Rule: "enum", Message: "not allowed"},
	}}
	got := FromError(fmt.Errorf("resolving: %w", agg))
	require.Len(t, got, 2)
	assert.Equal(t, "id", got[0].Property)
	assert.Equal(t, RuleRequired, got[0].Rule)
	assert.Equal(t, "sort", got[1].Property)
	assert.Equal(t, "enum", got[1].Rule)
	assert.True(t, HasErrors(got))
}

func TestFromWarnings(t *testing.T) {
	assert.Nil(t, FromWarnings(nil))

	got := FromWarnings([]string{"a", "b"})
	require.Len(t, got, 2)
	assert.Equal(t, Issue{Message: "b", Severity: severity.SeverityWarning}, got[1])
	assert.False(t, HasErrors(got))
}
