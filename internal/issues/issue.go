// Package issues converts resolution failures and loader warnings into a
// flat list of diagnostics for the CLI and the MCP server.
package issues

import (
	"errors"
	"fmt"

	"github.com/erraggy/oasresolver/internal/severity"
	"github.com/erraggy/oasresolver/oaserrors"
)

// Rule names used when the failing error does not carry one.
const (
	RuleRequired      = "required"
	RuleUndefined     = "undefined"
	RuleNormalization = "normalization"
	RuleType          = "type"
	RuleReference     = "reference"
	RuleLoad          = "load"
	RuleConfig        = "config"
)

// Issue represents a single problem reported for a property or a document.
type Issue struct {
	// Property is the resolved key the issue is about (empty for
	// document-level issues)
	Property string `json:"property,omitempty" yaml:"property,omitempty"`
	// Rule names the check that failed, e.g. "maximum", "required"
	Rule string `json:"rule,omitempty" yaml:"rule,omitempty"`
	// Message is a human-readable description of the issue
	Message string `json:"message" yaml:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Value is the offending value (optional)
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
}

// String returns a formatted string representation of the issue:
//
//	✗ limit [maximum]: value should be lower than or equal to 100
func (i Issue) String() string {
	prefix := i.Severity.Symbol()
	if i.Property != "" {
		prefix += " " + i.Property
	}
	if i.Rule != "" {
		prefix += " [" + i.Rule + "]"
	}
	return fmt.Sprintf("%s: %s", prefix, i.Message)
}

// FromError flattens err into issues. An *oaserrors.AggregateError yields one
// issue per key failure, in order. A nil error yields nil.
func FromError(err error) []Issue {
	if err == nil {
		return nil
	}
	var agg *oaserrors.AggregateError
	if errors.As(err, &agg) {
		out := make([]Issue, 0, len(agg.Errors))
		for _, e := range agg.Errors {
			out = append(out, fromSingle(e))
		}
		return out
	}
	return []Issue{fromSingle(err)}
}

func fromSingle(err error) Issue {
	issue := Issue{Message: err.Error(), Severity: severity.SeverityError}

	var (
		validationErr *oaserrors.ValidationError
		missingErr    *oaserrors.MissingRequiredPropertyError
		undefinedErr  *oaserrors.UndefinedPropertyError
		normalizeErr  *oaserrors.NormalizationError
		typeErr       *oaserrors.UndefinedPropertyTypeError
		refErr        *oaserrors.ReferenceError
	)
	switch {
	case errors.As(err, &validationErr):
		issue.Property = validationErr.Property
		issue.Rule = validationErr.Rule
		issue.Value = validationErr.Value
		if validationErr.Message != "" {
			issue.Message = validationErr.Message
		}
	case errors.As(err, &missingErr):
		issue.Property = missingErr.Property
		issue.Rule = RuleRequired
	case errors.As(err, &undefinedErr):
		issue.Property = undefinedErr.Property
		issue.Rule = RuleUndefined
	case errors.As(err, &normalizeErr):
		issue.Property = normalizeErr.Property
		issue.Rule = RuleNormalization
		issue.Value = normalizeErr.Value
	case errors.As(err, &typeErr):
		issue.Property = typeErr.Property
		issue.Rule = RuleType
	case errors.As(err, &refErr):
		issue.Rule = RuleReference
	case errors.Is(err, oaserrors.ErrLoad):
		issue.Rule = RuleLoad
	case errors.Is(err, oaserrors.ErrConfig):
		issue.Rule = RuleConfig
	}
	return issue
}

// FromWarnings wraps loader warnings as warning-level issues.
func FromWarnings(warnings []string) []Issue {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]Issue, len(warnings))
	for i, w := range warnings {
		out[i] = Issue{Message: w, Severity: severity.SeverityWarning}
	}
	return out
}

// HasErrors reports whether any issue is error level.
func HasErrors(list []Issue) bool {
	for _, i := range list {
		if i.Severity == severity.SeverityError {
			return true
		}
	}
	return false
}
