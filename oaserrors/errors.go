package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrCompile indicates a schema could not be compiled into a resolution spec.
	ErrCompile = errors.New("compile error")

	// ErrUndefinedPropertyType indicates a property without a resolvable type.
	ErrUndefinedPropertyType = errors.New("undefined property type")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrNormalization indicates a raw value could not be coerced.
	ErrNormalization = errors.New("normalization error")

	// ErrValidation indicates a resolved value violated a constraint.
	ErrValidation = errors.New("validation error")

	// ErrMissingRequired indicates a required property had no value.
	ErrMissingRequired = errors.New("missing required property")

	// ErrUndefinedProperty indicates input carried an undeclared key.
	ErrUndefinedProperty = errors.New("undefined property")

	// ErrLoad indicates a schema document could not be loaded.
	ErrLoad = errors.New("load error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// UndefinedPropertyTypeError is raised when the type mapper cannot derive any
// allowed type for a property. The whole definition fails to compile.
type UndefinedPropertyTypeError struct {
	// Definition is the name of the schema being compiled
	Definition string
	// Property is the offending property name
	Property string
	// RawType is the declared type as found in the document (may be empty)
	RawType string
}

// Error returns a human-readable error message.
func (e *UndefinedPropertyTypeError) Error() string {
	return fmt.Sprintf("compile error in definition %q: property %q has undefined type %q",
		e.Definition, e.Property, e.RawType)
}

// Is reports whether target matches this error type.
func (e *UndefinedPropertyTypeError) Is(target error) bool {
	return target == ErrCompile || target == ErrUndefinedPropertyType
}

// ReferenceError represents a $ref that is missing from the definition lookup.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Operation identifies the operation being merged, if any
	Operation string
	// Message provides additional context about the failure
	Message string
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Operation != "" {
		msg += " (operation " + e.Operation + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrCompile || target == ErrReference
}

// NormalizationError is raised when a normalizer cannot coerce a raw value.
type NormalizationError struct {
	// Property is the property whose value failed to normalize
	Property string
	// Value is the raw value
	Value any
}

// Error returns a human-readable error message.
func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization error: property %q: cannot normalize value %q",
		e.Property, fmt.Sprint(e.Value))
}

// Is reports whether target matches this error type.
func (e *NormalizationError) Is(target error) bool {
	return target == ErrNormalization
}

// ValidationError represents a resolved value that violates a constraint.
type ValidationError struct {
	// Property is the property whose value is invalid
	Property string
	// Rule names the violated constraint, e.g. "maximum", "pattern", "type"
	Rule string
	// Value is the offending value (may be nil)
	Value any
	// Message describes the violation
	Message string
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Property != "" {
		msg += fmt.Sprintf(": property %q", e.Property)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MissingRequiredPropertyError is raised when a required key has neither a raw
// value nor a default.
type MissingRequiredPropertyError struct {
	Property string
}

// Error returns a human-readable error message.
func (e *MissingRequiredPropertyError) Error() string {
	return fmt.Sprintf("missing required property %q", e.Property)
}

// Is reports whether target matches this error type.
func (e *MissingRequiredPropertyError) Is(target error) bool {
	return target == ErrMissingRequired
}

// UndefinedPropertyError is raised when raw input carries a key the
// resolution spec does not declare.
type UndefinedPropertyError struct {
	Property string
	// Defined lists the declared keys, for the diagnostic
	Defined []string
}

// Error returns a human-readable error message.
func (e *UndefinedPropertyError) Error() string {
	msg := fmt.Sprintf("undefined property %q", e.Property)
	if len(e.Defined) > 0 {
		msg += "; defined properties are: " + strings.Join(e.Defined, ", ")
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *UndefinedPropertyError) Is(target error) bool {
	return target == ErrUndefinedProperty
}

// AggregateError collects the key failures of one resolve call, in
// declaration order.
type AggregateError struct {
	Errors []error
}

// Error returns all failures joined by "; ".
func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("%d properties failed to resolve: %s", len(e.Errors), strings.Join(parts, "; "))
}

// Unwrap exposes every key failure to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// LoadError represents a failure to read or decode a schema document.
type LoadError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LoadError) Error() string {
	msg := "load error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
