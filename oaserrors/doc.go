// Package oaserrors provides structured error types for oasresolver.
//
// Import path: github.com/erraggy/oasresolver/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish compile-time failures (a schema that cannot be
// turned into a resolver at all) from per-key resolution failures (a request
// value that cannot be coerced or violates a constraint).
//
// # Error Types
//
//   - [UndefinedPropertyTypeError]: a property has no resolvable type (compile)
//   - [ReferenceError]: a $ref cannot be found in the definition lookup (compile)
//   - [NormalizationError]: a raw value cannot be coerced to the declared type
//   - [ValidationError]: a resolved value violates a declared constraint
//   - [MissingRequiredPropertyError]: a required key has no value and no default
//   - [UndefinedPropertyError]: a raw key is not declared by the schema
//   - [AggregateError]: every key failure of one resolve call
//   - [LoadError]: a schema document cannot be read or decoded
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrCompile]: Matches [UndefinedPropertyTypeError] and [ReferenceError]
//   - [ErrUndefinedPropertyType]: Matches [UndefinedPropertyTypeError]
//   - [ErrReference]: Matches [ReferenceError]
//   - [ErrNormalization]: Matches [NormalizationError]
//   - [ErrValidation]: Matches [ValidationError]
//   - [ErrMissingRequired]: Matches [MissingRequiredPropertyError]
//   - [ErrUndefinedProperty]: Matches [UndefinedPropertyError]
//   - [ErrLoad]: Matches [LoadError]
//   - [ErrConfig]: Matches [ConfigError]
//
// [AggregateError] implements Unwrap() []error, so errors.Is and errors.As see
// every individual key failure:
//
//	values, err := r.Resolve(raw)
//	if errors.Is(err, oaserrors.ErrMissingRequired) {
//	    // at least one required key was absent
//	}
//
//	var verr *oaserrors.ValidationError
//	if errors.As(err, &verr) {
//	    log.Printf("%s failed %s", verr.Property, verr.Rule)
//	}
//
// Compile errors always abort building a resolution spec: a definition either
// compiles entirely or not at all.
package oaserrors
