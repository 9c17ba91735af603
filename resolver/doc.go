// Package resolver turns raw, loosely typed input into typed, defaulted and
// validated values described by a compiled Spec.
//
// A Spec is the compiled form of one schema definition: for every declared
// property it records the allowed runtime types, the default, the enum, the
// optional normalizer and whether the property is required. Specs are built
// with a SpecBuilder (usually by package builder) and are immutable, so one
// Spec can serve any number of concurrent resolutions.
//
// A Resolver pairs a Spec with a validator chain. Resolve checks every key
// eagerly; Bind returns Values that check each key the first time it is read.
// Each key goes through the same steps:
//
//  1. The raw value is taken, or the default when the key is absent.
//  2. A required key with neither fails with MissingRequiredPropertyError.
//     An optional key with neither resolves to nil and skips the rest.
//  3. The normalizer, if any, coerces the value.
//  4. The value must match one of the allowed types.
//  5. The value must equal one of the allowed values, if any are declared.
//  6. Every supporting validator runs; the first failure ends the key.
//  7. A collection-formatted string is split into a []any.
//
// Keys fail independently. By default all failures are collected into an
// *oaserrors.AggregateError; WithFailFast returns the first one instead.
//
// # Example
//
//	r, err := resolver.New(spec, resolver.WithValidators(validator.Default()))
//	values, err := r.Resolve(map[string]any{"limit": "10"})
//	limit, _ := values.Get("limit") // int64(10)
package resolver
