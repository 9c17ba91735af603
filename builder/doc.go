// Package builder compiles schema definitions into resolution specs.
//
// For every property of a definition the Builder:
//
//  1. declares the key,
//  2. derives the allowed runtime types from the declared type, adding
//     "null" when the property is not required,
//  3. attaches the first matching normalizer when the property comes from a
//     text-bearing location (path, query, header and cookie by default) and
//     widens its allowed types with "string",
//  4. copies the default, and
//  5. copies a non-empty enum as the allowed values.
//
// A property whose type cannot be mapped aborts the whole compilation with
// *oaserrors.UndefinedPropertyTypeError; no partial spec is returned.
//
// # Example
//
//	b, err := builder.New(builder.WithNormalizationLocations(schema.LocationQuery))
//	spec, err := b.Build(def)
//	r, err := resolver.New(spec)
package builder
