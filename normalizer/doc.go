// Package normalizer coerces raw request values into the types their
// schema declares.
//
// Raw values from path, query, header and cookie locations arrive as text.
// A Normalizer recognizes the properties it can coerce and returns a Func that
// performs the conversion for one property. Normalizers are held in a Registry
// ordered by priority; for each property the first supporting normalizer wins,
// so at most one coercion applies.
//
// # Built-in Normalizers
//
//   - Boolean: "true", "1", 1 and true become true; "false", "0", 0 and false
//     become false.
//   - Integer: any numeric-looking value is truncated to an int64.
//
// Both yield nil for a nil value when the property is optional and fail with
// *oaserrors.NormalizationError otherwise.
//
// # Example
//
//	reg := normalizer.Default()
//	fn := reg.First(prop, "limit", true)
//	if fn != nil {
//	    v, err := fn("42") // int64(42)
//	}
package normalizer
