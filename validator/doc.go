// Package validator checks resolved values against the constraints declared
// on their properties.
//
// A Validator declares which properties it supports and checks one value at a
// time. Validators are collected into a Chain ordered by priority. Unlike
// normalization, every supporting validator runs, because several constraints
// legitimately apply to the same property (a string with both pattern and
// maxLength, for example). The first failure stops the chain for that value.
//
// # Built-in Validators
//
// Arrays:
//   - ArrayMinItems, ArrayMaxItems, ArrayUniqueItems. Values carried in a
//     collection-formatted string are split before counting.
//
// Numbers (integer and number types):
//   - NumberMinimum, NumberMaximum honour exclusiveMinimum/exclusiveMaximum;
//     an undefined flag means an inclusive bound.
//   - NumberMultipleOf accepts values whose quotient is integral within a
//     small relative tolerance.
//
// Strings:
//   - StringMinLength, StringMaxLength count characters of the NFC form.
//   - StringPattern matches the declared regular expression. Surrounding "/"
//     delimiters are stripped.
//
// Formats:
//   - Date and DateTime check the "date" and "date-time" formats. Without an
//     explicit pattern the value must match DefaultDatePattern or
//     DefaultDateTimePattern, then it must parse as a calendar date.
//
// All failures are *oaserrors.ValidationError.
package validator
