package schema

import "strings"

// PrimitiveType is the declared OpenAPI type of a property.
// A reference property has an empty PrimitiveType and a non-empty Ref.
type PrimitiveType string

// Primitive type constants.
const (
	TypeString  PrimitiveType = "string"
	TypeInteger PrimitiveType = "integer"
	TypeNumber  PrimitiveType = "number"
	TypeBoolean PrimitiveType = "boolean"
	TypeArray   PrimitiveType = "array"
	TypeObject  PrimitiveType = "object"
)

// IsNumeric reports whether t is integer or number.
func (t PrimitiveType) IsNumeric() bool {
	return t == TypeInteger || t == TypeNumber
}

// Location is where a parameter originates in a request.
type Location string

// Location constants.
const (
	LocationPath   Location = "path"
	LocationQuery  Location = "query"
	LocationHeader Location = "header"
	LocationCookie Location = "cookie"
	LocationBody   Location = "body"
)

// TextLocations returns the locations whose raw values arrive as text.
// These are the default normalization locations.
func TextLocations() []Location {
	return []Location{LocationPath, LocationQuery, LocationHeader, LocationCookie}
}

// IsValid reports whether l is a known location.
func (l Location) IsValid() bool {
	switch l {
	case LocationPath, LocationQuery, LocationHeader, LocationCookie, LocationBody:
		return true
	}
	return false
}

// CollectionFormat is the Swagger 2.0 serialization of an array carried in a string.
type CollectionFormat string

// Collection format constants.
const (
	CollectionCSV   CollectionFormat = "csv"
	CollectionSSV   CollectionFormat = "ssv"
	CollectionTSV   CollectionFormat = "tsv"
	CollectionPipes CollectionFormat = "pipes"
	CollectionMulti CollectionFormat = "multi"
)

// Delimiter returns the item separator for the format.
// The multi format separates key=value pairs with "&".
func (f CollectionFormat) Delimiter() string {
	switch f {
	case CollectionCSV:
		return ","
	case CollectionSSV:
		return " "
	case CollectionTSV:
		return "\t"
	case CollectionPipes:
		return "|"
	case CollectionMulti:
		return "&"
	}
	return ""
}

// IsValid reports whether f is a known collection format.
func (f CollectionFormat) IsValid() bool {
	return f.Delimiter() != ""
}

// TypeTag is a runtime type accepted by a resolved value.
// Reference tags hold the raw reference string, e.g. "#/definitions/Pet".
type TypeTag string

// Runtime type tags.
const (
	TagString   TypeTag = "string"
	TagInteger  TypeTag = "integer"
	TagBoolean  TypeTag = "boolean"
	TagFloat    TypeTag = "float"
	TagSequence TypeTag = "sequence"
	TagObject   TypeTag = "object"
	TagNull     TypeTag = "null"
)

// IsReference reports whether the tag names a referenced definition.
func (t TypeTag) IsReference() bool {
	switch t {
	case TagString, TagInteger, TagBoolean, TagFloat, TagSequence, TagObject, TagNull:
		return false
	}
	return t != ""
}

// Referent is implemented by values that know which definition they were
// built from. Such values satisfy reference type tags of that definition.
type Referent interface {
	DefinitionName() string
}

// RefName returns the definition name of a local reference: the last segment
// of "#/definitions/Pet" or "#/components/schemas/Pet". Bare names are
// returned unchanged.
func RefName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// Ptr returns a pointer to v. It keeps constraint literals short.
func Ptr[T any](v T) *T {
	return &v
}
