// Package schemautil maps declared schema types to the runtime types a
// resolved value may take.
package schemautil

import (
	"slices"

	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

// AllowedTypes returns the runtime type tags acceptable for p.
//
//	string             -> string
//	integer            -> integer
//	boolean            -> boolean
//	number             -> float
//	array              -> sequence, or string when a collection format is set
//	object             -> object, sequence
//	$ref (no type)     -> object, sequence, <ref>
//
// Any other declaration fails with *oaserrors.UndefinedPropertyTypeError.
// definition names the owning schema in that error.
func AllowedTypes(p *schema.Property, definition string) ([]schema.TypeTag, error) {
	switch p.Type {
	case schema.TypeString:
		return []schema.TypeTag{schema.TagString}, nil
	case schema.TypeInteger:
		return []schema.TypeTag{schema.TagInteger}, nil
	case schema.TypeBoolean:
		return []schema.TypeTag{schema.TagBoolean}, nil
	case schema.TypeNumber:
		return []schema.TypeTag{schema.TagFloat}, nil
	case schema.TypeArray:
		if p.CollectionFormat != "" {
			return []schema.TypeTag{schema.TagString}, nil
		}
		return []schema.TypeTag{schema.TagSequence}, nil
	case schema.TypeObject:
		return []schema.TypeTag{schema.TagObject, schema.TagSequence}, nil
	case "":
		if p.Ref != "" {
			return []schema.TypeTag{schema.TagObject, schema.TagSequence, schema.TypeTag(p.Ref)}, nil
		}
	}
	return nil, &oaserrors.UndefinedPropertyTypeError{
		Definition: definition,
		Property:   p.Name,
		RawType:    string(p.Type),
	}
}

// AddType appends tag to types unless it is already present.
func AddType(types []schema.TypeTag, tag schema.TypeTag) []schema.TypeTag {
	if slices.Contains(types, tag) {
		return types
	}
	return append(types, tag)
}
