package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/erraggy/oasresolver/internal/schemautil"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

// ToSequence converts an array value to a slice.
//
// nil becomes an empty slice. Without a collection format the value must
// already be a slice. With one, a string is split on the format's delimiter;
// for the multi format each "key=value" item keeps only its value. A value
// that is already a slice is returned as is.
func ToSequence(p *schema.Property, name string, value any) ([]any, error) {
	if value == nil {
		return []any{}, nil
	}
	if seq, ok := asSlice(value); ok {
		return seq, nil
	}

	s, ok := value.(string)
	if !ok || p.CollectionFormat == "" {
		return nil, &oaserrors.ValidationError{
			Property: name,
			Rule:     "type",
			Value:    value,
			Message:  "should contain a valid array",
		}
	}
	if !p.CollectionFormat.IsValid() {
		return nil, &oaserrors.ValidationError{
			Property: name,
			Rule:     "collectionFormat",
			Value:    value,
			Message:  fmt.Sprintf("unknown collection format %q", p.CollectionFormat),
		}
	}

	parts := strings.Split(s, p.CollectionFormat.Delimiter())
	seq := make([]any, len(parts))
	for i, part := range parts {
		if p.CollectionFormat == schema.CollectionMulti {
			if _, v, found := strings.Cut(part, "="); found {
				part = v
			}
		}
		seq[i] = part
	}
	return seq, nil
}

func asSlice(value any) ([]any, bool) {
	if seq, ok := value.([]any); ok {
		return seq, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	seq := make([]any, rv.Len())
	for i := range seq {
		seq[i] = rv.Index(i).Interface()
	}
	return seq, true
}

// ArrayMinItems enforces minItems.
type ArrayMinItems struct{}

// Supports implements Validator.
func (ArrayMinItems) Supports(p *schema.Property) bool {
	return p.Type == schema.TypeArray && p.MinItems != nil
}

// Validate implements Validator.
func (ArrayMinItems) Validate(p *schema.Property, name string, value any) error {
	seq, err := ToSequence(p, name, value)
	if err != nil {
		return err
	}
	if len(seq) < *p.MinItems {
		return &oaserrors.ValidationError{
			Property: name,
			Rule:     "minItems",
			Value:    value,
			Message:  fmt.Sprintf("should have %d items or more", *p.MinItems),
		}
	}
	return nil
}

// ArrayMaxItems enforces maxItems.
type ArrayMaxItems struct{}

// Supports implements Validator.
func (ArrayMaxItems) Supports(p *schema.Property) bool {
	return p.Type == schema.TypeArray && p.MaxItems != nil
}

// Validate implements Validator.
func (ArrayMaxItems) Validate(p *schema.Property, name string, value any) error {
	seq, err := ToSequence(p, name, value)
	if err != nil {
		return err
	}
	if len(seq) > *p.MaxItems {
		return &oaserrors.ValidationError{
			Property: name,
			Rule:     "maxItems",
			Value:    value,
			Message:  fmt.Sprintf("should have %d items or less", *p.MaxItems),
		}
	}
	return nil
}

// ArrayUniqueItems enforces uniqueItems.
type ArrayUniqueItems struct{}

// Supports implements Validator.
func (ArrayUniqueItems) Supports(p *schema.Property) bool {
	return p.Type == schema.TypeArray && p.UniqueItems
}

// Validate implements Validator.
func (ArrayUniqueItems) Validate(p *schema.Property, name string, value any) error {
	seq, err := ToSequence(p, name, value)
	if err != nil {
		return err
	}
	if hasDuplicates(seq) {
		return &oaserrors.ValidationError{
			Property: name,
			Rule:     "uniqueItems",
			Value:    value,
			Message:  "should contain unique items",
		}
	}
	return nil
}

// hasDuplicates compares numbers by value, so int64(1) and float64(1) are
// equal, and other items by dynamic type and formatted value.
func hasDuplicates(items []any) bool {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := fmt.Sprintf("%T:%v", item, item)
		if n, ok := schemautil.Float64(item); ok {
			key = "number:" + strconv.FormatFloat(n, 'g', -1, 64)
		}
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}
