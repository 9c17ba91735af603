package validator

import (
	"fmt"
	"regexp"
	"time"

	"github.com/araddon/dateparse"

	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

// Default patterns applied when a date property declares no pattern.
const (
	DefaultDatePattern     = `^\d{4}-\d{2}-\d{2}$`
	DefaultDateTimePattern = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`
)

var (
	dateRegex     = regexp.MustCompile(DefaultDatePattern)
	dateTimeRegex = regexp.MustCompile(DefaultDateTimePattern)
)

// dayFirstLayouts are tried before dateparse, which reads slash and dot
// dates month first. Dotted and dashed day-first dates are common with an
// explicit pattern.
var dayFirstLayouts = []string{
	"02.01.2006",
	"02.01.2006 15:04",
	"02.01.2006 15:04:05",
	"02-01-2006",
	"02-01-2006 15:04:05",
}

// parseCalendar reports whether s is a real calendar date or time.
func parseCalendar(s string) bool {
	for _, layout := range dayFirstLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	_, err := dateparse.ParseAny(s)
	return err == nil
}

// Date validates the "date" format.
type Date struct{}

// Supports implements Validator.
func (Date) Supports(p *schema.Property) bool {
	return p.Format == "date"
}

// Validate implements Validator.
func (Date) Validate(p *schema.Property, name string, value any) error {
	return validateDate(p, name, value, "date", dateRegex)
}

// DateTime validates the "date-time" format.
type DateTime struct{}

// Supports implements Validator.
func (DateTime) Supports(p *schema.Property) bool {
	return p.Format == "date-time"
}

// Validate implements Validator.
func (DateTime) Validate(p *schema.Property, name string, value any) error {
	return validateDate(p, name, value, "date-time", dateTimeRegex)
}

func validateDate(p *schema.Property, name string, value any, format string, defaultPattern *regexp.Regexp) error {
	s := text(value)
	if s == "" {
		return nil
	}
	if p.Pattern == "" && !defaultPattern.MatchString(s) {
		return &oaserrors.ValidationError{
			Property: name,
			Rule:     "format",
			Value:    value,
			Message: fmt.Sprintf("should match the pattern %q; set pattern explicitly to accept other layouts",
				defaultPattern.String()),
		}
	}
	if !parseCalendar(s) {
		return &oaserrors.ValidationError{
			Property: name,
			Rule:     "format",
			Value:    value,
			Message:  fmt.Sprintf("contains invalid %s value", format),
		}
	}
	return nil
}
