package validator

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

// StringMinLength enforces minLength.
type StringMinLength struct{}

// Supports implements Validator.
func (StringMinLength) Supports(p *schema.Property) bool {
	return p.Type == schema.TypeString && p.MinLength != nil
}

// Validate implements Validator.
func (StringMinLength) Validate(p *schema.Property, name string, value any) error {
	if CharCount(text(value)) < *p.MinLength {
		return &oaserrors.ValidationError{
			Property: name,
			Rule:     "minLength",
			Value:    value,
			Message:  fmt.Sprintf("should have %d characters or more", *p.MinLength),
		}
	}
	return nil
}

// StringMaxLength enforces maxLength.
type StringMaxLength struct{}

// Supports implements Validator.
func (StringMaxLength) Supports(p *schema.Property) bool {
	return p.Type == schema.TypeString && p.MaxLength != nil
}

// Validate implements Validator.
func (StringMaxLength) Validate(p *schema.Property, name string, value any) error {
	if CharCount(text(value)) > *p.MaxLength {
		return &oaserrors.ValidationError{
			Property: name,
			Rule:     "maxLength",
			Value:    value,
			Message:  fmt.Sprintf("should have %d characters or less", *p.MaxLength),
		}
	}
	return nil
}

// CharCount returns the number of characters in s after NFC normalization,
// so "e" followed by a combining accent counts once.
func CharCount(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// maxPatternCacheSize is the upper bound on cached compiled patterns.
// When exceeded, the cache is cleared.
const maxPatternCacheSize = 1000

// StringPattern enforces pattern. Compiled expressions are cached; a single
// StringPattern is safe for concurrent use.
type StringPattern struct {
	cache *patternCache
}

type patternCache struct {
	patterns sync.Map // map[string]*regexp.Regexp
	count    atomic.Int64
}

// NewStringPattern returns a pattern validator with an empty cache.
func NewStringPattern() StringPattern {
	return StringPattern{cache: &patternCache{}}
}

// Supports implements Validator.
func (StringPattern) Supports(p *schema.Property) bool {
	return p.Type == schema.TypeString && p.Pattern != ""
}

// Validate implements Validator.
func (v StringPattern) Validate(p *schema.Property, name string, value any) error {
	expr := strings.Trim(p.Pattern, "/")
	re, err := v.compile(expr)
	if err != nil {
		return &oaserrors.ValidationError{
			Property: name,
			Rule:     "pattern",
			Value:    value,
			Message:  fmt.Sprintf("declares invalid pattern %q: %v", p.Pattern, err),
		}
	}
	if !re.MatchString(text(value)) {
		return &oaserrors.ValidationError{
			Property: name,
			Rule:     "pattern",
			Value:    value,
			Message:  fmt.Sprintf("should match the pattern %q", "/"+expr+"/"),
		}
	}
	return nil
}

func (v StringPattern) compile(expr string) (*regexp.Regexp, error) {
	if v.cache == nil {
		return regexp.Compile(expr)
	}
	if cached, ok := v.cache.patterns.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	if v.cache.count.Add(1) > maxPatternCacheSize {
		v.cache.patterns.Range(func(key, _ any) bool {
			v.cache.patterns.Delete(key)
			return true
		})
		v.cache.count.Store(1)
	}
	v.cache.patterns.Store(expr, re)
	return re, nil
}

// text renders value for string checks.
func text(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
