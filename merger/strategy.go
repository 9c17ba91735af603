package merger

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

// StrategyName identifies a merge strategy in configuration.
type StrategyName string

const (
	// StrategyCombineName prefixes every key with its location.
	StrategyCombineName StrategyName = "combine-name"
	// StrategyReplaceLastWin keeps bare names; the last parameter wins.
	StrategyReplaceLastWin StrategyName = "replace-last-win"
)

// CombineNameDelimiter separates location and name in combined keys.
const CombineNameDelimiter = "_"

// ValidStrategies returns all valid strategy names.
func ValidStrategies() []string {
	return []string{
		string(StrategyCombineName),
		string(StrategyReplaceLastWin),
	}
}

// IsValidStrategy reports whether name is a known strategy.
func IsValidStrategy(name string) bool {
	switch StrategyName(name) {
	case StrategyCombineName, StrategyReplaceLastWin:
		return true
	default:
		return false
	}
}

// Strategy decides the merged key of a parameter. When two parameters map
// to the same key the later one replaces the earlier.
type Strategy interface {
	Name() StrategyName
	Key(location schema.Location, name string) string
}

// ParseStrategy returns the strategy registered under name.
func ParseStrategy(name string) (Strategy, error) {
	switch StrategyName(name) {
	case StrategyCombineName:
		return CombineName{}, nil
	case StrategyReplaceLastWin:
		return ReplaceLastWin{}, nil
	}
	return nil, &oaserrors.ConfigError{
		Option:  "strategy",
		Value:   name,
		Message: fmt.Sprintf("unknown merge strategy; valid strategies are: %s", strings.Join(ValidStrategies(), ", ")),
	}
}

// CombineName stores every parameter under "<location>_<name>".
type CombineName struct{}

// Name implements Strategy.
func (CombineName) Name() StrategyName { return StrategyCombineName }

// Key implements Strategy.
func (CombineName) Key(location schema.Location, name string) string {
	return string(location) + CombineNameDelimiter + name
}

// ReplaceLastWin stores parameters under their bare name.
type ReplaceLastWin struct{}

// Name implements Strategy.
func (ReplaceLastWin) Name() StrategyName { return StrategyReplaceLastWin }

// Key implements Strategy.
func (ReplaceLastWin) Key(_ schema.Location, name string) string { return name }
