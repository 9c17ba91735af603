// Package severity provides the severity levels attached to diagnostics
// reported by the CLI and the MCP server.
//
// Levels are ordered from least to most severe: Info < Warning < Error.
package severity

import "fmt"

// Severity indicates how serious a reported issue is.
type Severity int

const (
	// SeverityError marks a property that failed to compile or resolve.
	SeverityError Severity = iota

	// SeverityWarning marks something the loader skipped or approximated
	// while converting a document.
	SeverityWarning

	// SeverityInfo marks a notice that needs no action.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Symbol returns the one-character marker used in text output.
func (s Severity) Symbol() string {
	switch s {
	case SeverityError:
		return "✗"
	case SeverityWarning:
		return "⚠"
	case SeverityInfo:
		return "ℹ"
	default:
		return "?"
	}
}

// MarshalText encodes the level by name so JSON and YAML output read
// "error" rather than 0.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a level name written by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Rank orders levels for sorting, most severe first.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}
