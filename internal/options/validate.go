// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/oasresolver/oaserrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// noSourceMsg and multiSourceMsg become the message of the returned
// *oaserrors.ConfigError.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	switch {
	case sourceCount == 0:
		return &oaserrors.ConfigError{Option: "source", Message: noSourceMsg}
	case sourceCount > 1:
		return &oaserrors.ConfigError{Option: "source", Value: sourceCount, Message: multiSourceMsg}
	}
	return nil
}
