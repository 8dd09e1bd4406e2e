// SPDX-License-Identifier: GPL-2.0-or-later

// Package simerr defines the simulator's two fatal error kinds:
// InvariantViolation (an internal desynchronization between a policy
// and its cache, an ARC bound violation, an invalid block status, or a
// hierarchy lookup that should have been impossible), raised via panic
// and recovered once at the CLI boundary via derror.PanicToError; and
// ConfigurationError (a bad configuration value caught at startup),
// returned as an ordinary error.
package simerr

import "fmt"

// InvariantViolation reports an internal consistency failure that the
// simulator cannot recover from. It is always raised by panic(...)
// rather than returned, since by the time it is detected the caller's
// assumptions about the data structures involved are already broken.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Detail)
}

// Violate panics with an *InvariantViolation built from format/args.
func Violate(format string, args ...any) {
	panic(&InvariantViolation{Detail: fmt.Sprintf(format, args...)})
}

// ConfigurationError reports a bad value supplied to the simulator's
// configuration at startup: an out-of-range enum, a zero
// MigrationFrequency, or similar. It is fatal but, unlike
// InvariantViolation, is a normal error return from Config.Validate
// rather than a panic — bad configuration is an expected, recoverable
// user mistake, not an internal bug.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Detail)
}

// Configf returns a *ConfigurationError built from format/args.
func Configf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Detail: fmt.Sprintf(format, args...)}
}
