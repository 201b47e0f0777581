// SPDX-License-Identifier: MPL-2.0

package repofromenv

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the sentinel error wrapped by ConfigError.
	ErrConfiguration = errors.New("invalid repository configuration")
	// ErrInvalidFlag is the sentinel error wrapped by InvalidFlagError.
	ErrInvalidFlag = errors.New("invalid boolean flag")
)

type (
	// ConfigError is returned when a username is configured without a
	// password. It aborts the whole discovery pass.
	ConfigError struct {
		UsernameKey string
		PasswordKey string
	}

	// InvalidFlagError is returned when a toggle holds text that is neither
	// truthy nor falsy. The toggle falls back to its default.
	InvalidFlagError struct {
		Key   string
		Value string
	}
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("if property %s is set, password property %s also has to be set along with it",
		e.UsernameKey, e.PasswordKey)
}

// Unwrap returns ErrConfiguration for errors.Is() compatibility.
func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// Error implements the error interface.
func (e *InvalidFlagError) Error() string {
	return fmt.Sprintf("%s=%q is not a boolean value", e.Key, e.Value)
}

// Unwrap returns ErrInvalidFlag for errors.Is() compatibility.
func (e *InvalidFlagError) Unwrap() error { return ErrInvalidFlag }
