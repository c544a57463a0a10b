package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownCommand indicates a key binding names a command that doesn't exist.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrEmptyBinding indicates a command or key binding with no keys.
	ErrEmptyBinding = errors.New("empty key binding")

	// ErrDuplicateKey indicates the same key is bound to two commands.
	ErrDuplicateKey = errors.New("key bound more than once")

	// ErrInvalidColor indicates a theme color that is not a hex color.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidLevel indicates an unknown log level.
	ErrInvalidLevel = errors.New("invalid log level")
)

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Value is the invalid value.
	Value any
	// Err is the sentinel describing the failure.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v (value: %v)", e.Path, e.Err, e.Value)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every failure found by Validate.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return "no errors"
	case 1:
		return e[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", e[0].Error(), len(e)-1)
	}
}

// Unwrap returns the individual errors so errors.Is sees every sentinel.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}
