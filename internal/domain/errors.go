package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals malformed search input caught at the boundary.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnrecognizedOption signals an option value outside its closed set
	// (sort order, entity type). Never silently defaulted.
	ErrUnrecognizedOption = errors.New("unrecognized option")
	// ErrProviderUnavailable signals a record provider fetch failure.
	ErrProviderUnavailable = errors.New("record provider unavailable")
)

// OptionError wraps ErrUnrecognizedOption with the offending option and value.
type OptionError struct {
	Option string
	Value  string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrUnrecognizedOption.Error(), e.Option, e.Value)
}

func (e *OptionError) Unwrap() error { return ErrUnrecognizedOption }

// NewOptionError creates an unrecognized option error.
func NewOptionError(option, value string) error {
	return &OptionError{Option: option, Value: value}
}
