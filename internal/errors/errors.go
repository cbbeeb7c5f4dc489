// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNoAccount     = errors.New("no account record")
	ErrNotFound      = errors.New("not found")
	ErrEntityInUse   = errors.New("entity in use")
	ErrNoDirectory   = errors.New("no journal directory set")
	ErrNotRoadBook   = errors.New("not a journal directory")
	ErrConfigInvalid = errors.New("invalid configuration")
)

// ValidationError represents a rejected record mutation.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// InUseError reports a refused deletion of a still-referenced entity.
type InUseError struct {
	Kind string
	Name string
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("%s '%s' is in use", e.Kind, e.Name)
}

func (e *InUseError) Unwrap() error {
	return ErrEntityInUse
}

// NewInUseError creates a new InUseError.
func NewInUseError(kind, name string) *InUseError {
	return &InUseError{Kind: kind, Name: name}
}

// LoadError tags a structural failure with the file it came from.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
