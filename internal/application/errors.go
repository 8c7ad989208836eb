package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound     = errors.New("not found")
	ErrPrecondition = errors.New("precondition failed")
	ErrNotConfirmed = errors.New("not confirmed")
	ErrNoSession    = errors.New("no signed-in user")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NetworkError wraps a failed call to the backend or geocoder.
// Local state is left untouched when one of these is returned.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// PreconditionError represents an action attempted in the wrong state.
// The interactive map ignores these instead of showing them.
type PreconditionError struct {
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// IsPrecondition reports whether err is a PreconditionError
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}
