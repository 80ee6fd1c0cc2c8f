package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or malformed input field. It is raised
// before any work begins.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DependencyError means an infrastructure collaborator (store, cache) could
// not be reached, so the request as a whole failed.
type DependencyError struct {
	Component string
	Err       error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Component, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
