// Package errors defines the typed error taxonomy of the filtering engine:
// sentinel errors for errors.Is checks plus context-carrying wrapper types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrSessionNotFound is returned when a session is not found.
	ErrSessionNotFound = errors.New("session not found")

	// ErrFacetNotFound is returned when a facet name does not exist in a
	// session.
	ErrFacetNotFound = errors.New("facet not found")

	// ErrDuplicateFacet is returned when a facet configuration reuses a
	// name.
	ErrDuplicateFacet = errors.New("duplicate facet name")

	// ErrFacetKindMismatch is returned when an operation targets the wrong
	// facet variant, e.g. setting a query on a categorical facet.
	ErrFacetKindMismatch = errors.New("operation does not apply to this facet kind")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// SessionNotFoundError carries the missing session's ID.
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session '%s' not found", e.SessionID)
}

func (e *SessionNotFoundError) Is(target error) bool {
	return target == ErrSessionNotFound
}

// NewSessionNotFoundError creates a new SessionNotFoundError.
func NewSessionNotFoundError(sessionID string) *SessionNotFoundError {
	return &SessionNotFoundError{SessionID: sessionID}
}

// FacetNotFoundError carries the missing facet's name.
type FacetNotFoundError struct {
	FacetName string
}

func (e *FacetNotFoundError) Error() string {
	return fmt.Sprintf("facet named '%s' not found", e.FacetName)
}

func (e *FacetNotFoundError) Is(target error) bool {
	return target == ErrFacetNotFound
}

// NewFacetNotFoundError creates a new FacetNotFoundError.
func NewFacetNotFoundError(facetName string) *FacetNotFoundError {
	return &FacetNotFoundError{FacetName: facetName}
}

// FacetKindMismatchError names the facet and the operation that does not
// apply to it.
type FacetKindMismatchError struct {
	FacetName string
	Operation string
}

func (e *FacetKindMismatchError) Error() string {
	return fmt.Sprintf("facet '%s' does not support %s", e.FacetName, e.Operation)
}

func (e *FacetKindMismatchError) Is(target error) bool {
	return target == ErrFacetKindMismatch
}

// NewFacetKindMismatchError creates a new FacetKindMismatchError.
func NewFacetKindMismatchError(facetName, operation string) *FacetKindMismatchError {
	return &FacetKindMismatchError{FacetName: facetName, Operation: operation}
}

// ValidationError represents an input validation failure with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
