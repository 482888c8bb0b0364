// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound         = errors.New("entity not found")
	ErrAlreadyExists    = errors.New("entity already exists")
	ErrInvalidReference = errors.New("invalid reference")

	// Validation errors
	ErrValidation   = errors.New("validation error")
	ErrMissingField = errors.New("missing field")

	// State errors
	ErrInvalidState = errors.New("invalid state")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "addressbook", "history"
	Op      string // Operation that failed, e.g., "AddPerson", "Undo"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Address book errors
var (
	ErrDuplicatePerson     = NewDomainError("addressbook", "AddPerson", ErrAlreadyExists, "this person already exists in the address book")
	ErrPersonNotFound      = NewDomainError("addressbook", "FindPerson", ErrNotFound, "person not found")
	ErrDuplicateLesson     = NewDomainError("addressbook", "AddLesson", ErrAlreadyExists, "this lesson already exists in the address book")
	ErrLessonNotFound      = NewDomainError("addressbook", "FindLesson", ErrNotFound, "lesson not found")
	ErrDanglingParticipant = NewDomainError("addressbook", "AddLesson", ErrInvalidReference, "lesson participant does not exist in the address book")
)

// History errors
var (
	ErrNoUndoableState = NewDomainError("history", "Undo", ErrInvalidState, "no undoable address book state")
	ErrNoRedoableState = NewDomainError("history", "Redo", ErrInvalidState, "no redoable address book state")
)

// Storage errors
var (
	ErrStoreNotFound = NewDomainError("storage", "Load", ErrNotFound, "address book store does not exist")
)

// ValidationError reports a field that is missing or violates its format
// constraint. Error() returns the constraint message unchanged.
type ValidationError struct {
	Field   string
	Message string
	Missing bool
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches ErrValidation, and ErrMissingField for absent fields.
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	return e.Missing && target == ErrMissingField
}

// NewValidationError creates a format-constraint violation for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// MissingFieldFormat is the message template for absent required fields.
// The first verb is the entity label, the second the field name.
const MissingFieldFormat = "%s's %s field is missing!"

// NewMissingFieldError creates a missing-field error for entity's field.
func NewMissingFieldError(entity, field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(MissingFieldFormat, entity, field),
		Missing: true,
	}
}

// RecordError locates a failure inside a stored document.
type RecordError struct {
	Entity string // "person" or "lesson"
	Index  int
	Err    error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("%s record %d: %v", e.Entity, e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// AsValidation extracts the ValidationError from err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsRecoverable reports whether err belongs to the recoverable taxonomy the
// command layer is expected to translate into user feedback.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrInvalidReference) ||
		errors.Is(err, ErrInvalidState)
}
