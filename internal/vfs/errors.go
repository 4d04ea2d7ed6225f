package vfs

import (
	"errors"
	"fmt"
)

// ErrNoCurrentRevision is returned when an item has no revisions yet.
// Most callers treat it as an empty result rather than a failure.
var ErrNoCurrentRevision = errors.New("item has no current revision")

// ValidationError reports a rejected mutation: a blank required field, a
// uniqueness violation, or an ineligible contents type. Store-level
// constraint trips are translated into this type so raw driver errors
// never reach callers.
type ValidationError struct {
	Field  string // field that failed, e.g. "name"
	Reason string // human-readable cause
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError reports that a direct single-entity fetch had no matching
// row. Query-style lookups return empty results instead of this error.
type NotFoundError struct {
	Kind string // entity kind, e.g. "folder"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given entity.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
