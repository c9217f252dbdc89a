package simplecms

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrSchemaNotFound indicates a content type was not found
	ErrSchemaNotFound = errors.New("content type not found")

	// ErrDuplicateSchema indicates a content type name or slug is already taken
	ErrDuplicateSchema = errors.New("content type already exists")

	// ErrDuplicateSlug indicates a content slug is already taken within its type
	ErrDuplicateSlug = errors.New("slug already exists for content type")

	// ErrValidation indicates a missing required field or a malformed value
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a content entry or version was not found
	ErrNotFound = errors.New("not found")

	// ErrContentNotFound indicates a content entry was not found
	ErrContentNotFound = fmt.Errorf("content %w", ErrNotFound)

	// ErrVersionNotFound indicates a content version was not found
	ErrVersionNotFound = fmt.Errorf("version %w", ErrNotFound)

	// ErrFieldNotFound indicates a field definition was not found
	ErrFieldNotFound = fmt.Errorf("field %w", ErrNotFound)

	// ErrPermissionDenied indicates the actor lacks the required capability
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConcurrentVersionConflict indicates another transaction appended the same version number
	ErrConcurrentVersionConflict = errors.New("concurrent version conflict")

	// ErrDependentContentExists indicates a content type still has entries
	ErrDependentContentExists = errors.New("content type has dependent content")
)

// ValidationError reports which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: field %s: %s", ErrValidation, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// PermissionDeniedError reports the capability an actor was refused.
type PermissionDeniedError struct {
	ActorID    uuid.UUID
	Role       string
	Capability Capability
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: role %q lacks %s (actor %s)", ErrPermissionDenied, e.Role, e.Capability, e.ActorID)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// DependentContentExistsError reports how many entries block a content type deletion.
type DependentContentExistsError struct {
	ContentTypeID uuid.UUID
	Count         int
}

func (e *DependentContentExistsError) Error() string {
	return fmt.Sprintf("%s: %d entries reference content type %s", ErrDependentContentExists, e.Count, e.ContentTypeID)
}

func (e *DependentContentExistsError) Unwrap() error {
	return ErrDependentContentExists
}

// ContentError represents an error related to content operations
type ContentError struct {
	ContentID uuid.UUID
	Op        string
	Err       error
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("content operation %s failed for content %s: %v", e.Op, e.ContentID, e.Err)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// SchemaError represents an error related to content type operations
type SchemaError struct {
	ContentTypeID uuid.UUID
	Op            string
	Err           error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("content type operation %s failed for %s: %v", e.Op, e.ContentTypeID, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
