package simplecms

import "github.com/google/uuid"

// Request/Response DTOs

// FieldSpec describes a field when defining or extending a content type
type FieldSpec struct {
	Key          string
	Name         string
	Type         FieldType
	Required     bool
	DisplayOrder int
	Settings     map[string]interface{}
}

// DefineContentTypeRequest contains parameters for defining a content type
type DefineContentTypeRequest struct {
	Name          string
	Slug          string
	Description   string
	IsListable    bool
	DefaultStatus ContentStatus
	Fields        []FieldSpec
}

// UpdateContentTypeRequest contains parameters for updating a content type.
// Nil fields are left unchanged.
type UpdateContentTypeRequest struct {
	ID            uuid.UUID
	Name          *string
	Slug          *string
	Description   *string
	IsListable    *bool
	DefaultStatus *ContentStatus
}

// UpdateFieldRequest contains parameters for updating a field definition.
// The key is immutable; nil fields are left unchanged.
type UpdateFieldRequest struct {
	ContentTypeID uuid.UUID
	FieldID       uuid.UUID
	Name          *string
	Type          *FieldType
	Required      *bool
	DisplayOrder  *int
	Settings      map[string]interface{}
}

// CreateContentRequest contains parameters for creating a content entry.
// An empty Slug is derived from Title; an empty Status uses the type default.
type CreateContentRequest struct {
	ContentTypeID uuid.UUID
	Title         string
	Slug          string
	Status        ContentStatus
	Fields        map[string]interface{}
}

// UpdateContentRequest contains a patch for a content entry. Only the
// fields present in Fields are written; a nil value clears that field.
type UpdateContentRequest struct {
	ID     uuid.UUID
	Title  *string
	Slug   *string
	Status *ContentStatus
	Fields map[string]interface{}
}

// ListContentParams contains filters for listing content entries
type ListContentParams struct {
	ContentTypeID *uuid.UUID
	Status        *ContentStatus
	Limit         int
	Offset        int
}

// GetContentOption configures GetContent
type GetContentOption func(*getContentOptions)

type getContentOptions struct {
	withFields bool
}

// WithFields includes resolved field values in the returned content
func WithFields() GetContentOption {
	return func(o *getContentOptions) {
		o.withFields = true
	}
}
