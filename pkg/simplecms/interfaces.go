package simplecms

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Reader defines read access to committed content model state.
type Reader interface {
	// Content types; fields are returned ordered by display order
	GetContentType(ctx context.Context, id uuid.UUID) (*ContentType, error)
	GetContentTypeBySlug(ctx context.Context, slug string) (*ContentType, error)
	ListContentTypes(ctx context.Context) ([]*ContentType, error)
	CountContentByType(ctx context.Context, contentTypeID uuid.UUID) (int, error)

	// Content entries
	GetContent(ctx context.Context, id uuid.UUID) (*Content, error)
	ListContent(ctx context.Context, params ListContentParams) ([]*Content, error)
	GetFieldValues(ctx context.Context, contentID uuid.UUID) ([]*FieldValue, error)

	// Versions, ascending by version number
	ListVersions(ctx context.Context, contentID uuid.UUID) ([]*ContentVersion, error)
	GetVersion(ctx context.Context, contentID uuid.UUID, versionNumber int) (*ContentVersion, error)
}

// Store is the write scope of a single transaction. Nothing written through
// a Store is visible to readers until the transaction commits.
type Store interface {
	Reader

	// Schema
	CreateContentType(ctx context.Context, ct *ContentType) error
	UpdateContentType(ctx context.Context, ct *ContentType) error
	DeleteContentType(ctx context.Context, id uuid.UUID) error
	CreateField(ctx context.Context, field *FieldDefinition) error
	UpdateField(ctx context.Context, field *FieldDefinition) error
	// DeleteField removes the definition and every value stored for it
	DeleteField(ctx context.Context, fieldID uuid.UUID) error

	// LockContent loads an entry and holds it against concurrent writers
	// until the transaction ends.
	LockContent(ctx context.Context, id uuid.UUID) (*Content, error)
	CreateContent(ctx context.Context, content *Content) error
	UpdateContent(ctx context.Context, content *Content) error
	DeleteContent(ctx context.Context, id uuid.UUID) error

	// Field values; at most one per (content, field)
	UpsertFieldValue(ctx context.Context, value *FieldValue) error
	DeleteFieldValue(ctx context.Context, contentID, fieldID uuid.UUID) error
	DeleteFieldValues(ctx context.Context, contentID uuid.UUID) error

	// Version ledger; CreateVersion fails with ErrConcurrentVersionConflict
	// when the number is already taken.
	MaxVersionNumber(ctx context.Context, contentID uuid.UUID) (int, error)
	CreateVersion(ctx context.Context, version *ContentVersion) error
	DeleteVersions(ctx context.Context, contentID uuid.UUID) error
}

// Repository defines the interface for content model persistence
type Repository interface {
	Reader
	// WithTx runs fn in a transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(Store) error) error
}

// Capability names an operation class checked by an AccessGuard.
type Capability string

// Capabilities consumed by the service.
const (
	CapCreateContent          Capability = "create_content"
	CapEditOwnContent         Capability = "edit_own_content"
	CapEditAnyContent         Capability = "edit_any_content"
	CapPublishContent         Capability = "publish_content"
	CapRestoreContentVersions Capability = "restore_content_versions"
	CapDeleteContent          Capability = "delete_content"
	CapManageContentTypes     Capability = "manage_content_types"
)

// AccessRequest asks whether an actor may perform an operation. OwnerID is
// set when the operation targets an existing entry.
type AccessRequest struct {
	Actor      Actor
	Capability Capability
	OwnerID    *uuid.UUID
}

// AccessGuard approves or denies an operation before it runs.
type AccessGuard interface {
	// Authorize returns nil when allowed and an error wrapping
	// ErrPermissionDenied otherwise.
	Authorize(ctx context.Context, req AccessRequest) error
}

// EventSink defines the interface for content model lifecycle events.
// Events fire after the transaction commits.
type EventSink interface {
	ContentTypeSaved(ctx context.Context, ct *ContentType) error
	ContentTypeDeleted(ctx context.Context, id uuid.UUID) error
	ContentCreated(ctx context.Context, content *Content, version *ContentVersion) error
	ContentUpdated(ctx context.Context, content *Content, version *ContentVersion) error
	ContentPublished(ctx context.Context, content *Content, version *ContentVersion) error
	ContentRestored(ctx context.Context, content *Content, version *ContentVersion) error
	ContentDeleted(ctx context.Context, id uuid.UUID) error
}

// SchemaCache caches content types for read paths.
type SchemaCache interface {
	Get(ctx context.Context, id uuid.UUID) (*ContentType, bool, error)
	Set(ctx context.Context, ct *ContentType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MediaResolver checks that an opaque media id refers to stored media.
type MediaResolver interface {
	Exists(ctx context.Context, mediaID string) (bool, error)
}

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a new unique id.
type IDGenerator func() uuid.UUID
