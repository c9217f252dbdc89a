package simplecms

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the simple-cms library
type Service interface {
	// Content type operations
	DefineContentType(ctx context.Context, actor Actor, req DefineContentTypeRequest) (*ContentType, error)
	GetContentType(ctx context.Context, id uuid.UUID) (*ContentType, error)
	GetContentTypeBySlug(ctx context.Context, slug string) (*ContentType, error)
	ListContentTypes(ctx context.Context) ([]*ContentType, error)
	UpdateContentType(ctx context.Context, actor Actor, req UpdateContentTypeRequest) (*ContentType, error)
	DeleteContentType(ctx context.Context, actor Actor, id uuid.UUID) error

	// Field definition operations
	AddField(ctx context.Context, actor Actor, contentTypeID uuid.UUID, spec FieldSpec) (*FieldDefinition, error)
	UpdateField(ctx context.Context, actor Actor, req UpdateFieldRequest) (*FieldDefinition, error)
	RemoveField(ctx context.Context, actor Actor, contentTypeID, fieldID uuid.UUID) error

	// Content operations
	CreateContent(ctx context.Context, actor Actor, req CreateContentRequest) (*Content, error)
	GetContent(ctx context.Context, id uuid.UUID, opts ...GetContentOption) (*Content, error)
	ListContent(ctx context.Context, params ListContentParams) ([]*Content, error)
	UpdateContent(ctx context.Context, actor Actor, req UpdateContentRequest) (*Content, error)
	DeleteContent(ctx context.Context, actor Actor, id uuid.UUID) error

	// Version operations
	ListVersions(ctx context.Context, contentID uuid.UUID) ([]*ContentVersion, error)
	GetVersion(ctx context.Context, contentID uuid.UUID, versionNumber int) (*ContentVersion, error)
	PublishVersion(ctx context.Context, actor Actor, contentID uuid.UUID, versionNumber int) (*Content, error)
	RestoreVersion(ctx context.Context, actor Actor, contentID uuid.UUID, versionNumber int) (*Content, error)
	CompareVersions(ctx context.Context, contentID uuid.UUID, versionA, versionB int) (*VersionComparison, error)
}
