package simplecms

import (
	"context"

	"github.com/google/uuid"
)

// ContentDetails bundles an entry with its schema and version history.
type ContentDetails struct {
	Content     *Content          `json:"content"`
	ContentType *ContentType      `json:"content_type"`
	Versions    []*ContentVersion `json:"versions"`
}

// Latest returns the newest version, or nil when there is none.
func (d *ContentDetails) Latest() *ContentVersion {
	if len(d.Versions) == 0 {
		return nil
	}
	return d.Versions[len(d.Versions)-1]
}

// GetContentDetails returns an entry with resolved fields, its content type
// and its versions in ascending order.
func GetContentDetails(ctx context.Context, svc Service, contentID uuid.UUID) (*ContentDetails, error) {
	content, err := svc.GetContent(ctx, contentID, WithFields())
	if err != nil {
		return nil, err
	}
	ct, err := svc.GetContentType(ctx, content.ContentTypeID)
	if err != nil {
		return nil, err
	}
	versions, err := svc.ListVersions(ctx, contentID)
	if err != nil {
		return nil, err
	}
	return &ContentDetails{Content: content, ContentType: ct, Versions: versions}, nil
}

// LatestVersion returns the newest version of an entry.
func LatestVersion(ctx context.Context, svc Service, contentID uuid.UUID) (*ContentVersion, error) {
	versions, err := svc.ListVersions(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, &ContentError{ContentID: contentID, Op: "latest_version", Err: ErrVersionNotFound}
	}
	return versions[len(versions)-1], nil
}

// PublishLatest publishes the newest version of an entry.
func PublishLatest(ctx context.Context, svc Service, actor Actor, contentID uuid.UUID) (*Content, error) {
	latest, err := LatestVersion(ctx, svc, contentID)
	if err != nil {
		return nil, err
	}
	return svc.PublishVersion(ctx, actor, contentID, latest.VersionNumber)
}

// CreateContentOfType creates an entry for the content type with the given slug.
func CreateContentOfType(ctx context.Context, svc Service, actor Actor, typeSlug string, req CreateContentRequest) (*Content, error) {
	ct, err := svc.GetContentTypeBySlug(ctx, typeSlug)
	if err != nil {
		return nil, err
	}
	req.ContentTypeID = ct.ID
	return svc.CreateContent(ctx, actor, req)
}

// StringPtr returns a pointer to s, for optional request fields.
func StringPtr(s string) *string {
	return &s
}

// StatusPtr returns a pointer to status, for optional request fields.
func StatusPtr(status ContentStatus) *ContentStatus {
	return &status
}
