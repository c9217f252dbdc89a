package simplecms

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *service) ListVersions(ctx context.Context, contentID uuid.UUID) ([]*ContentVersion, error) {
	if _, err := s.repository.GetContent(ctx, contentID); err != nil {
		return nil, &ContentError{ContentID: contentID, Op: "list_versions", Err: err}
	}
	versions, err := s.repository.ListVersions(ctx, contentID)
	if err != nil {
		return nil, &ContentError{ContentID: contentID, Op: "list_versions", Err: err}
	}
	return versions, nil
}

func (s *service) GetVersion(ctx context.Context, contentID uuid.UUID, versionNumber int) (*ContentVersion, error) {
	v, err := s.repository.GetVersion(ctx, contentID, versionNumber)
	if err != nil {
		return nil, &ContentError{ContentID: contentID, Op: "get_version", Err: err}
	}
	return v, nil
}

// PublishVersion marks the entry published with the title of the given
// version and records a new version whose data is copied from it. Field
// values are not changed.
func (s *service) PublishVersion(ctx context.Context, actor Actor, contentID uuid.UUID, versionNumber int) (*Content, error) {
	fail := func(err error) (*Content, error) {
		s.hooks.executeOnError(ctx, actor, "publish", err)
		return nil, &ContentError{ContentID: contentID, Op: "publish", Err: err}
	}

	current, err := s.repository.GetContent(ctx, contentID)
	if err != nil {
		return fail(err)
	}
	if err := s.authorize(ctx, actor, CapPublishContent, &current.CreatedByID); err != nil {
		return fail(err)
	}

	var content *Content
	var version *ContentVersion
	var oldStatus ContentStatus
	err = s.repository.WithTx(ctx, func(tx Store) error {
		var err error
		content, err = tx.LockContent(ctx, contentID)
		if err != nil {
			return err
		}
		source, err := tx.GetVersion(ctx, contentID, versionNumber)
		if err != nil {
			return err
		}

		now := s.now()
		oldStatus = content.Status
		content.Status = ContentStatusPublished
		content.PublishedAt = &now
		content.Title = source.Title
		content.UpdatedByID = actor.ID
		content.UpdatedAt = now
		if err := tx.UpdateContent(ctx, content); err != nil {
			return err
		}

		version, err = s.appendVersion(ctx, tx, actor, content, copyData(source.Data),
			fmt.Sprintf("Published version %d by %s", versionNumber, actorName(actor)))
		return err
	})
	if err != nil {
		return fail(err)
	}

	s.logger.Info("content published",
		zap.Stringer("content_id", contentID),
		zap.Int("source_version", versionNumber),
		zap.Int("version", version.VersionNumber),
		zap.Stringer("actor_id", actor.ID))
	s.afterHook("publish", s.hooks.executeOnStatusChange(ctx, actor, contentID, oldStatus, content.Status))
	s.afterHook("publish", s.hooks.executeAfterVersionCreate(ctx, actor, version))
	s.emit("content_published", s.eventSink.ContentPublished(ctx, content, version))

	return content, nil
}

// RestoreVersion reapplies a historical snapshot to the live entry. Only
// fields defined by the current schema and present in the snapshot are
// written; other fields keep their current values. Title and status are
// not changed.
func (s *service) RestoreVersion(ctx context.Context, actor Actor, contentID uuid.UUID, versionNumber int) (*Content, error) {
	fail := func(err error) (*Content, error) {
		s.hooks.executeOnError(ctx, actor, "restore", err)
		return nil, &ContentError{ContentID: contentID, Op: "restore", Err: err}
	}

	current, err := s.repository.GetContent(ctx, contentID)
	if err != nil {
		return fail(err)
	}
	if err := s.authorize(ctx, actor, CapRestoreContentVersions, &current.CreatedByID); err != nil {
		return fail(err)
	}

	var content *Content
	var version *ContentVersion
	err = s.repository.WithTx(ctx, func(tx Store) error {
		var err error
		content, err = tx.LockContent(ctx, contentID)
		if err != nil {
			return err
		}
		source, err := tx.GetVersion(ctx, contentID, versionNumber)
		if err != nil {
			return err
		}
		ct, err := tx.GetContentType(ctx, content.ContentTypeID)
		if err != nil {
			return err
		}
		values, err := loadValues(ctx, tx, ct, contentID)
		if err != nil {
			return err
		}

		applied := make(map[string]interface{})
		for _, f := range SortFields(ct.Fields) {
			raw, ok := source.Data[f.Key]
			if !ok {
				continue
			}
			v, err := s.writeField(ctx, tx, actor, content, f, raw, false)
			if err != nil {
				return err
			}
			if v == nil {
				delete(values, f.Key)
			} else {
				values[f.Key] = v
			}
			applied[f.Key] = ResolveValue(v)
		}

		content.UpdatedByID = actor.ID
		content.UpdatedAt = s.now()
		if err := tx.UpdateContent(ctx, content); err != nil {
			return err
		}
		content.Fields = snapshot(ct.Fields, values)

		version, err = s.appendVersion(ctx, tx, actor, content, applied,
			fmt.Sprintf("Restored to version %d by %s", versionNumber, actorName(actor)))
		return err
	})
	if err != nil {
		return fail(err)
	}

	s.logger.Info("content restored",
		zap.Stringer("content_id", contentID),
		zap.Int("source_version", versionNumber),
		zap.Int("version", version.VersionNumber),
		zap.Stringer("actor_id", actor.ID))
	s.afterHook("restore", s.hooks.executeAfterVersionCreate(ctx, actor, version))
	s.emit("content_restored", s.eventSink.ContentRestored(ctx, content, version))

	return content, nil
}

func (s *service) CompareVersions(ctx context.Context, contentID uuid.UUID, versionA, versionB int) (*VersionComparison, error) {
	fail := func(err error) (*VersionComparison, error) {
		return nil, &ContentError{ContentID: contentID, Op: "compare", Err: err}
	}

	content, err := s.repository.GetContent(ctx, contentID)
	if err != nil {
		return fail(err)
	}
	a, err := s.repository.GetVersion(ctx, contentID, versionA)
	if err != nil {
		return fail(err)
	}
	b, err := s.repository.GetVersion(ctx, contentID, versionB)
	if err != nil {
		return fail(err)
	}
	ct, err := s.getContentType(ctx, content.ContentTypeID)
	if err != nil {
		return fail(err)
	}

	return &VersionComparison{
		ContentID: contentID,
		VersionA:  a.VersionNumber,
		VersionB:  b.VersionNumber,
		TitleA:    a.Title,
		TitleB:    b.Title,
		StatusA:   a.Status,
		StatusB:   b.Status,
		Fields:    Compare(ct.Fields, a.Data, b.Data),
	}, nil
}
