package simplecms

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *service) CreateContent(ctx context.Context, actor Actor, req CreateContentRequest) (*Content, error) {
	id := s.newID()
	fail := func(err error) (*Content, error) {
		s.hooks.executeOnError(ctx, actor, "create", err)
		return nil, &ContentError{ContentID: id, Op: "create", Err: err}
	}

	if err := s.authorize(ctx, actor, CapCreateContent, nil); err != nil {
		return fail(err)
	}
	if err := s.hooks.executeBeforeContentCreate(ctx, actor, &req); err != nil {
		return fail(err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fail(invalid("title", "title is required"))
	}
	slug := NormalizeSlug(req.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if !ValidSlug(slug) {
		return fail(invalid("slug", "slug %q must match [a-z0-9-]+", slug))
	}

	var content *Content
	var version *ContentVersion
	err := s.repository.WithTx(ctx, func(tx Store) error {
		ct, err := tx.GetContentType(ctx, req.ContentTypeID)
		if err != nil {
			return err
		}
		status := req.Status
		if status == "" {
			status = ct.DefaultStatus
		}
		if err := validateStatus(status); err != nil {
			return err
		}
		if err := checkRequired(ct.Fields, req.Fields, false); err != nil {
			return err
		}

		now := s.now()
		content = &Content{
			ID:            id,
			ContentTypeID: ct.ID,
			Title:         title,
			Slug:          slug,
			CreatedByID:   actor.ID,
			UpdatedByID:   actor.ID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		applyStatus(content, status, now)
		if err := tx.CreateContent(ctx, content); err != nil {
			return err
		}

		values, err := s.writeFields(ctx, tx, actor, content, ct, nil, req.Fields)
		if err != nil {
			return err
		}
		content.Fields = snapshot(ct.Fields, values)
		version, err = s.appendVersion(ctx, tx, actor, content, copyData(content.Fields), NoteInitialVersion)
		return err
	})
	if err != nil {
		return fail(err)
	}

	s.logger.Info("content created",
		zap.Stringer("content_id", content.ID),
		zap.Stringer("content_type_id", content.ContentTypeID),
		zap.Int("version", version.VersionNumber),
		zap.Stringer("actor_id", actor.ID))
	s.afterHook("create", s.hooks.executeAfterContentCreate(ctx, actor, content))
	s.afterHook("create", s.hooks.executeAfterVersionCreate(ctx, actor, version))
	s.emit("content_created", s.eventSink.ContentCreated(ctx, content, version))

	return content, nil
}

func (s *service) GetContent(ctx context.Context, id uuid.UUID, opts ...GetContentOption) (*Content, error) {
	var o getContentOptions
	for _, opt := range opts {
		opt(&o)
	}

	content, err := s.repository.GetContent(ctx, id)
	if err != nil {
		return nil, &ContentError{ContentID: id, Op: "get", Err: err}
	}
	if !o.withFields {
		return content, nil
	}

	ct, err := s.getContentType(ctx, content.ContentTypeID)
	if err != nil {
		return nil, &ContentError{ContentID: id, Op: "get", Err: err}
	}
	values, err := loadValues(ctx, s.repository, ct, id)
	if err != nil {
		return nil, &ContentError{ContentID: id, Op: "get", Err: err}
	}
	content.Fields = snapshot(ct.Fields, values)
	return content, nil
}

func (s *service) ListContent(ctx context.Context, params ListContentParams) ([]*Content, error) {
	if params.Limit < 0 || params.Offset < 0 {
		return nil, invalid("", "limit and offset must not be negative")
	}
	if params.Status != nil {
		if err := validateStatus(*params.Status); err != nil {
			return nil, err
		}
	}
	return s.repository.ListContent(ctx, params)
}

func (s *service) UpdateContent(ctx context.Context, actor Actor, req UpdateContentRequest) (*Content, error) {
	fail := func(err error) (*Content, error) {
		s.hooks.executeOnError(ctx, actor, "update", err)
		return nil, &ContentError{ContentID: req.ID, Op: "update", Err: err}
	}

	current, err := s.repository.GetContent(ctx, req.ID)
	if err != nil {
		return fail(err)
	}
	if err := s.authorize(ctx, actor, CapEditAnyContent, &current.CreatedByID); err != nil {
		return fail(err)
	}
	if err := s.hooks.executeBeforeContentUpdate(ctx, actor, &req); err != nil {
		return fail(err)
	}

	var content *Content
	var version *ContentVersion
	var oldStatus ContentStatus
	err = s.repository.WithTx(ctx, func(tx Store) error {
		var err error
		content, err = tx.LockContent(ctx, req.ID)
		if err != nil {
			return err
		}
		ct, err := tx.GetContentType(ctx, content.ContentTypeID)
		if err != nil {
			return err
		}
		values, err := loadValues(ctx, tx, ct, content.ID)
		if err != nil {
			return err
		}

		now := s.now()
		oldStatus = content.Status
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return invalid("title", "title is required")
			}
			content.Title = title
		}
		if req.Slug != nil {
			slug := NormalizeSlug(*req.Slug)
			if !ValidSlug(slug) {
				return invalid("slug", "slug %q must match [a-z0-9-]+", slug)
			}
			content.Slug = slug
		}
		if req.Status != nil {
			if err := validateStatus(*req.Status); err != nil {
				return err
			}
			applyStatus(content, *req.Status, now)
		}
		if err := checkRequired(ct.Fields, req.Fields, true); err != nil {
			return err
		}

		values, err = s.writeFields(ctx, tx, actor, content, ct, values, req.Fields)
		if err != nil {
			return err
		}
		content.UpdatedByID = actor.ID
		content.UpdatedAt = now
		if err := tx.UpdateContent(ctx, content); err != nil {
			return err
		}

		content.Fields = snapshot(ct.Fields, values)
		version, err = s.appendVersion(ctx, tx, actor, content, copyData(content.Fields),
			fmt.Sprintf("Updated by %s", actorName(actor)))
		return err
	})
	if err != nil {
		return fail(err)
	}

	s.logger.Info("content updated",
		zap.Stringer("content_id", content.ID),
		zap.Int("version", version.VersionNumber),
		zap.Stringer("actor_id", actor.ID))
	s.afterHook("update", s.hooks.executeOnStatusChange(ctx, actor, content.ID, oldStatus, content.Status))
	s.afterHook("update", s.hooks.executeAfterVersionCreate(ctx, actor, version))
	s.emit("content_updated", s.eventSink.ContentUpdated(ctx, content, version))

	return content, nil
}

// DeleteContent removes an entry with its field values and its entire
// version history.
func (s *service) DeleteContent(ctx context.Context, actor Actor, id uuid.UUID) error {
	fail := func(err error) error {
		s.hooks.executeOnError(ctx, actor, "delete", err)
		return &ContentError{ContentID: id, Op: "delete", Err: err}
	}

	current, err := s.repository.GetContent(ctx, id)
	if err != nil {
		return fail(err)
	}
	if err := s.authorize(ctx, actor, CapDeleteContent, &current.CreatedByID); err != nil {
		return fail(err)
	}
	if err := s.hooks.executeBeforeContentDelete(ctx, actor, id); err != nil {
		return fail(err)
	}

	err = s.repository.WithTx(ctx, func(tx Store) error {
		if _, err := tx.LockContent(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteFieldValues(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteVersions(ctx, id); err != nil {
			return err
		}
		return tx.DeleteContent(ctx, id)
	})
	if err != nil {
		return fail(err)
	}

	s.logger.Info("content deleted", zap.Stringer("content_id", id), zap.Stringer("actor_id", actor.ID))
	s.afterHook("delete", s.hooks.executeAfterContentDelete(ctx, actor, id))
	s.emit("content_deleted", s.eventSink.ContentDeleted(ctx, id))

	return nil
}
