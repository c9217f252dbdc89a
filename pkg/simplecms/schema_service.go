package simplecms

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *service) newField(contentTypeID uuid.UUID, spec FieldSpec, order int) *FieldDefinition {
	now := s.now()
	settings := make(map[string]interface{}, len(spec.Settings))
	for k, v := range spec.Settings {
		settings[k] = v
	}
	return &FieldDefinition{
		ID:            s.newID(),
		ContentTypeID: contentTypeID,
		Key:           spec.Key,
		Name:          strings.TrimSpace(spec.Name),
		Type:          spec.Type,
		Required:      spec.Required,
		DisplayOrder:  order,
		Settings:      settings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *service) DefineContentType(ctx context.Context, actor Actor, req DefineContentTypeRequest) (*ContentType, error) {
	id := s.newID()
	fail := func(err error) (*ContentType, error) {
		return nil, &SchemaError{ContentTypeID: id, Op: "define", Err: err}
	}

	if err := s.authorize(ctx, actor, CapManageContentTypes, nil); err != nil {
		return fail(err)
	}

	name := strings.TrimSpace(req.Name)
	slug := NormalizeSlug(req.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	status := req.DefaultStatus
	if status == "" {
		status = ContentStatusDraft
	}
	if err := validateContentTypeFields(name, slug, status); err != nil {
		return fail(err)
	}
	if err := validateFieldSpecs(req.Fields); err != nil {
		return fail(err)
	}

	now := s.now()
	ct := &ContentType{
		ID:            id,
		Name:          name,
		Slug:          slug,
		Description:   req.Description,
		IsListable:    req.IsListable,
		DefaultStatus: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i, spec := range req.Fields {
		order := spec.DisplayOrder
		if order == 0 {
			order = i
		}
		ct.Fields = append(ct.Fields, s.newField(id, spec, order))
	}
	ct.Fields = SortFields(ct.Fields)

	err := s.repository.WithTx(ctx, func(tx Store) error {
		return tx.CreateContentType(ctx, ct)
	})
	if err != nil {
		return fail(err)
	}

	s.logger.Info("content type defined",
		zap.Stringer("content_type_id", ct.ID),
		zap.String("slug", ct.Slug),
		zap.Stringer("actor_id", actor.ID))
	s.emit("content_type_saved", s.eventSink.ContentTypeSaved(ctx, ct))

	return ct, nil
}

func (s *service) GetContentType(ctx context.Context, id uuid.UUID) (*ContentType, error) {
	ct, err := s.getContentType(ctx, id)
	if err != nil {
		return nil, &SchemaError{ContentTypeID: id, Op: "get", Err: err}
	}
	return ct, nil
}

func (s *service) GetContentTypeBySlug(ctx context.Context, slug string) (*ContentType, error) {
	ct, err := s.repository.GetContentTypeBySlug(ctx, NormalizeSlug(slug))
	if err != nil {
		return nil, &SchemaError{Op: "get_by_slug", Err: err}
	}
	s.cacheSet(ctx, ct)
	return ct, nil
}

func (s *service) ListContentTypes(ctx context.Context) ([]*ContentType, error) {
	return s.repository.ListContentTypes(ctx)
}

func (s *service) UpdateContentType(ctx context.Context, actor Actor, req UpdateContentTypeRequest) (*ContentType, error) {
	fail := func(err error) (*ContentType, error) {
		return nil, &SchemaError{ContentTypeID: req.ID, Op: "update", Err: err}
	}

	if err := s.authorize(ctx, actor, CapManageContentTypes, nil); err != nil {
		return fail(err)
	}

	var ct *ContentType
	err := s.repository.WithTx(ctx, func(tx Store) error {
		var err error
		ct, err = tx.GetContentType(ctx, req.ID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			ct.Name = strings.TrimSpace(*req.Name)
		}
		if req.Slug != nil {
			ct.Slug = NormalizeSlug(*req.Slug)
		}
		if req.Description != nil {
			ct.Description = *req.Description
		}
		if req.IsListable != nil {
			ct.IsListable = *req.IsListable
		}
		if req.DefaultStatus != nil {
			ct.DefaultStatus = *req.DefaultStatus
		}
		if err := validateContentTypeFields(ct.Name, ct.Slug, ct.DefaultStatus); err != nil {
			return err
		}
		ct.UpdatedAt = s.now()
		return tx.UpdateContentType(ctx, ct)
	})
	if err != nil {
		return fail(err)
	}

	s.invalidate(ctx, ct.ID)
	s.logger.Info("content type updated", zap.Stringer("content_type_id", ct.ID), zap.Stringer("actor_id", actor.ID))
	s.emit("content_type_saved", s.eventSink.ContentTypeSaved(ctx, ct))

	return ct, nil
}

func (s *service) DeleteContentType(ctx context.Context, actor Actor, id uuid.UUID) error {
	fail := func(err error) error {
		return &SchemaError{ContentTypeID: id, Op: "delete", Err: err}
	}

	if err := s.authorize(ctx, actor, CapManageContentTypes, nil); err != nil {
		return fail(err)
	}

	err := s.repository.WithTx(ctx, func(tx Store) error {
		if _, err := tx.GetContentType(ctx, id); err != nil {
			return err
		}
		count, err := tx.CountContentByType(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return &DependentContentExistsError{ContentTypeID: id, Count: count}
		}
		return tx.DeleteContentType(ctx, id)
	})
	if err != nil {
		return fail(err)
	}

	s.invalidate(ctx, id)
	s.logger.Info("content type deleted", zap.Stringer("content_type_id", id), zap.Stringer("actor_id", actor.ID))
	s.emit("content_type_deleted", s.eventSink.ContentTypeDeleted(ctx, id))

	return nil
}

func (s *service) AddField(ctx context.Context, actor Actor, contentTypeID uuid.UUID, spec FieldSpec) (*FieldDefinition, error) {
	fail := func(err error) (*FieldDefinition, error) {
		return nil, &SchemaError{ContentTypeID: contentTypeID, Op: "add_field", Err: err}
	}

	if err := s.authorize(ctx, actor, CapManageContentTypes, nil); err != nil {
		return fail(err)
	}
	if err := validateFieldSpec(spec); err != nil {
		return fail(err)
	}

	var field *FieldDefinition
	var ct *ContentType
	err := s.repository.WithTx(ctx, func(tx Store) error {
		var err error
		ct, err = tx.GetContentType(ctx, contentTypeID)
		if err != nil {
			return err
		}
		if _, exists := ct.Field(spec.Key); exists {
			return invalid(spec.Key, "duplicate field key")
		}
		order := spec.DisplayOrder
		if order == 0 {
			for _, f := range ct.Fields {
				if f.DisplayOrder >= order {
					order = f.DisplayOrder + 1
				}
			}
		}
		field = s.newField(contentTypeID, spec, order)
		return tx.CreateField(ctx, field)
	})
	if err != nil {
		return fail(err)
	}

	ct.Fields = SortFields(append(ct.Fields, field))
	s.invalidate(ctx, contentTypeID)
	s.logger.Info("field added",
		zap.Stringer("content_type_id", contentTypeID),
		zap.String("key", field.Key),
		zap.String("type", string(field.Type)))
	s.emit("content_type_saved", s.eventSink.ContentTypeSaved(ctx, ct))

	return field, nil
}

func (s *service) UpdateField(ctx context.Context, actor Actor, req UpdateFieldRequest) (*FieldDefinition, error) {
	fail := func(err error) (*FieldDefinition, error) {
		return nil, &SchemaError{ContentTypeID: req.ContentTypeID, Op: "update_field", Err: err}
	}

	if err := s.authorize(ctx, actor, CapManageContentTypes, nil); err != nil {
		return fail(err)
	}

	var field *FieldDefinition
	var ct *ContentType
	err := s.repository.WithTx(ctx, func(tx Store) error {
		var err error
		ct, err = tx.GetContentType(ctx, req.ContentTypeID)
		if err != nil {
			return err
		}
		for _, f := range ct.Fields {
			if f.ID == req.FieldID {
				field = f
				break
			}
		}
		if field == nil {
			return ErrFieldNotFound
		}
		if req.Name != nil {
			field.Name = strings.TrimSpace(*req.Name)
		}
		if req.Type != nil {
			if strings.TrimSpace(string(*req.Type)) == "" {
				return invalid(field.Key, "field type is required")
			}
			field.Type = *req.Type
		}
		if req.Required != nil {
			field.Required = *req.Required
		}
		if req.DisplayOrder != nil {
			field.DisplayOrder = *req.DisplayOrder
		}
		if req.Settings != nil {
			field.Settings = req.Settings
		}
		field.UpdatedAt = s.now()
		return tx.UpdateField(ctx, field)
	})
	if err != nil {
		return fail(err)
	}

	s.invalidate(ctx, req.ContentTypeID)
	s.logger.Info("field updated", zap.Stringer("content_type_id", req.ContentTypeID), zap.String("key", field.Key))
	s.emit("content_type_saved", s.eventSink.ContentTypeSaved(ctx, ct))

	return field, nil
}

// RemoveField deletes a field definition and its stored values. Existing
// version snapshots keep the field's data.
func (s *service) RemoveField(ctx context.Context, actor Actor, contentTypeID, fieldID uuid.UUID) error {
	fail := func(err error) error {
		return &SchemaError{ContentTypeID: contentTypeID, Op: "remove_field", Err: err}
	}

	if err := s.authorize(ctx, actor, CapManageContentTypes, nil); err != nil {
		return fail(err)
	}

	var ct *ContentType
	err := s.repository.WithTx(ctx, func(tx Store) error {
		var err error
		ct, err = tx.GetContentType(ctx, contentTypeID)
		if err != nil {
			return err
		}
		found := false
		remaining := ct.Fields[:0:0]
		for _, f := range ct.Fields {
			if f.ID == fieldID {
				found = true
				continue
			}
			remaining = append(remaining, f)
		}
		if !found {
			return ErrFieldNotFound
		}
		ct.Fields = remaining
		return tx.DeleteField(ctx, fieldID)
	})
	if err != nil {
		return fail(err)
	}

	s.invalidate(ctx, contentTypeID)
	s.logger.Info("field removed", zap.Stringer("content_type_id", contentTypeID), zap.Stringer("field_id", fieldID))
	s.emit("content_type_saved", s.eventSink.ContentTypeSaved(ctx, ct))

	return nil
}
