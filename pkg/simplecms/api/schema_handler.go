package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// FieldSpecRequest describes a field in a define or add request
type FieldSpecRequest struct {
	Key          string                 `json:"key"`
	Name         string                 `json:"name"`
	Type         string                 `json:"type"`
	Required     bool                   `json:"required"`
	DisplayOrder int                    `json:"display_order"`
	Settings     map[string]interface{} `json:"settings,omitempty"`
}

func (f FieldSpecRequest) spec() simplecms.FieldSpec {
	return simplecms.FieldSpec{
		Key:          f.Key,
		Name:         f.Name,
		Type:         simplecms.FieldType(f.Type),
		Required:     f.Required,
		DisplayOrder: f.DisplayOrder,
		Settings:     f.Settings,
	}
}

// DefineContentTypeRequest is the request body for defining a content type
type DefineContentTypeRequest struct {
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	IsListable    *bool              `json:"is_listable"`
	DefaultStatus string             `json:"default_status"`
	Fields        []FieldSpecRequest `json:"fields"`
}

// UpdateContentTypeRequest is the request body for updating a content type
type UpdateContentTypeRequest struct {
	Name          *string `json:"name"`
	Slug          *string `json:"slug"`
	Description   *string `json:"description"`
	IsListable    *bool   `json:"is_listable"`
	DefaultStatus *string `json:"default_status"`
}

// UpdateFieldRequest is the request body for updating a field definition
type UpdateFieldRequest struct {
	Name         *string                `json:"name"`
	Type         *string                `json:"type"`
	Required     *bool                  `json:"required"`
	DisplayOrder *int                   `json:"display_order"`
	Settings     map[string]interface{} `json:"settings"`
}

// ListContentTypes lists all content types
func (h *Handler) ListContentTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListContentTypes(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if types == nil {
		types = []*simplecms.ContentType{}
	}
	respond(w, r, http.StatusOK, types)
}

// GetContentType returns a content type by id
func (h *Handler) GetContentType(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	ct, err := h.service.GetContentType(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, ct)
}

// GetContentTypeBySlug returns a content type by slug
func (h *Handler) GetContentTypeBySlug(w http.ResponseWriter, r *http.Request) {
	ct, err := h.service.GetContentTypeBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, ct)
}

// DefineContentType creates a content type with its fields
func (h *Handler) DefineContentType(w http.ResponseWriter, r *http.Request) {
	var req DefineContentTypeRequest
	if !decode(w, r, &req) {
		return
	}

	listable := true
	if req.IsListable != nil {
		listable = *req.IsListable
	}
	define := simplecms.DefineContentTypeRequest{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		IsListable:    listable,
		DefaultStatus: simplecms.ContentStatus(req.DefaultStatus),
	}
	for _, f := range req.Fields {
		define.Fields = append(define.Fields, f.spec())
	}

	ct, err := h.service.DefineContentType(r.Context(), h.actor(r), define)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, ct)
}

// UpdateContentType patches content type attributes
func (h *Handler) UpdateContentType(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req UpdateContentTypeRequest
	if !decode(w, r, &req) {
		return
	}

	update := simplecms.UpdateContentTypeRequest{
		ID:          id,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsListable:  req.IsListable,
	}
	if req.DefaultStatus != nil {
		update.DefaultStatus = simplecms.StatusPtr(simplecms.ContentStatus(*req.DefaultStatus))
	}

	ct, err := h.service.UpdateContentType(r.Context(), h.actor(r), update)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, ct)
}

// DeleteContentType deletes a content type without entries
func (h *Handler) DeleteContentType(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteContentType(r.Context(), h.actor(r), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddField adds a field definition to a content type
func (h *Handler) AddField(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req FieldSpecRequest
	if !decode(w, r, &req) {
		return
	}
	field, err := h.service.AddField(r.Context(), h.actor(r), id, req.spec())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, field)
}

// UpdateField patches a field definition
func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	fieldID, ok := uuidParam(w, r, "fieldID")
	if !ok {
		return
	}
	var req UpdateFieldRequest
	if !decode(w, r, &req) {
		return
	}

	update := simplecms.UpdateFieldRequest{
		ContentTypeID: id,
		FieldID:       fieldID,
		Name:          req.Name,
		Required:      req.Required,
		DisplayOrder:  req.DisplayOrder,
		Settings:      req.Settings,
	}
	if req.Type != nil {
		t := simplecms.FieldType(*req.Type)
		update.Type = &t
	}

	field, err := h.service.UpdateField(r.Context(), h.actor(r), update)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, field)
}

// RemoveField deletes a field definition and its stored values
func (h *Handler) RemoveField(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	fieldID, ok := uuidParam(w, r, "fieldID")
	if !ok {
		return
	}
	if err := h.service.RemoveField(r.Context(), h.actor(r), id, fieldID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
