package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CreateContentRequest is the request body for creating a content entry.
// The type is given by id or by slug.
type CreateContentRequest struct {
	ContentTypeID   string                 `json:"content_type_id"`
	ContentTypeSlug string                 `json:"content_type"`
	Title           string                 `json:"title"`
	Slug            string                 `json:"slug"`
	Status          string                 `json:"status"`
	Fields          map[string]interface{} `json:"fields"`
}

// UpdateContentRequest is the request body for patching a content entry.
// A field set to null is cleared.
type UpdateContentRequest struct {
	Title  *string                `json:"title"`
	Slug   *string                `json:"slug"`
	Status *string                `json:"status"`
	Fields map[string]interface{} `json:"fields"`
}

// ListContent lists entries filtered by ?type= (id or slug) and ?status=
func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := simplecms.ListContentParams{Limit: defaultPageSize}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, r, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		params.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, r, http.StatusBadRequest, "invalid_offset", "offset must be a non-negative integer")
			return
		}
		params.Offset = n
	}
	if v := q.Get("status"); v != "" {
		params.Status = simplecms.StatusPtr(simplecms.ContentStatus(v))
	}
	if v := q.Get("type"); v != "" {
		typeID, err := h.resolveType(r, v)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		params.ContentTypeID = &typeID
	}

	contents, err := h.service.ListContent(r.Context(), params)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if contents == nil {
		contents = []*simplecms.Content{}
	}
	respondList(w, r, contents, Pagination{Limit: params.Limit, Offset: params.Offset, Count: len(contents)})
}

// resolveType accepts a content type id or slug
func (h *Handler) resolveType(r *http.Request, v string) (uuid.UUID, error) {
	if id, err := uuid.Parse(v); err == nil {
		return id, nil
	}
	ct, err := h.service.GetContentTypeBySlug(r.Context(), v)
	if err != nil {
		return uuid.Nil, err
	}
	return ct.ID, nil
}

// GetContent returns an entry with its resolved fields. Pass ?fields=false
// to omit them.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var opts []simplecms.GetContentOption
	if r.URL.Query().Get("fields") != "false" {
		opts = append(opts, simplecms.WithFields())
	}
	content, err := h.service.GetContent(r.Context(), id, opts...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, content)
}

// CreateContent creates an entry and its initial version
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	if !decode(w, r, &req) {
		return
	}

	create := simplecms.CreateContentRequest{
		Title:  req.Title,
		Slug:   req.Slug,
		Status: simplecms.ContentStatus(req.Status),
		Fields: req.Fields,
	}

	var (
		content *simplecms.Content
		err     error
	)
	switch {
	case req.ContentTypeID != "":
		typeID, perr := uuid.Parse(req.ContentTypeID)
		if perr != nil {
			respondError(w, r, http.StatusBadRequest, "invalid_id", "Invalid content_type_id")
			return
		}
		create.ContentTypeID = typeID
		content, err = h.service.CreateContent(r.Context(), h.actor(r), create)
	case req.ContentTypeSlug != "":
		content, err = simplecms.CreateContentOfType(r.Context(), h.service, h.actor(r), req.ContentTypeSlug, create)
	default:
		respondError(w, r, http.StatusBadRequest, "validation_error", "content_type_id or content_type is required")
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, content)
}

// UpdateContent patches an entry and records a new version
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req UpdateContentRequest
	if !decode(w, r, &req) {
		return
	}

	update := simplecms.UpdateContentRequest{
		ID:     id,
		Title:  req.Title,
		Slug:   req.Slug,
		Fields: req.Fields,
	}
	if req.Status != nil {
		update.Status = simplecms.StatusPtr(simplecms.ContentStatus(*req.Status))
	}

	content, err := h.service.UpdateContent(r.Context(), h.actor(r), update)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, content)
}

// DeleteContent deletes an entry with its history
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteContent(r.Context(), h.actor(r), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
