package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Response is the success envelope
type Response struct {
	Status     string      `json:"status"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes a page of a list response
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Status string    `json:"status"`
	Error  ErrorBody `json:"error"`
}

// ErrorBody carries a machine readable code and a message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, Response{Status: "success", Data: data})
}

func respondList(w http.ResponseWriter, r *http.Request, data interface{}, page Pagination) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, Response{Status: "success", Data: data, Pagination: &page})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Status: "error", Error: ErrorBody{Code: code, Message: message}})
}

// statusForError maps service errors to HTTP status codes
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, simplecms.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, simplecms.ErrPermissionDenied):
		return http.StatusForbidden, "permission_denied"
	case errors.Is(err, simplecms.ErrSchemaNotFound):
		return http.StatusNotFound, "content_type_not_found"
	case errors.Is(err, simplecms.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, simplecms.ErrDuplicateSchema):
		return http.StatusConflict, "duplicate_content_type"
	case errors.Is(err, simplecms.ErrDuplicateSlug):
		return http.StatusConflict, "duplicate_slug"
	case errors.Is(err, simplecms.ErrConcurrentVersionConflict):
		return http.StatusConflict, "version_conflict"
	case errors.Is(err, simplecms.ErrDependentContentExists):
		return http.StatusConflict, "dependent_content_exists"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusForError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", requestFields(r, err)...)
		respondError(w, r, status, code, "An internal server error occurred")
		return
	}

	body := ErrorBody{Code: code, Message: err.Error()}
	var ve *simplecms.ValidationError
	if errors.As(err, &ve) {
		body.Field = ve.Field
		body.Message = ve.Message
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Status: "error", Error: body})
}
