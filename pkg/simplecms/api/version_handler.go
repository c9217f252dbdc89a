package api

import (
	"net/http"
	"strconv"
)

// ListVersions lists the versions of an entry, oldest first
func (h *Handler) ListVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	versions, err := h.service.ListVersions(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, versions)
}

// GetVersion returns one version of an entry
func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	n, ok := intParam(w, r, "version")
	if !ok {
		return
	}
	v, err := h.service.GetVersion(r.Context(), id, n)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, v)
}

// PublishVersion publishes a version of an entry
func (h *Handler) PublishVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	n, ok := intParam(w, r, "version")
	if !ok {
		return
	}
	content, err := h.service.PublishVersion(r.Context(), h.actor(r), id, n)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, content)
}

// RestoreVersion reapplies a version's field values to an entry
func (h *Handler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	n, ok := intParam(w, r, "version")
	if !ok {
		return
	}
	content, err := h.service.RestoreVersion(r.Context(), h.actor(r), id, n)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, content)
}

// CompareVersions diffs two versions given as ?a= and ?b=
func (h *Handler) CompareVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	a, errA := strconv.Atoi(r.URL.Query().Get("a"))
	b, errB := strconv.Atoi(r.URL.Query().Get("b"))
	if errA != nil || errB != nil || a < 1 || b < 1 {
		respondError(w, r, http.StatusBadRequest, "invalid_version", "query parameters a and b must be version numbers")
		return
	}
	cmp, err := h.service.CompareVersions(r.Context(), id, a, b)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, cmp)
}
