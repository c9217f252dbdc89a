// Package api exposes the cms service over HTTP using chi.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"go.uber.org/zap"
)

// Handler serves content types, content entries and their versions
type Handler struct {
	service   simplecms.Service
	tokenAuth *jwtauth.JWTAuth
	logger    *zap.Logger
}

// NewHandler creates a handler. Mutating routes require a bearer token
// verified with tokenAuth.
func NewHandler(service simplecms.Service, tokenAuth *jwtauth.JWTAuth, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, tokenAuth: tokenAuth, logger: logger}
}

// Routes returns the API routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	if h.tokenAuth != nil {
		r.Use(jwtauth.Verifier(h.tokenAuth))
	}

	r.Route("/content-types", func(r chi.Router) {
		r.Get("/", h.ListContentTypes)
		r.Get("/slug/{slug}", h.GetContentTypeBySlug)
		r.Get("/{id}", h.GetContentType)

		r.Group(func(r chi.Router) {
			r.Use(RequireActor)
			r.Post("/", h.DefineContentType)
			r.Patch("/{id}", h.UpdateContentType)
			r.Delete("/{id}", h.DeleteContentType)
			r.Post("/{id}/fields", h.AddField)
			r.Patch("/{id}/fields/{fieldID}", h.UpdateField)
			r.Delete("/{id}/fields/{fieldID}", h.RemoveField)
		})
	})

	r.Route("/content", func(r chi.Router) {
		r.Get("/", h.ListContent)
		r.Get("/{id}", h.GetContent)
		r.Get("/{id}/versions", h.ListVersions)
		r.Get("/{id}/versions/compare", h.CompareVersions)
		r.Get("/{id}/versions/{version}", h.GetVersion)

		r.Group(func(r chi.Router) {
			r.Use(RequireActor)
			r.Post("/", h.CreateContent)
			r.Patch("/{id}", h.UpdateContent)
			r.Delete("/{id}", h.DeleteContent)
			r.Post("/{id}/versions/{version}/publish", h.PublishVersion)
			r.Post("/{id}/versions/{version}/restore", h.RestoreVersion)
		})
	})

	return r
}

func (h *Handler) actor(r *http.Request) simplecms.Actor {
	actor, _ := ActorFromContext(r.Context())
	return actor
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_id", "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n < 1 {
		respondError(w, r, http.StatusBadRequest, "invalid_version", "Invalid "+name)
		return 0, false
	}
	return n, true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_body", err.Error())
		return false
	}
	return true
}
