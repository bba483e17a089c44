package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/quizbook/internal/questionservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events behind the same auth.
func NewRouter(svc *questionservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/questions", h.ListQuestions)
	r.Get("/questions/{slug}", h.GetQuestion)
	r.Get("/search", h.Search)

	r.Get("/views", h.ListViews)
	r.Get("/views/{name}", h.RenderView)
	r.Post("/generate", h.Generate)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
