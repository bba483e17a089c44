package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/quizbook/internal/apperr"
	"github.com/starford/quizbook/internal/index"
	"github.com/starford/quizbook/internal/models"
	"github.com/starford/quizbook/internal/questionservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *questionservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *questionservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListQuestions handles GET /questions?level=&featured=&limit=&offset=.
func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	var f index.Filter
	if lvl := r.URL.Query().Get("level"); lvl != "" {
		f.Level = models.Level(lvl)
		if !validLevel(f.Level) {
			writeJSON(w, http.StatusBadRequest, errorBody("unknown level"))
			return
		}
	}
	featured, ok := queryBool(r, "featured")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("featured must be a boolean"))
		return
	}
	f.Featured = featured
	limit, okL := queryInt(r, "limit")
	offset, okO := queryInt(r, "offset")
	if !okL || !okO {
		writeJSON(w, http.StatusBadRequest, errorBody("limit and offset must be non-negative integers"))
		return
	}
	f.Limit, f.Offset = limit, offset

	rows, total, err := h.svc.ListQuestions(r.Context(), f)
	if err != nil {
		slog.Error("api: list questions failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, QuestionListResponse{Questions: rows, Total: total})
}

// GetQuestion handles GET /questions/{slug}.
func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	q, err := h.svc.GetQuestion(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("api: get question failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Search handles GET /search?q=&limit=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("limit must be a non-negative integer"))
		return
	}
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("api: search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// ListViews handles GET /views.
func (h *Handler) ListViews(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ViewListResponse{Views: h.svc.Views()})
}

// RenderView handles GET /views/{name}. The document is not modified.
func (h *Handler) RenderView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	out, err := h.svc.RenderView(r.Context(), name)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, ViewResponse{Name: name, Output: out})
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("unknown view"))
	case apperr.IsFatal(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
	default:
		slog.Error("api: render view failed", slog.String("view", name), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// Generate handles POST /generate.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Generate(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, GenerateResponse{Report: report})
	case apperr.IsFatal(err):
		// Broken content or document template; nothing was written.
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
	default:
		slog.Error("api: generate failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func validLevel(l models.Level) bool {
	for _, v := range models.Levels {
		if v == l {
			return true
		}
	}
	return false
}
