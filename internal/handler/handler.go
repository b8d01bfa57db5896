package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/GustavoCaso/spendsort/internal/category"
	"github.com/GustavoCaso/spendsort/internal/correction"
	importutil "github.com/GustavoCaso/spendsort/internal/import"
	"github.com/GustavoCaso/spendsort/internal/logger"
	"github.com/GustavoCaso/spendsort/internal/session"
)

type Handler struct {
	HTTPHandler http.Handler
	session     *session.Session
	uploads     *session.Uploads
	logger      *logger.Logger
	// corrections to the same upload must not interleave
	correctMu sync.Mutex
}

func New(s *session.Session, uploads *session.Uploads, logger *logger.Logger) *Handler {
	allowEmbedding := os.Getenv("SPENDSORT_ALLOW_EMBEDDING") == "true"

	handler := &Handler{
		session: s,
		uploads: uploads,
		logger:  logger.With("component", "api"),
	}

	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", handler.listCategories)
		r.Post("/categories", handler.createCategory)
		r.Post("/categories/{name}/keywords", handler.addKeyword)

		r.Post("/uploads", handler.createUpload)
		r.Get("/uploads/{id}", handler.getUpload)
		r.Delete("/uploads/{id}", handler.deleteUpload)
		r.Post("/uploads/{id}/corrections", handler.correctUpload)
		r.Get("/uploads/{id}/summary", handler.uploadSummary)
		r.Get("/uploads/{id}/export", handler.exportUpload)
	})

	// wrap entire router with middlewares
	var wrappedHandler http.Handler = loggingMiddleware(handler.logger, r)
	if !allowEmbedding {
		wrappedHandler = xFrameDenyHeaderMiddleware(wrappedHandler)
	}

	handler.HTTPHandler = wrappedHandler

	return handler
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(value); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors to HTTP status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		parseErr       *importutil.ParseError
		unknownErr     *category.UnknownCategoryError
		persistenceErr *category.PersistenceError
	)

	status := http.StatusInternalServerError

	switch {
	case errors.As(err, &parseErr),
		errors.Is(err, category.ErrEmptyCategoryName),
		errors.Is(err, correction.ErrInvalidIndex):
		status = http.StatusBadRequest
	case errors.As(err, &unknownErr):
		status = http.StatusNotFound
	case errors.As(err, &persistenceErr):
		h.logger.Error("Failed to persist categories", "error", err)
	default:
		h.logger.Error("Unexpected error", "error", err)
	}

	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
