package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

type keywordRequest struct {
	Keyword string `json:"keyword"`
}

type keywordResponse struct {
	Category string `json:"category"`
	Keyword  string `json:"keyword"`
	Added    bool   `json:"added"`
}

func (h *Handler) listCategories(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.Store().Snapshot())
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request")
		return
	}

	created, err := h.session.Store().AddCategory(req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		h.logger.Info("Category created", "name", strings.TrimSpace(req.Name))
	}

	h.writeJSON(w, status, categoryResponse{Name: strings.TrimSpace(req.Name), Created: created})
}

func (h *Handler) addKeyword(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	var req keywordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request")
		return
	}

	added, err := h.session.Store().AddKeyword(name, req.Keyword)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, keywordResponse{
		Category: name,
		Keyword:  strings.TrimSpace(req.Keyword),
		Added:    added,
	})
}

// pathParam returns the decoded value of a route parameter. chi routes on the
// raw path when the request escapes characters such as "/", so the parameter
// is still escaped in that case.
func pathParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}

	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}
