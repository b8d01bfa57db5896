package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GustavoCaso/spendsort/internal/correction"
	"github.com/GustavoCaso/spendsort/internal/export"
	"github.com/GustavoCaso/spendsort/internal/session"
)

const (
	maxMemory = 32 << 20 // 32MB
)

type correctionsRequest struct {
	Corrections []correction.Correction `json:"corrections"`
}

type correctionsResponse struct {
	Upload  *session.Upload     `json:"upload"`
	Learned map[string][]string `json:"learned"`
}

func (h *Handler) createUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		h.badRequest(w, "Error parsing form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errorMessage := "Error retrieving the file"
		if errors.Is(err, http.ErrMissingFile) {
			errorMessage = "No file submitted"
		}
		h.badRequest(w, errorMessage)
		return
	}
	defer file.Close()

	upload, err := h.session.Ingest(header.Filename, file)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.uploads.Add(upload)

	h.writeJSON(w, http.StatusCreated, upload)
}

func (h *Handler) lookupUpload(w http.ResponseWriter, r *http.Request) (*session.Upload, bool) {
	upload, ok := h.uploads.Get(chi.URLParam(r, "id"))
	if !ok {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "upload not found"})
		return nil, false
	}
	return upload, true
}

func (h *Handler) getUpload(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.lookupUpload(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, upload)
}

func (h *Handler) deleteUpload(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.lookupUpload(w, r)
	if !ok {
		return
	}

	h.uploads.Delete(upload.ID)
	h.logger.Info("Upload discarded", "id", upload.ID, "filename", upload.Filename)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) correctUpload(w http.ResponseWriter, r *http.Request) {
	var req correctionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request")
		return
	}

	h.correctMu.Lock()
	defer h.correctMu.Unlock()

	upload, ok := h.lookupUpload(w, r)
	if !ok {
		return
	}

	corrected, result, err := h.session.Correct(upload, req.Corrections)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.uploads.Replace(corrected)

	h.writeJSON(w, http.StatusOK, correctionsResponse{
		Upload:  corrected,
		Learned: result.Learned,
	})
}

func (h *Handler) uploadSummary(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.lookupUpload(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, h.session.Report(upload))
}

var exportContentTypes = map[export.Format]string{
	export.FormatCSV:  "text/csv",
	export.FormatJSON: "application/json",
}

func (h *Handler) exportUpload(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(export.FormatCSV)
	}

	format, err := export.ParseFormat(name)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	upload, ok := h.lookupUpload(w, r)
	if !ok {
		return
	}

	base := strings.TrimSuffix(filepath.Base(upload.Filename), filepath.Ext(upload.Filename))
	w.Header().Set("Content-Type", exportContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+"-categorized."+string(format)))

	if err := export.Write(w, format, h.session.Options().DateFormat, upload.Transactions); err != nil {
		h.logger.Error("Failed to export upload", "id", upload.ID, "error", err)
	}
}
