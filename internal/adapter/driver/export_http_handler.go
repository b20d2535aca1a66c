package driver

import (
	"mime"
	"net/http"

	"github.com/alorle/m3u-editor/internal/application"
)

const m3uContentType = "audio/mpegurl"

// ExportHTTPHandler renders the session as M3U text.
type ExportHTTPHandler struct {
	service *application.EditorService
}

// NewExportHTTPHandler creates a new HTTP handler for playlist export.
func NewExportHTTPHandler(service *application.EditorService) *ExportHTTPHandler {
	return &ExportHTTPHandler{service: service}
}

// ServeHTTP handles GET /export (download of the export scope) and
// GET /playlist.m3u (every channel, inline).
func (h *ExportHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only GET method is allowed
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.URL.Path == "/playlist.m3u" {
		body, err := h.service.Playlist()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", m3uContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
		return
	}

	exp, err := h.service.Export()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", m3uContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": exp.Filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(exp.Body))
}
