package driver

import (
	"net/http"

	"github.com/alorle/m3u-editor/internal/application"
)

// BulkHTTPHandler applies one edit to every selected channel.
type BulkHTTPHandler struct {
	service *application.EditorService
}

// NewBulkHTTPHandler creates a new HTTP handler for bulk edits.
func NewBulkHTTPHandler(service *application.EditorService) *BulkHTTPHandler {
	return &BulkHTTPHandler{service: service}
}

type prefixRequest struct {
	Prefix string `json:"prefix"`
}

// ServeHTTP handles POST /bulk/field and POST /bulk/url-prefix
func (h *BulkHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var (
		n   int
		err error
	)
	switch r.URL.Path {
	case "/bulk/field":
		var req fieldRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		n, err = h.service.ApplyToSelected(req.Field, req.Value)
	case "/bulk/url-prefix":
		var req prefixRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		n, err = h.service.ReplaceURLPrefix(req.Prefix)
	default:
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, affectedResponse{Count: n})
}
