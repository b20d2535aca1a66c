package driver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alorle/m3u-editor/internal/application"
	"github.com/alorle/m3u-editor/internal/selection"
)

// SessionHTTPHandler handles import, summary and filter requests.
type SessionHTTPHandler struct {
	service  *application.EditorService
	maxBytes int64
}

// NewSessionHTTPHandler creates a new HTTP handler for the editing session.
// Import bodies larger than maxBytes are rejected.
func NewSessionHTTPHandler(service *application.EditorService, maxBytes int64) *SessionHTTPHandler {
	return &SessionHTTPHandler{service: service, maxBytes: maxBytes}
}

type importResponse struct {
	summaryResponse
	Dropped int `json:"dropped"`
}

type filterRequest struct {
	Category string `json:"category"`
	Search   string `json:"search"`
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *SessionHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/session")

	switch {
	case r.Method == http.MethodGet && path == "":
		writeJSON(w, http.StatusOK, toSummaryResponse(h.service.Summary()))
	case r.Method == http.MethodPost && path == "/import":
		h.handleImport(w, r)
	case r.Method == http.MethodPut && path == "/filter":
		h.handleFilter(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleImport handles POST /session/import
func (h *SessionHTTPHandler) handleImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.maxBytes)

	res, err := h.service.Import(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "playlist too large")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		summaryResponse: toSummaryResponse(res.Summary),
		Dropped:         res.Stats.Dropped,
	})
}

// handleFilter handles PUT /session/filter
func (h *SessionHTTPHandler) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sum := h.service.SetFilter(selection.Filter{Category: req.Category, Search: req.Search})
	writeJSON(w, http.StatusOK, toSummaryResponse(sum))
}
