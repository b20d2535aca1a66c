package driver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/alorle/m3u-editor/internal/application"
)

// SelectionHTTPHandler handles HTTP requests that change the selection.
type SelectionHTTPHandler struct {
	service *application.EditorService
}

// NewSelectionHTTPHandler creates a new HTTP handler for the selection.
func NewSelectionHTTPHandler(service *application.EditorService) *SelectionHTTPHandler {
	return &SelectionHTTPHandler{service: service}
}

type toggleResponse struct {
	ID       string `json:"id"`
	Selected bool   `json:"selected"`
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *SelectionHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/selection")

	switch {
	// DELETE /selection - clear
	case r.Method == http.MethodDelete && path == "":
		writeJSON(w, http.StatusOK, toSummaryResponse(h.service.ClearSelection()))

	// POST /selection/all - select the filtered view
	case r.Method == http.MethodPost && path == "/all":
		writeJSON(w, http.StatusOK, toSummaryResponse(h.service.SelectAllVisible()))

	// DELETE /selection/channels - delete selected channels
	case r.Method == http.MethodDelete && path == "/channels":
		n, err := h.service.DeleteSelected()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, affectedResponse{Count: n})

	// POST /selection/{id}/toggle
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/toggle"):
		h.handleToggle(w, strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/toggle"))

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SelectionHTTPHandler) handleToggle(w http.ResponseWriter, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid channel id")
		return
	}

	selected, err := h.service.ToggleSelection(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{ID: id.String(), Selected: selected})
}
