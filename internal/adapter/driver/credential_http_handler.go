package driver

import (
	"net/http"

	"github.com/alorle/m3u-editor/internal/application"
)

// CredentialHTTPHandler exposes provider access details found in the playlist.
type CredentialHTTPHandler struct {
	service *application.EditorService
}

// NewCredentialHTTPHandler creates a new HTTP handler for credentials.
func NewCredentialHTTPHandler(service *application.EditorService) *CredentialHTTPHandler {
	return &CredentialHTTPHandler{service: service}
}

type credentialsResponse struct {
	ID     string `json:"id"`
	Expiry string `json:"expiry"`
	Server string `json:"server"`
}

type idRequest struct {
	ID string `json:"id"`
}

type idResponse struct {
	ID string `json:"id"`
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *CredentialHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	// GET /credentials
	case r.Method == http.MethodGet && r.URL.Path == "/credentials":
		creds, err := h.service.Credentials()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, credentialsResponse{ID: creds.ID, Expiry: creds.Expiry, Server: creds.Server})

	// POST /credentials/replace
	case r.Method == http.MethodPost && r.URL.Path == "/credentials/replace":
		var req idRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		n, err := h.service.ReplaceID(req.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, affectedResponse{Count: n})

	// POST /credentials/generate
	case r.Method == http.MethodPost && r.URL.Path == "/credentials/generate":
		writeJSON(w, http.StatusOK, idResponse{ID: h.service.GenerateID()})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
