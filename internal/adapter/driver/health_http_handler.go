package driver

import (
	"net/http"

	"github.com/alorle/m3u-editor/internal/application"
)

// HealthHTTPHandler handles HTTP requests for health checks.
type HealthHTTPHandler struct {
	service *application.HealthService
}

// NewHealthHTTPHandler creates a new HTTP handler for health checks.
func NewHealthHTTPHandler(service *application.HealthService) *HealthHTTPHandler {
	return &HealthHTTPHandler{service: service}
}

type componentResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// healthResponse represents the JSON response for health check endpoint.
type healthResponse struct {
	Status  string            `json:"status"`
	Storage componentResponse `json:"storage"`
}

// ServeHTTP handles GET /health
func (h *HealthHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only GET method is allowed
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := h.service.Check(r.Context())

	resp := healthResponse{
		Status: status.Status,
		Storage: componentResponse{
			Status: status.Storage.Status,
			Error:  status.Storage.Error,
		},
	}

	httpStatus := http.StatusOK
	if status.Status != "ok" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, resp)
}
