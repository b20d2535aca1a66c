package driver

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// NewDocumentationHandler serves the OpenAPI document as JSON.
func NewDocumentationHandler(swagger *openapi3.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, swagger)
	})
}
