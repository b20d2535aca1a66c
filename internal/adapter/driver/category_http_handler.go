package driver

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/alorle/m3u-editor/internal/application"
)

// CategoryHTTPHandler handles HTTP requests for channel categories.
type CategoryHTTPHandler struct {
	service *application.EditorService
}

// NewCategoryHTTPHandler creates a new HTTP handler for categories.
func NewCategoryHTTPHandler(service *application.EditorService) *CategoryHTTPHandler {
	return &CategoryHTTPHandler{service: service}
}

type categoryResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// categoryListResponse carries the filter options and the group sizes.
type categoryListResponse struct {
	Names  []string           `json:"names"`
	Counts []categoryResponse `json:"counts"`
}

type renameRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *CategoryHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/categories":
		h.handleList(w)
	case r.Method == http.MethodGet && r.URL.Path == "/categories/suggest":
		h.handleSuggest(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/categories/rename":
		h.handleRename(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleList handles GET /categories
func (h *CategoryHTTPHandler) handleList(w http.ResponseWriter) {
	counts := h.service.CategoryCounts()

	resp := categoryListResponse{
		Names:  h.service.Categories(),
		Counts: make([]categoryResponse, len(counts)),
	}
	for i, c := range counts {
		resp.Counts[i] = categoryResponse{Name: c.Name, Count: c.Count}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSuggest handles GET /categories/suggest?q=
func (h *CategoryHTTPHandler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var (
		query string
		limit int
	)
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	writeJSON(w, http.StatusOK, h.service.SuggestCategories(query, limit))
}

// handleRename handles POST /categories/rename
func (h *CategoryHTTPHandler) handleRename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	n, err := h.service.RenameCategory(req.From, req.To)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, affectedResponse{Count: n})
}
