package driver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/alorle/m3u-editor/internal/application"
	"github.com/alorle/m3u-editor/internal/channel"
)

// ChannelHTTPHandler handles HTTP requests for single channels.
type ChannelHTTPHandler struct {
	service *application.EditorService
}

// NewChannelHTTPHandler creates a new HTTP handler for channels.
func NewChannelHTTPHandler(service *application.EditorService) *ChannelHTTPHandler {
	return &ChannelHTTPHandler{service: service}
}

// channelRequest represents the JSON body for creating a channel.
type channelRequest struct {
	TvgID      string `json:"tvg_id"`
	TvgName    string `json:"tvg_name"`
	TvgLogo    string `json:"tvg_logo"`
	GroupTitle string `json:"group_title"`
	Name       string `json:"name"`
	URL        string `json:"url"`
}

// fieldRequest sets one named field.
type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// channelResponse represents a channel in JSON format.
type channelResponse struct {
	ID         string `json:"id"`
	TvgID      string `json:"tvg_id"`
	TvgName    string `json:"tvg_name"`
	TvgLogo    string `json:"tvg_logo"`
	GroupTitle string `json:"group_title"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Selected   bool   `json:"selected"`
}

type channelPageResponse struct {
	Items  []channelResponse `json:"items"`
	Total  int               `json:"total"`
	Offset int               `json:"offset"`
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *ChannelHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/channels")

	// GET /channels - list the filtered view
	if r.Method == http.MethodGet && path == "" {
		h.handleList(w, r)
		return
	}

	// POST /channels - append a channel
	if r.Method == http.MethodPost && path == "" {
		h.handleCreate(w, r)
		return
	}

	if path == "" {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := uuid.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid channel id")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func toChannelResponse(ch channel.Channel, selected bool) channelResponse {
	return channelResponse{
		ID:         ch.ID().String(),
		TvgID:      ch.TvgID(),
		TvgName:    ch.TvgName(),
		TvgLogo:    ch.TvgLogo(),
		GroupTitle: ch.GroupTitle(),
		Name:       ch.Name(),
		URL:        ch.URL(),
		Selected:   selected,
	}
}

// handleList handles GET /channels
func (h *ChannelHTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var offset, limit int
	if err := runtime.BindQueryParameter("form", true, false, "offset", r.URL.Query(), &offset); err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	page := h.service.Channels(offset, limit)

	resp := channelPageResponse{
		Items:  make([]channelResponse, len(page.Items)),
		Total:  page.Total,
		Offset: page.Offset,
	}
	for i, v := range page.Items {
		resp.Items[i] = toChannelResponse(v.Channel, v.Selected)
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleCreate handles POST /channels. An empty body adds a default channel.
func (h *ChannelHTTPHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req channelRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	ch, err := h.service.AddChannel(channel.Attributes{
		TvgID:      req.TvgID,
		TvgName:    req.TvgName,
		TvgLogo:    req.TvgLogo,
		GroupTitle: req.GroupTitle,
		Name:       req.Name,
		URL:        req.URL,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toChannelResponse(ch, false))
}

// handleUpdate handles PATCH /channels/{id}
func (h *ChannelHTTPHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req fieldRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.service.UpdateChannel(id, req.Field, req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChannelResponse(view.Channel, view.Selected))
}

// handleDelete handles DELETE /channels/{id}
func (h *ChannelHTTPHandler) handleDelete(w http.ResponseWriter, id uuid.UUID) {
	if err := h.service.DeleteChannel(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
