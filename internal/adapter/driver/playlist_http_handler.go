package driver

import (
	"net/http"
	"strings"
	"time"

	"github.com/alorle/m3u-editor/internal/application"
	"github.com/alorle/m3u-editor/internal/playlist"
)

// PlaylistHTTPHandler handles HTTP requests for saved playlists.
type PlaylistHTTPHandler struct {
	service *application.PlaylistService
}

// NewPlaylistHTTPHandler creates a new HTTP handler for saved playlists.
func NewPlaylistHTTPHandler(service *application.PlaylistService) *PlaylistHTTPHandler {
	return &PlaylistHTTPHandler{service: service}
}

type saveRequest struct {
	Name string `json:"name"`
}

// playlistResponse represents a saved playlist in JSON format.
type playlistResponse struct {
	Name          string `json:"name"`
	CreatedAt     string `json:"created_at"`
	ChannelCount  int    `json:"channel_count"`
	CategoryCount int    `json:"category_count"`
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *PlaylistHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/playlists")

	// GET /playlists - list saved playlists
	if r.Method == http.MethodGet && path == "" {
		h.handleList(w, r)
		return
	}

	// POST /playlists - save the session
	if r.Method == http.MethodPost && path == "" {
		h.handleSave(w, r)
		return
	}

	// POST /playlists/{name}/load - load into the session
	if r.Method == http.MethodPost && strings.HasSuffix(path, "/load") {
		name, ok := playlistName(w, strings.TrimSuffix(path, "/load"))
		if ok {
			h.handleLoad(w, r, name)
		}
		return
	}

	// DELETE /playlists/{name} - delete a saved playlist
	if r.Method == http.MethodDelete && path != "" {
		name, ok := playlistName(w, path)
		if ok {
			h.handleDelete(w, r, name)
		}
		return
	}

	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// playlistName extracts the name from a "/{name}" path segment.
func playlistName(w http.ResponseWriter, segment string) (string, bool) {
	name := strings.TrimPrefix(segment, "/")
	if name == "" {
		writeError(w, http.StatusBadRequest, "invalid playlist name")
		return "", false
	}
	return name, true
}

func toPlaylistResponse(p playlist.Playlist) playlistResponse {
	return playlistResponse{
		Name:          p.Name(),
		CreatedAt:     p.CreatedAt().Format(time.RFC3339),
		ChannelCount:  p.ChannelCount(),
		CategoryCount: p.CategoryCount(),
	}
}

// handleList handles GET /playlists
func (h *PlaylistHTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := make([]playlistResponse, len(playlists))
	for i, p := range playlists {
		response[i] = toPlaylistResponse(p)
	}

	writeJSON(w, http.StatusOK, response)
}

// handleSave handles POST /playlists
func (h *PlaylistHTTPHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.service.Save(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPlaylistResponse(p))
}

// handleLoad handles POST /playlists/{name}/load
func (h *PlaylistHTTPHandler) handleLoad(w http.ResponseWriter, r *http.Request, name string) {
	sum, err := h.service.Load(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(sum))
}

// handleDelete handles DELETE /playlists/{name}
func (h *PlaylistHTTPHandler) handleDelete(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.service.Delete(r.Context(), name); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
