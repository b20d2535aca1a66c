package driver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alorle/m3u-editor/internal/application"
	"github.com/alorle/m3u-editor/internal/bulk"
	"github.com/alorle/m3u-editor/internal/channel"
	"github.com/alorle/m3u-editor/internal/credential"
	"github.com/alorle/m3u-editor/internal/playlist"
	"github.com/alorle/m3u-editor/internal/selection"
	"github.com/alorle/m3u-editor/internal/session"
)

// errorResponse represents a JSON error response.
type errorResponse struct {
	Error string `json:"error"`
}

type filterResponse struct {
	Category string `json:"category"`
	Search   string `json:"search"`
}

type summaryResponse struct {
	ChannelCount  int            `json:"channel_count"`
	CategoryCount int            `json:"category_count"`
	SelectedCount int            `json:"selected_count"`
	Filter        filterResponse `json:"filter"`
}

// affectedResponse reports how many channels an operation touched.
type affectedResponse struct {
	Count int `json:"count"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// ValidationErrorHandler reports request validation failures in the same
// JSON shape as every other error.
func ValidationErrorHandler(w http.ResponseWriter, message string, statusCode int) {
	writeError(w, statusCode, message)
}

var (
	badRequestErrors = []error{
		channel.ErrEmptyName,
		channel.ErrEmptyURL,
		channel.ErrUnknownField,
		bulk.ErrEmptyPrefix,
		bulk.ErrEmptyCategory,
		credential.ErrEmptyID,
		credential.ErrInvalidPattern,
		playlist.ErrEmptyName,
	}
	unprocessableErrors = []error{
		bulk.ErrEmptySelection,
		credential.ErrNoIdentifier,
		session.ErrNoChannels,
	}
	notFoundErrors = []error{
		channel.ErrChannelNotFound,
		playlist.ErrPlaylistNotFound,
	}
)

// writeServiceError maps a service error to its HTTP status.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case isAny(err, badRequestErrors):
		writeError(w, http.StatusBadRequest, err.Error())
	case isAny(err, unprocessableErrors):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case isAny(err, notFoundErrors):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, application.ErrStorage):
		writeError(w, http.StatusBadGateway, application.ErrStorage.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func toSummaryResponse(s session.Summary) summaryResponse {
	return summaryResponse{
		ChannelCount:  s.ChannelCount,
		CategoryCount: s.CategoryCount,
		SelectedCount: s.SelectedCount,
		Filter:        toFilterResponse(s.Filter),
	}
}

func toFilterResponse(f selection.Filter) filterResponse {
	return filterResponse{Category: f.Category, Search: f.Search}
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
