package driver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alorle/m3u-editor/internal/application"
	"github.com/alorle/m3u-editor/internal/credential"
	"github.com/alorle/m3u-editor/internal/playlist"
)

const testPlaylist = `#EXTM3U
#EXTINF:-1 tvg-id="n1" tvg-name="" tvg-logo="" group-title="News",News One
http://provider.tv/live/alice/secret/101.ts
#EXTINF:-1 tvg-id="s1" tvg-name="" tvg-logo="" group-title="Sports",Sports One
http://provider.tv/live/alice/secret/201.ts
#EXTINF:-1 tvg-id="s2" tvg-name="" tvg-logo="" group-title="Sports",Sports Two
http://provider.tv/live/alice/secret/202.ts
#EXTINF:-1 group-title="Broken",
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEditor(t *testing.T) *application.EditorService {
	t.Helper()
	s := application.NewEditorService(credential.Extractor{Layout: credential.DefaultLayout}, nil, testLogger())
	if _, err := s.Import(strings.NewReader(testPlaylist)); err != nil {
		t.Fatalf("failed to import test playlist: %v", err)
	}
	return s
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// mockPlaylistRepository is a func-field implementation of the playlist port.
type mockPlaylistRepository struct {
	saveFunc       func(ctx context.Context, p playlist.Playlist) error
	findByNameFunc func(ctx context.Context, name string) (playlist.Playlist, error)
	findAllFunc    func(ctx context.Context) ([]playlist.Playlist, error)
	deleteFunc     func(ctx context.Context, name string) error
	pingFunc       func(ctx context.Context) error
}

func (m *mockPlaylistRepository) Save(ctx context.Context, p playlist.Playlist) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, p)
	}
	return nil
}

func (m *mockPlaylistRepository) FindByName(ctx context.Context, name string) (playlist.Playlist, error) {
	if m.findByNameFunc != nil {
		return m.findByNameFunc(ctx, name)
	}
	return playlist.Playlist{}, playlist.ErrPlaylistNotFound
}

func (m *mockPlaylistRepository) FindAll(ctx context.Context) ([]playlist.Playlist, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []playlist.Playlist{}, nil
}

func (m *mockPlaylistRepository) Delete(ctx context.Context, name string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, name)
	}
	return nil
}

func (m *mockPlaylistRepository) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}
