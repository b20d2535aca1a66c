package application

import (
	"context"
	"io"
	"log/slog"

	"github.com/alorle/m3u-editor/internal/playlist"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

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
