package driven

import (
	"context"

	"github.com/alorle/m3u-editor/internal/playlist"
)

// PlaylistRepository defines the interface for saved playlist persistence.
// This is a driven port implemented by the BoltDB and in-memory adapters.
type PlaylistRepository interface {
	// Save persists a playlist under playlist.StorageKey(p.Name()),
	// overwriting any playlist stored under the same key.
	Save(ctx context.Context, p playlist.Playlist) error

	// FindByName retrieves a playlist. Returns playlist.ErrPlaylistNotFound
	// if nothing is stored under the name's key.
	FindByName(ctx context.Context, name string) (playlist.Playlist, error)

	// FindAll retrieves every saved playlist ordered by key.
	FindAll(ctx context.Context) ([]playlist.Playlist, error)

	// Delete removes a playlist. Returns playlist.ErrPlaylistNotFound
	// if it does not exist.
	Delete(ctx context.Context, name string) error

	// Ping checks if the storage backend is accessible.
	Ping(ctx context.Context) error
}
