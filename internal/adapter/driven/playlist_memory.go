package driven

import (
	"context"
	"sort"
	"sync"

	"github.com/alorle/m3u-editor/internal/playlist"
)

// PlaylistMemoryRepository keeps saved playlists for the lifetime of the
// process. It backs memory-only mode when no database path is configured.
type PlaylistMemoryRepository struct {
	mu        sync.RWMutex
	playlists map[string]playlist.Playlist
}

func NewPlaylistMemoryRepository() *PlaylistMemoryRepository {
	return &PlaylistMemoryRepository{playlists: make(map[string]playlist.Playlist)}
}

func (r *PlaylistMemoryRepository) Save(ctx context.Context, p playlist.Playlist) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.playlists[playlist.StorageKey(p.Name())] = p
	return nil
}

func (r *PlaylistMemoryRepository) FindByName(ctx context.Context, name string) (playlist.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return playlist.Playlist{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.playlists[playlist.StorageKey(name)]
	if !ok {
		return playlist.Playlist{}, playlist.ErrPlaylistNotFound
	}
	return p, nil
}

// FindAll returns playlists ordered by key, matching the BoltDB adapter.
func (r *PlaylistMemoryRepository) FindAll(ctx context.Context) ([]playlist.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.playlists))
	for k := range r.playlists {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]playlist.Playlist, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.playlists[k])
	}
	return out, nil
}

func (r *PlaylistMemoryRepository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := playlist.StorageKey(name)
	if _, ok := r.playlists[key]; !ok {
		return playlist.ErrPlaylistNotFound
	}
	delete(r.playlists, key)
	return nil
}

func (r *PlaylistMemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
