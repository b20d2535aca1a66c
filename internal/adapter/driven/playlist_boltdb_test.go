package driven

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.etcd.io/bbolt"

	"github.com/alorle/m3u-editor/internal/channel"
	"github.com/alorle/m3u-editor/internal/playlist"
	port "github.com/alorle/m3u-editor/internal/port/driven"
)

// setupTestDB creates a temporary BoltDB instance for testing.
func setupTestDB(t *testing.T) (*bbolt.DB, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func newTestPlaylist(t *testing.T, name string, channelNames ...string) playlist.Playlist {
	t.Helper()

	chs := make([]channel.Channel, 0, len(channelNames))
	for _, n := range channelNames {
		ch, err := channel.New(channel.Attributes{
			TvgID:      n + ".id",
			TvgLogo:    "http://logo/" + n + ".png",
			GroupTitle: "News",
			Name:       n,
			URL:        "http://s.com/live/u/p/" + n + ".ts",
		})
		if err != nil {
			t.Fatalf("failed to create channel: %v", err)
		}
		chs = append(chs, ch)
	}

	p, err := playlist.New(name, chs, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("failed to create playlist: %v", err)
	}
	return p
}

func TestNewPlaylistBoltDBRepository(t *testing.T) {
	t.Run("creates repository and bucket successfully", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo, err := NewPlaylistBoltDBRepository(db)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if repo == nil {
			t.Fatal("expected non-nil repository")
		}

		err = db.View(func(tx *bbolt.Tx) error {
			if tx.Bucket([]byte(playlistsBucket)) == nil {
				t.Error("expected playlists bucket to exist")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("failed to verify bucket: %v", err)
		}
	})

	t.Run("returns error for nil database", func(t *testing.T) {
		repo, err := NewPlaylistBoltDBRepository(nil)
		if err == nil {
			t.Fatal("expected error for nil database")
		}
		if repo != nil {
			t.Error("expected nil repository")
		}
	})
}

// repositoryContract runs the behaviour every PlaylistRepository adapter shares.
func repositoryContract(t *testing.T, newRepo func(t *testing.T) port.PlaylistRepository) {
	ctx := context.Background()

	t.Run("save and find round trip", func(t *testing.T) {
		repo := newRepo(t)
		want := newTestPlaylist(t, "My List", "Alpha", "Bravo")

		if err := repo.Save(ctx, want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := repo.FindByName(ctx, "My List")
		if err != nil {
			t.Fatalf("FindByName() error = %v", err)
		}
		if got.Name() != want.Name() || !got.CreatedAt().Equal(want.CreatedAt()) {
			t.Errorf("FindByName() = %q at %v, want %q at %v", got.Name(), got.CreatedAt(), want.Name(), want.CreatedAt())
		}
		if got.ChannelCount() != 2 {
			t.Fatalf("ChannelCount() = %d, want 2", got.ChannelCount())
		}
		for i, ch := range got.Channels() {
			if ch.Attributes() != want.Channels()[i].Attributes() {
				t.Errorf("channel %d = %+v, want %+v", i, ch.Attributes(), want.Channels()[i].Attributes())
			}
		}
	})

	t.Run("save overwrites same key", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.Save(ctx, newTestPlaylist(t, "My List", "Alpha")); err != nil {
			t.Fatal(err)
		}
		if err := repo.Save(ctx, newTestPlaylist(t, "My_List", "Alpha", "Bravo", "Charlie")); err != nil {
			t.Fatal(err)
		}

		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("FindAll() = %d playlists, want 1", len(all))
		}
		if all[0].ChannelCount() != 3 {
			t.Errorf("ChannelCount() = %d, want 3", all[0].ChannelCount())
		}
	})

	t.Run("find all ordered by key", func(t *testing.T) {
		repo := newRepo(t)
		for _, name := range []string{"b", "c", "a"} {
			if err := repo.Save(ctx, newTestPlaylist(t, name, "x")); err != nil {
				t.Fatal(err)
			}
		}

		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		var got []string
		for _, p := range all {
			got = append(got, p.Name())
		}
		if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
			t.Errorf("FindAll() names = %v, want [a b c]", got)
		}
	})

	t.Run("find all on empty repository", func(t *testing.T) {
		repo := newRepo(t)
		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if all == nil || len(all) != 0 {
			t.Errorf("FindAll() = %v, want empty non-nil slice", all)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := newRepo(t)
		if _, err := repo.FindByName(ctx, "missing"); !errors.Is(err, playlist.ErrPlaylistNotFound) {
			t.Errorf("FindByName() error = %v, want %v", err, playlist.ErrPlaylistNotFound)
		}
		if err := repo.Delete(ctx, "missing"); !errors.Is(err, playlist.ErrPlaylistNotFound) {
			t.Errorf("Delete() error = %v, want %v", err, playlist.ErrPlaylistNotFound)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.Save(ctx, newTestPlaylist(t, "gone", "x")); err != nil {
			t.Fatal(err)
		}
		if err := repo.Delete(ctx, "gone"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := repo.FindByName(ctx, "gone"); !errors.Is(err, playlist.ErrPlaylistNotFound) {
			t.Errorf("FindByName() after delete error = %v", err)
		}
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		repo := newRepo(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		if err := repo.Save(cancelled, newTestPlaylist(t, "x", "x")); !errors.Is(err, context.Canceled) {
			t.Errorf("Save() error = %v, want %v", err, context.Canceled)
		}
		if _, err := repo.FindAll(cancelled); !errors.Is(err, context.Canceled) {
			t.Errorf("FindAll() error = %v, want %v", err, context.Canceled)
		}
		if err := repo.Ping(cancelled); !errors.Is(err, context.Canceled) {
			t.Errorf("Ping() error = %v, want %v", err, context.Canceled)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := newRepo(t).Ping(ctx); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})
}

func TestPlaylistBoltDBRepository(t *testing.T) {
	repositoryContract(t, func(t *testing.T) port.PlaylistRepository {
		db, cleanup := setupTestDB(t)
		t.Cleanup(cleanup)

		repo, err := NewPlaylistBoltDBRepository(db)
		if err != nil {
			t.Fatalf("failed to create repository: %v", err)
		}
		return repo
	})
}

func TestPlaylistBoltDBRepository_IgnoresForeignKeys(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewPlaylistBoltDBRepository(db)
	if err != nil {
		t.Fatal(err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(playlistsBucket)).Put([]byte("settings:theme"), []byte("not json"))
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(context.Background(), newTestPlaylist(t, "kept", "x")); err != nil {
		t.Fatal(err)
	}

	all, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 1 || all[0].Name() != "kept" {
		t.Errorf("FindAll() = %d playlists, want only \"kept\"", len(all))
	}
}

func TestPlaylistBoltDBRepository_CorruptRecord(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewPlaylistBoltDBRepository(db)
	if err != nil {
		t.Fatal(err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(playlistsBucket)).Put([]byte(playlist.StorageKey("bad")), []byte("{"))
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := repo.FindByName(context.Background(), "bad"); err == nil {
		t.Error("FindByName() expected error for corrupt record")
	}
}

func TestPlaylistBoltDBRepository_CountsFromRecord(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewPlaylistBoltDBRepository(db)
	if err != nil {
		t.Fatal(err)
	}

	record := `{"name":"legacy","created_at":"2024-01-02T03:04:05Z","channel_count":7,"category_count":4,` +
		`"channels":[{"group_title":"News","name":"one","url":"http://s.com/1"}]}`
	err = db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(playlistsBucket)).Put([]byte(playlist.StorageKey("legacy")), []byte(record))
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindByName(context.Background(), "legacy")
	if err != nil {
		t.Fatalf("FindByName() error = %v", err)
	}
	if got.ChannelCount() != 7 || got.CategoryCount() != 4 {
		t.Errorf("counts = %d/%d, want the stored 7/4", got.ChannelCount(), got.CategoryCount())
	}
	if len(got.Channels()) != 1 {
		t.Errorf("Channels() = %d, want 1", len(got.Channels()))
	}
}

func TestPlaylistMemoryRepository(t *testing.T) {
	repositoryContract(t, func(t *testing.T) port.PlaylistRepository {
		return NewPlaylistMemoryRepository()
	})
}
