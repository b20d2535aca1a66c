package driven

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"go.etcd.io/bbolt"

	"github.com/alorle/m3u-editor/internal/playlist"
)

const (
	playlistsBucket = "playlists"
)

var errBucketNotFound = errors.New("playlists bucket not found")

// PlaylistBoltDBRepository implements the PlaylistRepository port using BoltDB.
type PlaylistBoltDBRepository struct {
	db *bbolt.DB
}

// NewPlaylistBoltDBRepository creates a new BoltDB-backed playlist repository.
// It initializes the required bucket if it doesn't exist.
func NewPlaylistBoltDBRepository(db *bbolt.DB) (*PlaylistBoltDBRepository, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(playlistsBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PlaylistBoltDBRepository{db: db}, nil
}

// Save persists a playlist, replacing any previous one with the same key.
func (r *PlaylistBoltDBRepository) Save(ctx context.Context, p playlist.Playlist) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(playlistToDTO(p))
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(playlistsBucket))
		if bucket == nil {
			return errBucketNotFound
		}
		return bucket.Put([]byte(playlist.StorageKey(p.Name())), data)
	})
}

// FindByName retrieves a playlist by its name from BoltDB.
func (r *PlaylistBoltDBRepository) FindByName(ctx context.Context, name string) (playlist.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return playlist.Playlist{}, err
	}

	var p playlist.Playlist

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(playlistsBucket))
		if bucket == nil {
			return errBucketNotFound
		}

		data := bucket.Get([]byte(playlist.StorageKey(name)))
		if data == nil {
			return playlist.ErrPlaylistNotFound
		}

		var dto playlistDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			return err
		}

		reconstructed, err := dtoToPlaylist(dto)
		if err != nil {
			return err
		}

		p = reconstructed
		return nil
	})

	return p, err
}

// FindAll scans every key under playlist.KeyPrefix.
func (r *PlaylistBoltDBRepository) FindAll(ctx context.Context) ([]playlist.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	playlists := []playlist.Playlist{}
	prefix := []byte(playlist.KeyPrefix)

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(playlistsBucket))
		if bucket == nil {
			return errBucketNotFound
		}

		c := bucket.Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var dto playlistDTO
			if err := json.Unmarshal(v, &dto); err != nil {
				return err
			}

			p, err := dtoToPlaylist(dto)
			if err != nil {
				return err
			}
			playlists = append(playlists, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return playlists, nil
}

// Delete removes a playlist by its name from BoltDB.
func (r *PlaylistBoltDBRepository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(playlistsBucket))
		if bucket == nil {
			return errBucketNotFound
		}

		key := []byte(playlist.StorageKey(name))
		if bucket.Get(key) == nil {
			return playlist.ErrPlaylistNotFound
		}

		return bucket.Delete(key)
	})
}

// Ping checks if the BoltDB database is accessible and operational.
func (r *PlaylistBoltDBRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(playlistsBucket)) == nil {
			return errBucketNotFound
		}
		return nil
	})
}
