package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alorle/m3u-editor/internal/channel"
	"github.com/alorle/m3u-editor/internal/metrics"
	"github.com/alorle/m3u-editor/internal/playlist"
	"github.com/alorle/m3u-editor/internal/port/driven"
	"github.com/alorle/m3u-editor/internal/session"
)

// Workspace is the session a PlaylistService saves from and loads into.
type Workspace interface {
	Snapshot() []channel.Channel
	Load(chs []channel.Channel) session.Summary
}

// PlaylistService provides use cases for saved playlists.
// It depends only on port interfaces.
type PlaylistService struct {
	repo      driven.PlaylistRepository
	workspace Workspace
	logger    *slog.Logger
	now       func() time.Time
}

// NewPlaylistService creates a new PlaylistService.
func NewPlaylistService(repo driven.PlaylistRepository, workspace Workspace, logger *slog.Logger) *PlaylistService {
	return &PlaylistService{
		repo:      repo,
		workspace: workspace,
		logger:    logger,
		now:       time.Now,
	}
}

// Save stores the current session under name, replacing any playlist
// saved under the same key.
func (s *PlaylistService) Save(ctx context.Context, name string) (playlist.Playlist, error) {
	p, err := playlist.New(name, s.workspace.Snapshot(), s.now())
	if err != nil {
		return playlist.Playlist{}, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return playlist.Playlist{}, s.storageError("save", err)
	}

	s.logger.Info("playlist saved", "name", p.Name(), "channels", p.ChannelCount())
	return p, nil
}

// List returns every saved playlist.
func (s *PlaylistService) List(ctx context.Context) ([]playlist.Playlist, error) {
	playlists, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.storageError("list", err)
	}
	return playlists, nil
}

// Load replaces the session with a saved playlist. Returns
// playlist.ErrPlaylistNotFound if no playlist is stored under name.
func (s *PlaylistService) Load(ctx context.Context, name string) (session.Summary, error) {
	p, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, playlist.ErrPlaylistNotFound) {
			return session.Summary{}, err
		}
		return session.Summary{}, s.storageError("load", err)
	}

	summary := s.workspace.Load(p.Channels())
	s.logger.Info("playlist loaded", "name", p.Name(), "channels", p.ChannelCount())
	return summary, nil
}

// Delete removes a saved playlist.
func (s *PlaylistService) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		if errors.Is(err, playlist.ErrPlaylistNotFound) {
			return err
		}
		return s.storageError("delete", err)
	}

	s.logger.Info("playlist deleted", "name", name)
	return nil
}

func (s *PlaylistService) storageError(operation string, err error) error {
	metrics.RecordStorageError(operation)
	s.logger.Error("playlist storage failed", "operation", operation, "error", err)
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
