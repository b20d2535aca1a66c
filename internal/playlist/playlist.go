// Package playlist is the persisted form of an edited channel list.
package playlist

import (
	"errors"
	"strings"
	"time"

	"github.com/alorle/m3u-editor/internal/channel"
)

// KeyPrefix namespaces playlist keys in the storage backend.
const KeyPrefix = "playlist:"

// Domain errors
var (
	ErrEmptyName        = errors.New("playlist name cannot be empty")
	ErrPlaylistNotFound = errors.New("playlist not found")
)

// Playlist is a named snapshot of a channel list. The counts are taken
// when the snapshot is made and travel with it through storage.
type Playlist struct {
	name          string
	channels      []channel.Channel
	createdAt     time.Time
	channelCount  int
	categoryCount int
}

// New snapshots chs under name. Returns ErrEmptyName when name is blank.
func New(name string, chs []channel.Channel, now time.Time) (Playlist, error) {
	return Reconstruct(name, chs, now, len(chs), len(channel.CountByCategory(chs)))
}

// Reconstruct rebuilds a stored playlist with the counts it was saved with.
func Reconstruct(name string, chs []channel.Channel, createdAt time.Time, channelCount, categoryCount int) (Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Playlist{}, ErrEmptyName
	}
	return Playlist{
		name:          name,
		channels:      append([]channel.Channel{}, chs...),
		createdAt:     createdAt.UTC(),
		channelCount:  channelCount,
		categoryCount: categoryCount,
	}, nil
}

func (p Playlist) Name() string {
	return p.name
}

// Channels returns a copy of the saved channels.
func (p Playlist) Channels() []channel.Channel {
	return append([]channel.Channel{}, p.channels...)
}

func (p Playlist) CreatedAt() time.Time {
	return p.createdAt
}

// ChannelCount is the number of channels at save time.
func (p Playlist) ChannelCount() int {
	return p.channelCount
}

// CategoryCount is the number of distinct groups at save time.
func (p Playlist) CategoryCount() int {
	return p.categoryCount
}

// StorageKey maps name to its storage key. Every rune outside [a-zA-Z0-9]
// becomes '_', so distinct names may share a key.
func StorageKey(name string) string {
	var b strings.Builder
	b.Grow(len(KeyPrefix) + len(name))
	b.WriteString(KeyPrefix)
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
