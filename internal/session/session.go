// Package session holds one editing session: the authoritative channel
// list together with the selection and filter that view it.
package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/alorle/m3u-editor/internal/bulk"
	"github.com/alorle/m3u-editor/internal/channel"
	"github.com/alorle/m3u-editor/internal/credential"
	"github.com/alorle/m3u-editor/internal/m3u"
	"github.com/alorle/m3u-editor/internal/selection"
)

// Defaults for channels created with Add.
const (
	DefaultChannelName = "New Channel"
	DefaultChannelURL  = "http://"
)

var ErrNoChannels = errors.New("playlist has no channels")

// Summary describes the session at a glance.
type Summary struct {
	ChannelCount  int
	CategoryCount int
	SelectedCount int
	Filter        selection.Filter
}

// Session is not safe for concurrent use. A failed operation leaves the
// session exactly as it was.
type Session struct {
	channels []channel.Channel
	selected selection.Set
	filter   selection.Filter
}

// New returns an empty session showing every category.
func New() *Session {
	return &Session{channels: []channel.Channel{}, filter: selection.All}
}

// Load replaces the channel list, clears the selection and resets the
// category filter. The search term is kept.
func (s *Session) Load(chs []channel.Channel) {
	s.channels = append([]channel.Channel{}, chs...)
	s.selected.Clear()
	s.filter.Category = channel.AllCategories
}

// Import parses M3U text and loads the result.
func (s *Session) Import(text string) m3u.Stats {
	chs, stats := m3u.ParseWithStats(text)
	s.Load(chs)
	return stats
}

// Channels returns a copy of the authoritative channel list.
func (s *Session) Channels() []channel.Channel {
	return append([]channel.Channel{}, s.channels...)
}

func (s *Session) Filter() selection.Filter {
	return s.filter
}

func (s *Session) SetFilter(f selection.Filter) {
	if f.Category == "" {
		f.Category = channel.AllCategories
	}
	s.filter = f
}

// Visible returns the channels passing the current filter.
func (s *Session) Visible() []channel.Channel {
	return selection.Apply(s.channels, s.filter)
}

// IsSelected reports whether the channel with id is selected.
func (s *Session) IsSelected(id uuid.UUID) bool {
	return s.selected.Has(id)
}

// Toggle flips the selection of one channel and reports its new state.
func (s *Session) Toggle(id uuid.UUID) (bool, error) {
	if _, ok := s.index(id); !ok {
		return false, channel.ErrChannelNotFound
	}
	return s.selected.Toggle(id), nil
}

// SelectAllVisible replaces the selection with the filtered view and
// returns the new selection size.
func (s *Session) SelectAllVisible() int {
	s.selected = selection.SelectAll(s.Visible())
	return s.selected.Len()
}

func (s *Session) ClearSelection() {
	s.selected.Clear()
}

// Selected returns the selected channels in list order.
func (s *Session) Selected() []channel.Channel {
	return selection.Selected(s.channels, s.selected)
}

// Add appends a channel. Blank name and URL take the defaults and an empty
// group takes the active category.
func (s *Session) Add(attrs channel.Attributes) (channel.Channel, error) {
	if attrs.Name == "" {
		attrs.Name = DefaultChannelName
	}
	if attrs.URL == "" {
		attrs.URL = DefaultChannelURL
	}
	if attrs.GroupTitle == "" && !s.filter.AllCategories() {
		attrs.GroupTitle = s.filter.Category
	}

	ch, err := channel.New(attrs)
	if err != nil {
		return channel.Channel{}, err
	}
	s.channels = append(s.channels, ch)
	return ch, nil
}

// Get returns the channel with id.
func (s *Session) Get(id uuid.UUID) (channel.Channel, error) {
	i, ok := s.index(id)
	if !ok {
		return channel.Channel{}, channel.ErrChannelNotFound
	}
	return s.channels[i], nil
}

// Update sets one field of one channel.
func (s *Session) Update(id uuid.UUID, field channel.Field, value string) (channel.Channel, error) {
	i, ok := s.index(id)
	if !ok {
		return channel.Channel{}, channel.ErrChannelNotFound
	}
	updated, err := s.channels[i].With(field, value)
	if err != nil {
		return channel.Channel{}, err
	}

	next := s.Channels()
	next[i] = updated
	s.channels = next
	return updated, nil
}

// Delete removes one channel and drops it from the selection.
func (s *Session) Delete(id uuid.UUID) error {
	i, ok := s.index(id)
	if !ok {
		return channel.ErrChannelNotFound
	}

	next := make([]channel.Channel, 0, len(s.channels)-1)
	next = append(next, s.channels[:i]...)
	next = append(next, s.channels[i+1:]...)
	s.commit(next)
	return nil
}

// DeleteSelected removes every selected channel and returns how many went.
func (s *Session) DeleteSelected() (int, error) {
	next, err := bulk.DeleteSelected(s.channels, s.selected)
	if err != nil {
		return 0, err
	}
	removed := len(s.channels) - len(next)
	s.commit(next)
	return removed, nil
}

// ApplyToSelected sets field to value on every selected channel.
func (s *Session) ApplyToSelected(field channel.Field, value string) (int, error) {
	next, err := bulk.ApplyToSelected(s.channels, s.selected, field, value)
	if err != nil {
		return 0, err
	}
	s.commit(next)
	return s.selected.Len(), nil
}

// ReplaceURLPrefix swaps the origin of every selected channel URL.
func (s *Session) ReplaceURLPrefix(prefix string) (int, error) {
	next, err := bulk.ReplaceURLPrefix(s.channels, s.selected, prefix)
	if err != nil {
		return 0, err
	}
	s.commit(next)
	return s.selected.Len(), nil
}

// RenameCategory moves every channel of oldCat into newCat. An active
// category filter on oldCat follows the rename.
func (s *Session) RenameCategory(oldCat, newCat string) (int, error) {
	next, moved, err := bulk.RenameCategory(s.channels, oldCat, newCat)
	if err != nil {
		return 0, err
	}
	s.commit(next)
	if s.filter.Category == oldCat && moved > 0 {
		s.filter.Category = newCat
	}
	return moved, nil
}

// Credentials inspects the first channel URL.
func (s *Session) Credentials(e credential.Extractor) (credential.Credentials, error) {
	if len(s.channels) == 0 {
		return credential.Credentials{}, ErrNoChannels
	}
	return e.Extract(s.channels[0].URL()), nil
}

// ReplaceID substitutes the detected identifier in every URL.
func (s *Session) ReplaceID(newID string) (int, error) {
	next, err := credential.ReplaceID(s.channels, newID)
	if err != nil {
		return 0, err
	}
	s.commit(next)
	return len(next), nil
}

// Categories returns the distinct groups preceded by the "all" sentinel.
func (s *Session) Categories() []string {
	return channel.Categories(s.channels)
}

// CategoryCounts returns group sizes, largest first.
func (s *Session) CategoryCounts() []channel.CategoryCount {
	return channel.CountByCategory(s.channels)
}

// ExportChannels picks what an export contains: the selection when there
// is one, otherwise the filtered view when a category is active, otherwise
// everything.
func (s *Session) ExportChannels() []channel.Channel {
	if s.selected.Len() > 0 {
		return s.Selected()
	}
	if !s.filter.AllCategories() {
		return s.Visible()
	}
	return s.Channels()
}

// ExportFilename names the exported file after the active category.
func (s *Session) ExportFilename() string {
	if s.filter.AllCategories() {
		return "playlist.m3u"
	}
	return "playlist_" + s.filter.Category + ".m3u"
}

func (s *Session) Summary() Summary {
	return Summary{
		ChannelCount:  len(s.channels),
		CategoryCount: len(channel.CountByCategory(s.channels)),
		SelectedCount: s.selected.Len(),
		Filter:        s.filter,
	}
}

// commit installs a new channel list and reconciles the selection with it.
func (s *Session) commit(next []channel.Channel) {
	s.channels = next
	s.selected = s.selected.Reconcile(next)
}

func (s *Session) index(id uuid.UUID) (int, bool) {
	for i, ch := range s.channels {
		if ch.ID() == id {
			return i, true
		}
	}
	return -1, false
}
