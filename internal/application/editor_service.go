package application

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/alorle/m3u-editor/internal/channel"
	"github.com/alorle/m3u-editor/internal/credential"
	"github.com/alorle/m3u-editor/internal/m3u"
	"github.com/alorle/m3u-editor/internal/metrics"
	"github.com/alorle/m3u-editor/internal/selection"
	"github.com/alorle/m3u-editor/internal/session"
)

// ChannelView is a channel as listed to clients.
type ChannelView struct {
	Channel  channel.Channel
	Selected bool
}

// ChannelPage is one window of the filtered view.
type ChannelPage struct {
	Items  []ChannelView
	Total  int
	Offset int
}

// ImportResult reports what an import produced.
type ImportResult struct {
	Summary session.Summary
	Stats   m3u.Stats
}

// Export is a rendered playlist ready for download.
type Export struct {
	Filename string
	Body     string
	Channels int
}

// EditorService exposes the editing session. Every call holds the service
// lock, so one operation is in flight at a time.
type EditorService struct {
	mu        sync.Mutex
	session   *session.Session
	extractor credential.Extractor
	guideURLs []string
	logger    *slog.Logger
}

// NewEditorService creates an EditorService with an empty session.
func NewEditorService(extractor credential.Extractor, guideURLs []string, logger *slog.Logger) *EditorService {
	return &EditorService{
		session:   session.New(),
		extractor: extractor,
		guideURLs: guideURLs,
		logger:    logger,
	}
}

// Import replaces the session with the playlist read from r.
func (s *EditorService) Import(r io.Reader) (ImportResult, error) {
	dec := m3u.NewDecoder(r)
	chs, err := dec.Decode()
	if err != nil {
		s.record("import", err)
		return ImportResult{}, fmt.Errorf("reading playlist: %w", err)
	}
	stats := dec.Stats()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Load(chs)
	metrics.RecordImport(stats.Channels, stats.Dropped)
	s.record("import", nil)

	if stats.Dropped > 0 {
		s.logger.Warn("playlist entries dropped", "dropped", stats.Dropped, "markers", stats.Markers)
	}
	s.logger.Info("playlist imported", "channels", stats.Channels)

	return ImportResult{Summary: s.session.Summary(), Stats: stats}, nil
}

// Load replaces the session with chs.
func (s *EditorService) Load(chs []channel.Channel) session.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Load(chs)
	s.record("load", nil)
	return s.session.Summary()
}

// Snapshot returns the full channel list.
func (s *EditorService) Snapshot() []channel.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Channels()
}

func (s *EditorService) Summary() session.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Summary()
}

func (s *EditorService) SetFilter(f selection.Filter) session.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SetFilter(f)
	return s.session.Summary()
}

// Channels returns up to limit channels of the filtered view starting at
// offset. A limit of zero or less returns the rest of the view.
func (s *EditorService) Channels(offset, limit int) ChannelPage {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := s.session.Visible()
	total := len(visible)

	offset = max(offset, 0)
	offset = min(offset, total)
	end := total
	if limit > 0 {
		end = min(offset+limit, total)
	}

	items := make([]ChannelView, 0, end-offset)
	for _, ch := range visible[offset:end] {
		items = append(items, ChannelView{Channel: ch, Selected: s.session.IsSelected(ch.ID())})
	}
	return ChannelPage{Items: items, Total: total, Offset: offset}
}

func (s *EditorService) AddChannel(attrs channel.Attributes) (channel.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.session.Add(attrs)
	s.record("add_channel", err)
	return ch, err
}

// UpdateChannel sets one named field of one channel.
func (s *EditorService) UpdateChannel(id uuid.UUID, field, value string) (ChannelView, error) {
	f, err := channel.ParseField(field)
	if err != nil {
		return ChannelView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.session.Update(id, f, value)
	s.record("update_channel", err)
	if err != nil {
		return ChannelView{}, err
	}
	return ChannelView{Channel: ch, Selected: s.session.IsSelected(id)}, nil
}

func (s *EditorService) DeleteChannel(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.session.Delete(id)
	s.record("delete_channel", err)
	return err
}

// ToggleSelection flips one channel and reports its new state.
func (s *EditorService) ToggleSelection(id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected, err := s.session.Toggle(id)
	s.record("toggle_selection", err)
	return selected, err
}

func (s *EditorService) SelectAllVisible() session.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SelectAllVisible()
	s.record("select_all", nil)
	return s.session.Summary()
}

func (s *EditorService) ClearSelection() session.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.ClearSelection()
	s.record("clear_selection", nil)
	return s.session.Summary()
}

// DeleteSelected removes the selected channels and returns how many.
func (s *EditorService) DeleteSelected() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.session.DeleteSelected()
	s.record("delete_selected", err)
	if err == nil {
		s.logger.Info("selected channels deleted", "count", n)
	}
	return n, err
}

// ApplyToSelected sets a named field on every selected channel.
func (s *EditorService) ApplyToSelected(field, value string) (int, error) {
	f, err := channel.ParseField(field)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.session.ApplyToSelected(f, value)
	s.record("bulk_field", err)
	if err == nil {
		s.logger.Info("bulk field applied", "field", field, "count", n)
	}
	return n, err
}

func (s *EditorService) ReplaceURLPrefix(prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.session.ReplaceURLPrefix(prefix)
	s.record("bulk_url_prefix", err)
	if err == nil {
		s.logger.Info("url prefix replaced", "prefix", prefix, "count", n)
	}
	return n, err
}

// Categories lists the filter options: the all sentinel, then every group
// by name.
func (s *EditorService) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Categories()
}

func (s *EditorService) CategoryCounts() []channel.CategoryCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.CategoryCounts()
}

func (s *EditorService) RenameCategory(from, to string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.session.RenameCategory(from, to)
	s.record("rename_category", err)
	if err == nil {
		s.logger.Info("category renamed", "from", from, "to", to, "count", n)
	}
	return n, err
}

// SuggestCategories ranks existing category names against query, closest
// first. An empty query lists every category alphabetically.
func (s *EditorService) SuggestCategories(query string, limit int) []string {
	s.mu.Lock()
	counts := s.session.CategoryCounts()
	s.mu.Unlock()

	names := make([]string, len(counts))
	for i, c := range counts {
		names[i] = c.Name
	}

	var out []string
	if strings.TrimSpace(query) == "" {
		sort.Strings(names)
		out = names
	} else {
		ranks := fuzzy.RankFindFold(query, names)
		sort.SliceStable(ranks, func(i, j int) bool {
			if ranks[i].Distance != ranks[j].Distance {
				return ranks[i].Distance < ranks[j].Distance
			}
			return ranks[i].Target < ranks[j].Target
		})
		out = make([]string, len(ranks))
		for i, r := range ranks {
			out[i] = r.Target
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Credentials inspects the first channel of the session.
func (s *EditorService) Credentials() (credential.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Credentials(s.extractor)
}

// ReplaceID rewrites the detected identifier in every channel URL.
func (s *EditorService) ReplaceID(newID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.session.ReplaceID(newID)
	s.record("replace_id", err)
	if err == nil {
		s.logger.Info("identifier replaced", "count", n)
	}
	return n, err
}

// GenerateID proposes a random identifier.
func (s *EditorService) GenerateID() string {
	return credential.GenerateID()
}

// Export renders the export scope as M3U text.
func (s *EditorService) Export() (Export, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chs := s.session.ExportChannels()
	filename := s.session.ExportFilename()
	body, err := s.encode(chs)
	s.record("export", err)
	if err != nil {
		return Export{}, err
	}
	return Export{Filename: filename, Body: body, Channels: len(chs)}, nil
}

// Playlist renders every channel as M3U text.
func (s *EditorService) Playlist() (string, error) {
	return s.encode(s.Snapshot())
}

func (s *EditorService) encode(chs []channel.Channel) (string, error) {
	enc := m3u.NewEncoder(s.guideURLs)
	enc.AddChannels(chs)

	var b strings.Builder
	if err := enc.Encode(&b); err != nil {
		return "", fmt.Errorf("encoding playlist: %w", err)
	}
	return b.String(), nil
}

// record must be called with the lock held when the session may have changed.
func (s *EditorService) record(operation string, err error) {
	metrics.RecordOperation(operation, err)
	if err != nil {
		s.logger.Debug("operation rejected", "operation", operation, "error", err)
		return
	}
	sum := s.session.Summary()
	metrics.SetSessionSize(sum.ChannelCount, sum.SelectedCount)
}
