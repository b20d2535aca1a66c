// Package selection tracks which channels bulk operations target and which
// channels the current filter shows.
package selection

import (
	"github.com/google/uuid"

	"github.com/alorle/m3u-editor/internal/channel"
)

// Set is a set of channel identities. The zero value is an empty set.
type Set struct {
	ids map[uuid.UUID]struct{}
}

// NewSet returns a set holding ids.
func NewSet(ids ...uuid.UUID) Set {
	s := Set{ids: make(map[uuid.UUID]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// SelectAll returns a fresh set holding exactly the channels in view.
func SelectAll(view []channel.Channel) Set {
	s := Set{ids: make(map[uuid.UUID]struct{}, len(view))}
	for _, ch := range view {
		s.ids[ch.ID()] = struct{}{}
	}
	return s
}

// Toggle flips membership of id and reports whether it is now selected.
func (s *Set) Toggle(id uuid.UUID) bool {
	if s.ids == nil {
		s.ids = make(map[uuid.UUID]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Clear empties the set.
func (s *Set) Clear() {
	s.ids = nil
}

func (s Set) Has(id uuid.UUID) bool {
	_, ok := s.ids[id]
	return ok
}

func (s Set) Len() int {
	return len(s.ids)
}

// Reconcile returns the members of s that still identify a channel in chs.
func (s Set) Reconcile(chs []channel.Channel) Set {
	out := Set{ids: make(map[uuid.UUID]struct{}, len(s.ids))}
	for _, ch := range chs {
		if s.Has(ch.ID()) {
			out.ids[ch.ID()] = struct{}{}
		}
	}
	return out
}

// Selected returns the selected channels in sequence order.
func Selected(chs []channel.Channel, s Set) []channel.Channel {
	out := []channel.Channel{}
	for _, ch := range chs {
		if s.Has(ch.ID()) {
			out = append(out, ch)
		}
	}
	return out
}
