// Package bulk applies one edit to many channels at once. Every function
// returns a new slice and leaves its input untouched.
package bulk

import (
	"errors"
	"strings"

	"github.com/alorle/m3u-editor/internal/channel"
	"github.com/alorle/m3u-editor/internal/selection"
)

var (
	ErrEmptySelection = errors.New("no channels selected")
	ErrEmptyPrefix    = errors.New("url prefix cannot be empty")
	ErrEmptyCategory  = errors.New("category cannot be empty")
)

const schemeSeparator = "://"

// ApplyToSelected sets field to value on every selected channel.
// Returns ErrEmptySelection when nothing is selected, or the channel
// validation error when value is not allowed for field.
func ApplyToSelected(chs []channel.Channel, sel selection.Set, field channel.Field, value string) ([]channel.Channel, error) {
	return mapSelected(chs, sel, func(ch channel.Channel) (channel.Channel, error) {
		return ch.With(field, value)
	})
}

// ReplaceURLPrefix replaces the scheme and host of every selected channel
// URL with prefix, keeping the path, query and fragment. URLs without a
// scheme separator are prefixed as a whole.
func ReplaceURLPrefix(chs []channel.Channel, sel selection.Set, prefix string) ([]channel.Channel, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, ErrEmptyPrefix
	}
	return mapSelected(chs, sel, func(ch channel.Channel) (channel.Channel, error) {
		return ch.With(channel.FieldURL, withPrefix(ch.URL(), prefix))
	})
}

func withPrefix(rawURL, prefix string) string {
	idx := strings.Index(rawURL, schemeSeparator)
	if idx == -1 {
		return prefix + rawURL
	}

	rest := rawURL[idx+len(schemeSeparator):]
	tail := ""
	if i := strings.IndexAny(rest, "/?#"); i != -1 {
		tail = rest[i:]
	}
	return strings.TrimRight(prefix, "/") + tail
}

// RenameCategory moves every channel in oldCat to newCat, regardless of the
// selection. It returns the updated channels and how many were moved.
func RenameCategory(chs []channel.Channel, oldCat, newCat string) ([]channel.Channel, int, error) {
	if strings.TrimSpace(newCat) == "" {
		return nil, 0, ErrEmptyCategory
	}

	moved := 0
	out := make([]channel.Channel, len(chs))
	for i, ch := range chs {
		if ch.GroupTitle() != oldCat {
			out[i] = ch
			continue
		}
		updated, err := ch.With(channel.FieldGroupTitle, newCat)
		if err != nil {
			return nil, 0, err
		}
		out[i] = updated
		moved++
	}
	return out, moved, nil
}

// DeleteSelected removes every selected channel.
func DeleteSelected(chs []channel.Channel, sel selection.Set) ([]channel.Channel, error) {
	if sel.Len() == 0 {
		return nil, ErrEmptySelection
	}

	out := make([]channel.Channel, 0, len(chs))
	for _, ch := range chs {
		if !sel.Has(ch.ID()) {
			out = append(out, ch)
		}
	}
	return out, nil
}

func mapSelected(chs []channel.Channel, sel selection.Set, fn func(channel.Channel) (channel.Channel, error)) ([]channel.Channel, error) {
	if sel.Len() == 0 {
		return nil, ErrEmptySelection
	}

	out := make([]channel.Channel, len(chs))
	for i, ch := range chs {
		if !sel.Has(ch.ID()) {
			out[i] = ch
			continue
		}
		updated, err := fn(ch)
		if err != nil {
			return nil, err
		}
		out[i] = updated
	}
	return out, nil
}
