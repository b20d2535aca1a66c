package channel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultGroup is the category assigned to channels without a group-title.
const DefaultGroup = "Uncategorized"

// Domain errors
var (
	ErrEmptyName       = errors.New("channel name cannot be empty")
	ErrEmptyURL        = errors.New("channel stream url cannot be empty")
	ErrUnknownField    = errors.New("unknown channel field")
	ErrChannelNotFound = errors.New("channel not found")
)

// Attributes holds the textual content of a playlist entry, exactly as it
// appears in the M3U text.
type Attributes struct {
	TvgID      string
	TvgName    string
	TvgLogo    string
	GroupTitle string
	Name       string
	URL        string
}

// Channel is one playlist entry. Every Channel has a stable identity that
// survives edits, a non-blank name and URL, and a non-empty group.
type Channel struct {
	id    uuid.UUID
	attrs Attributes
}

// New validates the attributes and creates a Channel with a fresh identity.
// An empty group-title is normalized to DefaultGroup.
// Returns ErrEmptyName or ErrEmptyURL when a required attribute is blank.
func New(attrs Attributes) (Channel, error) {
	return Reconstruct(uuid.New(), attrs)
}

// Reconstruct creates a Channel with a known identity.
func Reconstruct(id uuid.UUID, attrs Attributes) (Channel, error) {
	if strings.TrimSpace(attrs.Name) == "" {
		return Channel{}, ErrEmptyName
	}
	if strings.TrimSpace(attrs.URL) == "" {
		return Channel{}, ErrEmptyURL
	}
	if attrs.GroupTitle == "" {
		attrs.GroupTitle = DefaultGroup
	}
	return Channel{id: id, attrs: attrs}, nil
}

// ID returns the channel's stable identity.
func (c Channel) ID() uuid.UUID {
	return c.id
}

// TvgID returns the tvg-id attribute.
func (c Channel) TvgID() string {
	return c.attrs.TvgID
}

// TvgName returns the tvg-name attribute.
func (c Channel) TvgName() string {
	return c.attrs.TvgName
}

// TvgLogo returns the tvg-logo attribute.
func (c Channel) TvgLogo() string {
	return c.attrs.TvgLogo
}

// GroupTitle returns the channel's category.
func (c Channel) GroupTitle() string {
	return c.attrs.GroupTitle
}

// Name returns the channel's display name.
func (c Channel) Name() string {
	return c.attrs.Name
}

// URL returns the stream URL.
func (c Channel) URL() string {
	return c.attrs.URL
}

// Attributes returns a copy of the channel's textual content.
func (c Channel) Attributes() Attributes {
	return c.attrs
}

// With returns a copy of the channel with one field set to value.
// The identity is preserved and name, URL and group are validated again.
func (c Channel) With(field Field, value string) (Channel, error) {
	attrs := c.attrs
	switch field {
	case FieldTvgID:
		attrs.TvgID = value
	case FieldTvgName:
		attrs.TvgName = value
	case FieldTvgLogo:
		attrs.TvgLogo = value
	case FieldGroupTitle:
		attrs.GroupTitle = value
	case FieldName:
		attrs.Name = value
	case FieldURL:
		attrs.URL = value
	default:
		return Channel{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return Reconstruct(c.id, attrs)
}
