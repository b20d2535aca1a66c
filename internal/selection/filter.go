package selection

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alorle/m3u-editor/internal/channel"
)

// Filter narrows the channel list to one category and a search term.
// An empty Category behaves like channel.AllCategories.
type Filter struct {
	Category string
	Search   string
}

// All is the filter that shows every channel.
var All = Filter{Category: channel.AllCategories}

// matcher reports whether a channel passes both the category and search
// predicates.
func (f Filter) matcher() func(channel.Channel) bool {
	lower := cases.Lower(language.Und)
	term := lower.String(f.Search)

	return func(ch channel.Channel) bool {
		if f.Category != "" && f.Category != channel.AllCategories && ch.GroupTitle() != f.Category {
			return false
		}
		if term == "" {
			return true
		}
		return strings.Contains(lower.String(ch.Name()), term) ||
			strings.Contains(lower.String(ch.GroupTitle()), term) ||
			strings.Contains(lower.String(ch.URL()), term)
	}
}

// AllCategories reports whether the filter has no category restriction.
func (f Filter) AllCategories() bool {
	return f.Category == "" || f.Category == channel.AllCategories
}

// Apply returns the channels passing f, in sequence order.
func Apply(chs []channel.Channel, f Filter) []channel.Channel {
	match := f.matcher()
	out := []channel.Channel{}
	for _, ch := range chs {
		if match(ch) {
			out = append(out, ch)
		}
	}
	return out
}
