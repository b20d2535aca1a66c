package m3u

import (
	"fmt"
	"io"
	"strings"
)

// TVGTags are the quoted attributes of an EXTINF line.
type TVGTags struct {
	ID         string
	Name       string
	Logo       string
	GroupTitle string
}

// encode writes all four attributes in fixed order, even when empty.
// Values are written verbatim: a value containing `"` will not parse back.
func (t *TVGTags) encode(w io.Writer) error {
	_, err := fmt.Fprintf(w, `tvg-id="%s" tvg-name="%s" tvg-logo="%s" group-title="%s"`,
		t.ID, t.Name, t.Logo, t.GroupTitle)
	return err
}

// decodeTVGTags looks up each attribute independently. Missing attributes
// are returned empty. Values end at the next `"`, so a value holding a
// literal quote (escaped or not) is cut short there.
func decodeTVGTags(extinf string) TVGTags {
	attrs := scanAttributes(extinf)
	return TVGTags{
		ID:         attrs["tvg-id"],
		Name:       attrs["tvg-name"],
		Logo:       attrs["tvg-logo"],
		GroupTitle: attrs["group-title"],
	}
}

// scanAttributes collects the key="value" pairs of an EXTINF line up to the
// first comma outside quotes. Text inside a value is never read as a key.
// The first occurrence of a key wins.
func scanAttributes(line string) map[string]string {
	attrs := make(map[string]string)
	start := 0
	if strings.HasPrefix(line, extinfPrefix) {
		start = len(extinfPrefix)
	}

	keyStart := start
	for i := start; i < len(line); i++ {
		switch c := line[i]; {
		case c == ' ' || c == '\t':
			keyStart = i + 1
		case c == ',':
			return attrs
		case c == '=' && i+1 < len(line) && line[i+1] == '"':
			end := strings.IndexByte(line[i+2:], '"')
			if end < 0 {
				return attrs
			}
			key := line[keyStart:i]
			if _, ok := attrs[key]; !ok {
				attrs[key] = line[i+2 : i+2+end]
			}
			i += 2 + end
			keyStart = i + 1
		case c == '"':
			// Stray quoted text outside a pair.
			end := strings.IndexByte(line[i+1:], '"')
			if end < 0 {
				return attrs
			}
			i += 1 + end
			keyStart = i + 1
		}
	}
	return attrs
}
