package m3u

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/alorle/m3u-editor/internal/channel"
)

// Stats describes what a parse pass saw. Dropped counts EXTINF entries that
// never became a channel.
type Stats struct {
	Markers  int
	Channels int
	Dropped  int
}

// parser holds the pending-entry accumulator. Malformed input never fails:
// incomplete entries are silently discarded.
type parser struct {
	pending  *channel.Attributes
	channels []channel.Channel
	stats    Stats
}

func (p *parser) line(raw string) {
	line := strings.TrimSpace(raw)

	if strings.HasPrefix(line, extinfPrefix) {
		// A second marker overwrites the first one.
		p.stats.Markers++
		attrs := parseExtinf(line)
		p.pending = &attrs
		return
	}

	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	// Entries without a name are never completed; they stay pending until
	// the next marker replaces them.
	if p.pending == nil || p.pending.Name == "" {
		return
	}

	attrs := *p.pending
	attrs.URL = line
	p.pending = nil

	ch, err := channel.New(attrs)
	if err != nil {
		return
	}
	p.channels = append(p.channels, ch)
	p.stats.Channels++
}

func (p *parser) finish() ([]channel.Channel, Stats) {
	p.stats.Dropped = p.stats.Markers - p.stats.Channels
	if p.channels == nil {
		p.channels = []channel.Channel{}
	}
	return p.channels, p.stats
}

func parseExtinf(line string) channel.Attributes {
	tags := decodeTVGTags(line)
	return channel.Attributes{
		TvgID:      tags.ID,
		TvgName:    tags.Name,
		TvgLogo:    tags.Logo,
		GroupTitle: tags.GroupTitle,
		Name:       displayName(line),
	}
}

// displayName returns the text after the comma that ends the attribute
// list. Commas inside quoted attribute values are skipped so that names
// and values containing commas survive a round trip. When quotes are
// unbalanced the last comma on the line is used.
func displayName(line string) string {
	inQuote := false
	for i := len(extinfPrefix); i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				return line[i+1:]
			}
		}
	}

	if idx := strings.LastIndex(line, ","); idx != -1 {
		return line[idx+1:]
	}
	return ""
}

// Parse converts M3U text into channels. It never fails; lines it cannot
// use are skipped.
func Parse(text string) []channel.Channel {
	chs, _ := ParseWithStats(text)
	return chs
}

// ParseWithStats is Parse plus a report of dropped entries.
func ParseWithStats(text string) ([]channel.Channel, Stats) {
	var p parser
	for _, line := range strings.Split(text, "\n") {
		p.line(line)
	}
	return p.finish()
}

// Decoder reads M3U text from a stream. Lines of any length are accepted;
// callers bound the total input size.
type Decoder struct {
	reader *bufio.Reader
	stats  Stats
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{reader: bufio.NewReader(r)}
}

// Decode reads the whole stream. Malformed entries are dropped; only read
// errors are returned.
func (d *Decoder) Decode() ([]channel.Channel, error) {
	var p parser
	for {
		line, err := d.reader.ReadString('\n')
		if len(line) > 0 {
			p.line(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	chs, stats := p.finish()
	d.stats = stats
	return chs, nil
}

// Stats reports the outcome of the last Decode call.
func (d *Decoder) Stats() Stats {
	return d.stats
}
