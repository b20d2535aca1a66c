package m3u

import (
	"fmt"
	"io"
	"strings"

	"github.com/alorle/m3u-editor/internal/channel"
)

const (
	header       = "#EXTM3U"
	extinfPrefix = "#EXTINF:"
)

type encoder struct {
	epgUrls []string
	items   []channel.Channel
}

// NewEncoder returns an encoder whose header advertises the given guide URLs.
// Pass nil for a bare #EXTM3U header.
func NewEncoder(guideUrls []string) *encoder {
	return &encoder{epgUrls: guideUrls, items: []channel.Channel{}}
}

func (p *encoder) AddChannels(items []channel.Channel) {
	p.items = append(p.items, items...)
}

func (p *encoder) Encode(w io.Writer) error {
	if _, err := fmt.Fprint(w, header); err != nil {
		return err
	}

	if len(p.epgUrls) > 0 {
		if _, err := fmt.Fprintf(w, " tvg-url=\"%s\"", strings.Join(p.epgUrls, ",")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprint(w, "\n"); err != nil {
		return err
	}

	for _, item := range p.items {
		if err := encodeEntry(w, item); err != nil {
			return err
		}
	}

	return nil
}

// Serialize renders chs as M3U text in sequence order.
func Serialize(chs []channel.Channel) string {
	var b strings.Builder
	enc := NewEncoder(nil)
	enc.AddChannels(chs)
	// strings.Builder never returns a write error.
	_ = enc.Encode(&b)
	return b.String()
}
