package m3u

import (
	"fmt"
	"io"

	"github.com/alorle/m3u-editor/internal/channel"
)

// unknownDuration is written as the EXTINF duration of every live channel.
const unknownDuration = -1

func encodeEntry(w io.Writer, ch channel.Channel) error {
	if _, err := fmt.Fprintf(w, "%s%d ", extinfPrefix, unknownDuration); err != nil {
		return err
	}

	tags := TVGTags{
		ID:         ch.TvgID(),
		Name:       ch.TvgName(),
		Logo:       ch.TvgLogo(),
		GroupTitle: ch.GroupTitle(),
	}
	if err := tags.encode(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, ",%s\n%s\n", ch.Name(), ch.URL()); err != nil {
		return err
	}

	return nil
}
