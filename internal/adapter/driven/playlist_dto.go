package driven

import (
	"time"

	"github.com/alorle/m3u-editor/internal/channel"
	"github.com/alorle/m3u-editor/internal/playlist"
)

// playlistDTO is used for JSON serialization.
type playlistDTO struct {
	Name          string       `json:"name"`
	CreatedAt     string       `json:"created_at"`
	ChannelCount  int          `json:"channel_count"`
	CategoryCount int          `json:"category_count"`
	Channels      []channelDTO `json:"channels"`
}

// channelDTO carries the textual attributes only; identities are
// regenerated when a playlist is loaded.
type channelDTO struct {
	TvgID      string `json:"tvg_id"`
	TvgName    string `json:"tvg_name"`
	TvgLogo    string `json:"tvg_logo"`
	GroupTitle string `json:"group_title"`
	Name       string `json:"name"`
	URL        string `json:"url"`
}

func playlistToDTO(p playlist.Playlist) playlistDTO {
	chs := p.Channels()
	dto := playlistDTO{
		Name:          p.Name(),
		CreatedAt:     p.CreatedAt().Format(time.RFC3339),
		ChannelCount:  p.ChannelCount(),
		CategoryCount: p.CategoryCount(),
		Channels:      make([]channelDTO, len(chs)),
	}
	for i, ch := range chs {
		a := ch.Attributes()
		dto.Channels[i] = channelDTO{
			TvgID:      a.TvgID,
			TvgName:    a.TvgName,
			TvgLogo:    a.TvgLogo,
			GroupTitle: a.GroupTitle,
			Name:       a.Name,
			URL:        a.URL,
		}
	}
	return dto
}

func dtoToPlaylist(dto playlistDTO) (playlist.Playlist, error) {
	createdAt, err := time.Parse(time.RFC3339, dto.CreatedAt)
	if err != nil {
		return playlist.Playlist{}, err
	}

	chs := make([]channel.Channel, 0, len(dto.Channels))
	for _, c := range dto.Channels {
		ch, err := channel.New(channel.Attributes{
			TvgID:      c.TvgID,
			TvgName:    c.TvgName,
			TvgLogo:    c.TvgLogo,
			GroupTitle: c.GroupTitle,
			Name:       c.Name,
			URL:        c.URL,
		})
		if err != nil {
			return playlist.Playlist{}, err
		}
		chs = append(chs, ch)
	}

	return playlist.Reconstruct(dto.Name, chs, createdAt, dto.ChannelCount, dto.CategoryCount)
}
