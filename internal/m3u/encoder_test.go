package m3u

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alorle/m3u-editor/internal/channel"
)

func mustChannel(t *testing.T, attrs channel.Attributes) channel.Channel {
	t.Helper()
	ch, err := channel.New(attrs)
	if err != nil {
		t.Fatalf("channel.New() unexpected error = %v", err)
	}
	return ch
}

func TestSerialize(t *testing.T) {
	t.Run("emits header and all attributes", func(t *testing.T) {
		chs := []channel.Channel{
			mustChannel(t, channel.Attributes{TvgID: "1", TvgName: "N", GroupTitle: "Sports", Name: "Channel A", URL: "http://s.com/1/index.m3u8"}),
			mustChannel(t, channel.Attributes{Name: "Channel B", URL: "http://s.com/2"}),
		}

		got := Serialize(chs)
		want := "#EXTM3U\n" +
			"#EXTINF:-1 tvg-id=\"1\" tvg-name=\"N\" tvg-logo=\"\" group-title=\"Sports\",Channel A\n" +
			"http://s.com/1/index.m3u8\n" +
			"#EXTINF:-1 tvg-id=\"\" tvg-name=\"\" tvg-logo=\"\" group-title=\"Uncategorized\",Channel B\n" +
			"http://s.com/2\n"
		if got != want {
			t.Errorf("Serialize() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("empty playlist is only the header", func(t *testing.T) {
		if got := Serialize(nil); got != "#EXTM3U\n" {
			t.Errorf("Serialize(nil) = %q, want %q", got, "#EXTM3U\n")
		}
	})

	t.Run("quotes are written verbatim", func(t *testing.T) {
		ch := mustChannel(t, channel.Attributes{TvgName: `Say "Hi"`, Name: "Chan", URL: "http://s.com/1"})
		if got := Serialize([]channel.Channel{ch}); !strings.Contains(got, `tvg-name="Say "Hi""`) {
			t.Errorf("expected the value to be written unescaped, got %q", got)
		}
	})
}

func TestEncoderGuideURLs(t *testing.T) {
	enc := NewEncoder([]string{"http://epg/a.xml", "http://epg/b.xml"})
	enc.AddChannels([]channel.Channel{mustChannel(t, channel.Attributes{Name: "One", URL: "http://s.com/1"})})

	var buf bytes.Buffer
	if err := enc.Encode(&buf); err != nil {
		t.Fatalf("Encode() unexpected error = %v", err)
	}

	if !strings.HasPrefix(buf.String(), "#EXTM3U tvg-url=\"http://epg/a.xml,http://epg/b.xml\"\n") {
		t.Errorf("unexpected header: %q", buf.String())
	}

	// The header attribute does not disturb parsing.
	if got := Parse(buf.String()); len(got) != 1 {
		t.Errorf("expected 1 channel after re-parse, got %d", len(got))
	}
}

func TestRoundTrip(t *testing.T) {
	chs := []channel.Channel{
		mustChannel(t, channel.Attributes{TvgID: "1", TvgName: "N", TvgLogo: "http://logo/1.png", GroupTitle: "Sports", Name: "Channel A", URL: "http://s.com/1/index.m3u8"}),
		mustChannel(t, channel.Attributes{TvgName: "Comma, Inside", GroupTitle: "News, World", Name: "Channel, HD", URL: "http://s.com/2?u=abc&exp=1700000000"}),
		mustChannel(t, channel.Attributes{Name: "Plain", URL: "rtmp://s.com/live"}),
		mustChannel(t, channel.Attributes{Name: "Plain", URL: "rtmp://s.com/live"}),
		mustChannel(t, channel.Attributes{TvgLogo: "http://logo/?group-title=", GroupTitle: "Sports", Name: "Logo", URL: "http://s.com/3"}),
		mustChannel(t, channel.Attributes{TvgID: `tvg-name=`, TvgName: "Real", Name: "Keys", URL: "http://s.com/4"}),
	}

	got := Parse(Serialize(chs))
	if diff := cmp.Diff(attributesOf(chs), attributesOf(got)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add("1", "N", "", "Sports", "Channel A", "http://s.com/1/index.m3u8")
	f.Add("", "", "", "", "x", "y")
	f.Add("a,b", "Тест", "http://logo", "Интер", "Name, with comma", "rtsp://stream")
	f.Add("", "", "http://logo/?group-title=", "Sports", "Logo", "http://s.com/3")
	f.Add("x tvg-logo=", "", "http://logo", "", "Keys", "http://s.com/4")

	f.Fuzz(func(t *testing.T, id, name, logo, group, title, url string) {
		for _, v := range []string{id, name, logo, group} {
			if strings.ContainsAny(v, "\"\r\n") {
				t.Skip()
			}
		}
		if strings.ContainsAny(title+url, "\r\n") ||
			strings.TrimSpace(title) != title || strings.TrimSpace(url) != url ||
			strings.HasPrefix(url, "#") {
			t.Skip()
		}
		ch, err := channel.New(channel.Attributes{TvgID: id, TvgName: name, TvgLogo: logo, GroupTitle: group, Name: title, URL: url})
		if err != nil {
			t.Skip()
		}

		got := Parse(Serialize([]channel.Channel{ch}))
		if len(got) != 1 {
			t.Fatalf("expected 1 channel, got %d", len(got))
		}
		if diff := cmp.Diff(ch.Attributes(), got[0].Attributes()); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
}
