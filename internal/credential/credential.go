// Package credential derives provider access details from stream URLs and
// rewrites the access identifier across a playlist.
package credential

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alorle/m3u-editor/internal/channel"
)

// DefaultLayout formats expiries as day/month/year with a 24h clock.
const DefaultLayout = "02/01/2006, 15:04:05"

var (
	ErrNoIdentifier   = errors.New("no identifier detected")
	ErrEmptyID        = errors.New("new identifier cannot be empty")
	ErrInvalidPattern = errors.New("identifier is not a valid pattern")
)

// Credentials are the access details found in a sample URL. Empty fields
// mean nothing was detected.
type Credentials struct {
	ID     string
	Expiry string
	Server string
}

// Extractor renders expiry timestamps in a fixed location and layout.
type Extractor struct {
	Location *time.Location
	Layout   string
}

var defaultExtractor = Extractor{Location: time.UTC, Layout: DefaultLayout}

// Extract scans sampleURL with the default extractor.
func Extract(sampleURL string) Credentials {
	return defaultExtractor.Extract(sampleURL)
}

// Extract scans sampleURL for an identifier, an expiry and the origin
// server. A URL that cannot be parsed only leaves Server empty.
func (e Extractor) Extract(sampleURL string) Credentials {
	return Credentials{
		ID:     firstMatch(IDRules, sampleURL, e.format),
		Expiry: firstMatch(ExpiryRules, sampleURL, e.format),
		Server: origin(sampleURL),
	}
}

func (e Extractor) format(t time.Time) string {
	loc := e.Location
	if loc == nil {
		loc = time.UTC
	}
	layout := e.Layout
	if layout == "" {
		layout = DefaultLayout
	}
	return t.In(loc).Format(layout)
}

var defaultPorts = map[string]string{"http": "80", "https": "443"}

func origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port := u.Port(); port != "" && port != defaultPorts[scheme] {
		host += ":" + port
	}
	return scheme + "://" + host
}

// ReplaceID swaps the identifier detected in the first channel's URL for
// newID in every channel URL. Only the query-parameter and path-segment
// rules are used to detect the old identifier.
//
// The old identifier is compiled as a regular expression, so characters
// such as '.' keep their pattern meaning.
func ReplaceID(chs []channel.Channel, newID string) ([]channel.Channel, error) {
	if strings.TrimSpace(newID) == "" {
		return nil, ErrEmptyID
	}
	if len(chs) == 0 {
		return nil, ErrNoIdentifier
	}

	oldID := firstMatch(replaceableIDRules, chs[0].URL(), defaultExtractor.format)
	if oldID == "" {
		return nil, ErrNoIdentifier
	}
	return ReplaceIDFrom(chs, oldID, newID)
}

// ReplaceIDFrom replaces every match of oldID in every channel URL with
// newID. Fails with ErrNoIdentifier when no URL contains oldID.
func ReplaceIDFrom(chs []channel.Channel, oldID, newID string) ([]channel.Channel, error) {
	if strings.TrimSpace(newID) == "" {
		return nil, ErrEmptyID
	}
	if oldID == "" {
		return nil, ErrNoIdentifier
	}

	re, err := regexp.Compile(oldID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	found := false
	out := make([]channel.Channel, len(chs))
	for i, ch := range chs {
		if !re.MatchString(ch.URL()) {
			out[i] = ch
			continue
		}
		found = true
		updated, err := ch.With(channel.FieldURL, re.ReplaceAllLiteralString(ch.URL(), newID))
		if err != nil {
			return nil, err
		}
		out[i] = updated
	}

	if !found {
		return nil, ErrNoIdentifier
	}
	return out, nil
}

// GenerateID returns a random lowercase alphanumeric identifier.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:26]
}
