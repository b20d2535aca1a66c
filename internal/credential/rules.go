package credential

import (
	"regexp"
	"strconv"
	"time"
)

// Rule is one heuristic in an extraction cascade. Extract returns the value
// found in the URL and whether the rule matched.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Extract func(match []string, f formatter) (string, bool)
}

type formatter func(time.Time) string

func capture(match []string, _ formatter) (string, bool) {
	return match[1], true
}

func unixSeconds(match []string, format formatter) (string, bool) {
	secs, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return "", false
	}
	return format(time.Unix(secs, 0)), true
}

var (
	queryIDRule = Rule{
		Name:    "query-parameter",
		Pattern: regexp.MustCompile(`(?i)(?:username|user|u|id)=([^&\s]+)`),
		Extract: capture,
	}
	pathIDRule = Rule{
		Name:    "path-segment",
		Pattern: regexp.MustCompile(`(?i)/(?:live|get\.php)/([^/\s]+)/`),
		Extract: capture,
	}
	numericIDRule = Rule{
		Name:    "numeric-segment",
		Pattern: regexp.MustCompile(`/(\d{4,})/`),
		Extract: capture,
	}
)

// IDRules are evaluated in order; the first match wins.
var IDRules = []Rule{queryIDRule, pathIDRule, numericIDRule}

// replaceableIDRules are the rules trusted to locate the identifier that
// ReplaceID substitutes. Bare numeric segments are too ambiguous.
var replaceableIDRules = []Rule{queryIDRule, pathIDRule}

// ExpiryRules are evaluated in order; the first match wins.
var ExpiryRules = []Rule{
	{
		Name:    "query-parameter",
		Pattern: regexp.MustCompile(`(?i)(?:exp|expire|expiry)=(\d+)`),
		Extract: unixSeconds,
	},
	{
		Name:    "iso-date",
		Pattern: regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
		Extract: capture,
	},
	{
		Name:    "unix-timestamp",
		Pattern: regexp.MustCompile(`\b(1\d{9})\b`),
		Extract: unixSeconds,
	},
}

func firstMatch(rules []Rule, s string, f formatter) string {
	for _, r := range rules {
		match := r.Pattern.FindStringSubmatch(s)
		if match == nil {
			continue
		}
		if v, ok := r.Extract(match, f); ok {
			return v
		}
	}
	return ""
}
