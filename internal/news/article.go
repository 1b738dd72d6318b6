// Package news holds the pure core of the briefing pipeline: the Article
// model, relevance filtering, deduplication and representative selection.
// Nothing in this package performs I/O.
package news

import (
	"net/url"
	"strings"
	"time"
	"unicode"
)

// Article is one normalized news item produced by ingestion.
type Article struct {
	Title        string
	Summary      string
	Link         string
	CanonicalURL string
	Published    time.Time // zero when the feed date was missing or unparseable
	Source       string
	Category     string
}

// trackingParams are query parameters stripped during URL canonicalization.
var trackingParams = map[string]bool{
	"gclid":  true,
	"fbclid": true,
	"ref":    true,
	"mc_cid": true,
	"mc_eid": true,
}

// CanonicalizeURL drops the fragment and known tracking query parameters.
// It never fails: anything that does not parse is returned unmodified.
func CanonicalizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""

	q := u.Query()
	for key := range q {
		if trackingParams[key] || strings.HasPrefix(key, "utm_") {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// NormalizeTitle lowercases, strips punctuation and collapses whitespace so
// near-identical headlines from different feeds compare equal.
func NormalizeTitle(title string) string {
	lowered := strings.ToLower(title)
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return r
	}, lowered)
	return strings.Join(strings.Fields(mapped), " ")
}

// IdentityKey is the deduplication identity of an article: normalized title
// plus the canonical URL when one exists.
func (a Article) IdentityKey() string {
	key := NormalizeTitle(a.Title)
	if a.CanonicalURL != "" {
		key += "|" + a.CanonicalURL
	}
	return key
}
