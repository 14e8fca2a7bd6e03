// Package linkedin normalizes LinkedIn profile URLs into canonical IDs and
// locates the column of a spreadsheet row that holds them.
package linkedin

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ID is a canonical LinkedIn profile identifier: the lowercased, decoded
// token following "/in/" in a profile URL.
type ID string

// profilePattern captures the run after "/in/" up to the first '/', '?' or '#'.
var profilePattern = regexp.MustCompile(`(?i)/in/([^/?#]+)`)

// Decoded is the outcome of percent-decoding a path segment. When OK is false
// the segment held a malformed escape and Value is the raw input.
type Decoded struct {
	Value string
	OK    bool
}

// DecodeSegment percent-decodes s. Malformed escapes and sequences that do
// not decode to valid UTF-8 leave s unchanged with OK set to false. A '+' is
// kept literally.
func DecodeSegment(s string) Decoded {
	v, err := url.PathUnescape(s)
	if err != nil || !utf8.ValidString(v) {
		return Decoded{Value: s, OK: false}
	}
	return Decoded{Value: v, OK: true}
}

// ExtractID returns the canonical profile ID embedded in a URL-ish cell value.
// URLs that differ only by protocol, subdomain, trailing slash, query string
// or fragment yield the same ID. It reports false when the value is blank or
// has no "/in/<token>" segment.
func ExtractID(value string) (ID, bool) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", false
	}
	m := profilePattern.FindStringSubmatch(clean)
	if m == nil || m[1] == "" {
		return "", false
	}
	id := strings.TrimSpace(strings.ToLower(DecodeSegment(m[1]).Value))
	if id == "" {
		return "", false
	}
	return ID(id), true
}

// ExtractAny is ExtractID for cell values of unknown type. Only strings (and
// non-nil string pointers) can carry an ID; anything else is absent.
func ExtractAny(value any) (ID, bool) {
	switch v := value.(type) {
	case string:
		return ExtractID(v)
	case *string:
		if v == nil {
			return "", false
		}
		return ExtractID(*v)
	default:
		return "", false
	}
}
