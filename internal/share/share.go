// Package share extracts a usable URL from Web Share Target payloads.
// Share sheets are inconsistent about which field carries the link: some
// apps put it in url, others embed it in free text.
package share

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)

// Payload is the set of fields a share target POST may carry.
type Payload struct {
	URL   string `form:"url" json:"url"`
	Text  string `form:"text" json:"text"`
	Title string `form:"title" json:"title"`
}

// ExtractURL finds the shared link. The url field wins when it looks like
// a link; otherwise the first http(s) URL embedded in text or url is used.
// When the pattern scan finds nothing, a field that literally starts with
// "http" is forwarded whole; some apps share bare scheme-ish strings the
// pattern rejects. Returns "" when no link is present.
func ExtractURL(p Payload) string {
	if p.URL != "" && urlPattern.MatchString(p.URL) {
		return urlPattern.FindString(p.URL)
	}
	if match := urlPattern.FindString(p.Text); match != "" {
		return match
	}
	if match := urlPattern.FindString(p.Title); match != "" {
		return match
	}

	if strings.HasPrefix(p.URL, "http") {
		return p.URL
	}
	if strings.HasPrefix(p.Text, "http") {
		return p.Text
	}
	return ""
}
