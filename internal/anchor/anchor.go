// Package anchor generates the heading anchors shared by the table of
// contents and the HTML renderer. Both sides must call Slugify so that TOC
// links and heading ids stay identical.
package anchor

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	hyphens    = regexp.MustCompile(`-{2,}`)
)

// Slugify converts heading text into an anchor slug.
// Unicode letters and numbers survive; everything else except hyphens is dropped.
func Slugify(text string) string {
	// A Caser is stateful, so one is built per call.
	s := cases.Lower(language.Und).String(text)
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), "-")
	s = strings.ReplaceAll(s, "&", "-and-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Fragment returns the URL fragment ("#slug") for heading text.
func Fragment(text string) string {
	return "#" + Slugify(text)
}
