package post

import (
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Locales describes the languages the blog is published in. The default
// locale is served without a path prefix.
type Locales struct {
	Default   string
	Supported []string

	matcher language.Matcher
}

// NewLocales builds a Locales. The default locale is always supported.
func NewLocales(def string, supported []string) Locales {
	def = strings.ToLower(strings.TrimSpace(def))
	ordered := []string{def}
	for _, s := range supported {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && s != def && !contains(ordered, s) {
			ordered = append(ordered, s)
		}
	}

	tags := make([]language.Tag, 0, len(ordered))
	for _, s := range ordered {
		tags = append(tags, language.Make(s))
	}
	return Locales{
		Default:   def,
		Supported: ordered,
		matcher:   language.NewMatcher(tags),
	}
}

// Resolve maps a requested locale or Accept-Language value to a supported
// locale, falling back to the default.
func (l Locales) Resolve(requested string) string {
	if s := strings.ToLower(strings.TrimSpace(requested)); contains(l.Supported, s) {
		return s
	}
	if requested == "" || l.matcher == nil {
		return l.Default
	}
	_, idx := language.MatchStrings(l.matcher, requested)
	if idx < 0 || idx >= len(l.Supported) {
		return l.Default
	}
	return l.Supported[idx]
}

// Path returns the public URL path of a post.
func (l Locales) Path(locale, postSlug string) string {
	locale = l.Resolve(locale)
	p := "/posts/" + url.PathEscape(postSlug)
	if locale == l.Default {
		return p
	}
	return "/" + locale + p
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
