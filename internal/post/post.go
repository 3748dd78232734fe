// Package post models blog posts as stored by the CMS: markdown with an
// optional YAML front matter block.
package post

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shiinama/blog-sub000/internal/toc"
	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

// ErrFrontMatter is returned when the front matter block is not valid YAML.
var ErrFrontMatter = errors.New("invalid front matter")

// Post is a single article in one locale.
type Post struct {
	Title       string    `yaml:"title" json:"title"`
	Slug        string    `yaml:"slug" json:"slug"`
	Locale      string    `yaml:"locale" json:"locale"`
	Summary     string    `yaml:"summary" json:"summary,omitempty"`
	Tags        []string  `yaml:"tags" json:"tags,omitempty"`
	Premium     bool      `yaml:"premium" json:"premium"`
	PublishedAt time.Time `yaml:"published_at" json:"published_at,omitzero"`
	Content     string    `yaml:"-" json:"content"`
}

// Parse reads a post from its stored source. Missing fields are derived:
// the title from the first level-1 heading and the slug from the title.
func Parse(source string) (Post, error) {
	var p Post
	meta, body, ok := splitFrontMatter(source)
	if ok {
		if err := yaml.Unmarshal([]byte(meta), &p); err != nil {
			return Post{}, fmt.Errorf("%w: %v", ErrFrontMatter, err)
		}
	}
	p.Content = body

	if p.Title == "" {
		p.Title = toc.Title(body)
	}
	if p.Slug == "" {
		p.Slug = URLSlug(p.Title, p.Locale)
	}
	return p, nil
}

// URLSlug returns an ASCII slug for a post URL. Non-Latin titles are
// transliterated. An empty result becomes "post".
func URLSlug(title, locale string) string {
	s := slug.MakeLang(title, strings.ToLower(locale))
	if s == "" {
		return "post"
	}
	return s
}

// splitFrontMatter separates a leading "---" delimited block from the body.
// An unterminated block is treated as ordinary content.
func splitFrontMatter(source string) (meta, body string, ok bool) {
	s := strings.TrimPrefix(source, "\ufeff")
	first, rest, found := strings.Cut(s, "\n")
	if !found || strings.TrimRight(first, "\r") != "---" {
		return "", source, false
	}

	offset := 0
	for offset <= len(rest) {
		line, _, more := strings.Cut(rest[offset:], "\n")
		if strings.TrimRight(line, "\r") == "---" {
			bodyStart := offset + len(line)
			if more {
				bodyStart++
			}
			return rest[:offset], rest[bodyStart:], true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return "", source, false
}
