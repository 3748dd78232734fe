package post

import (
	"fmt"

	"github.com/Shiinama/blog-sub000/internal/preview"
	"github.com/Shiinama/blog-sub000/internal/render"
	"github.com/Shiinama/blog-sub000/internal/toc"
)

// Viewer is the reader requesting a page.
type Viewer struct {
	Subscribed bool `json:"subscribed"`
	Admin      bool `json:"admin"`
}

// CanRead reports whether v may see the full content of p.
func CanRead(p Post, v Viewer) bool {
	return !p.Premium || v.Subscribed || v.Admin
}

// Page is a post ready to be displayed.
type Page struct {
	Title        string      `json:"title"`
	Slug         string      `json:"slug"`
	Locale       string      `json:"locale"`
	Path         string      `json:"path"`
	Summary      string      `json:"summary,omitempty"`
	Tags         []string    `json:"tags"`
	HTML         string      `json:"html"`
	TOC          []toc.Entry `json:"toc"`
	Gated        bool        `json:"gated"`
	Words        int         `json:"words"`
	VisibleWords int         `json:"visible_words"`
}

// Assembler turns posts into pages.
type Assembler struct {
	Renderer     *render.Renderer
	Locales      Locales
	PreviewRatio float64
}

// Assemble renders p for v. Readers without access get the paywall preview,
// and the TOC is built from the preview so that it only links to headings
// present on the page.
func (a *Assembler) Assemble(p Post, v Viewer) (Page, error) {
	body := p.Content
	words := preview.WordCount(p.Content)
	visible := words
	gated := !CanRead(p, v)
	if gated {
		body = preview.Build(p.Content, a.PreviewRatio)
		visible = preview.VisibleWords(p.Content, a.PreviewRatio)
	}

	out, entries, err := a.Renderer.Document(body)
	if err != nil {
		return Page{}, fmt.Errorf("assemble %q: %w", p.Slug, err)
	}

	locale := a.Locales.Resolve(p.Locale)
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return Page{
		Title:        p.Title,
		Slug:         p.Slug,
		Locale:       locale,
		Path:         a.Locales.Path(locale, p.Slug),
		Summary:      p.Summary,
		Tags:         tags,
		HTML:         out,
		TOC:          entries,
		Gated:        gated,
		Words:        words,
		VisibleWords: visible,
	}, nil
}
