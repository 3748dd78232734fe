// Package toc builds the nested table of contents shown beside a post.
//
// Headings of level 2, 3 and 4 take part. A level-3 heading nests under the
// most recent level-2 entry; a level-4 heading nests under the most recent
// level-3 entry, else the most recent level-2 entry. Headings that have no
// parent to attach to are appended at the top level.
package toc

import (
	"bytes"
	"strings"

	"github.com/Shiinama/blog-sub000/internal/anchor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Extensions is the markdown dialect posts are written in. The renderer
// parses with the same set so headings are read identically on both sides.
var Extensions = []goldmark.Extender{extension.GFM}

var markdown = goldmark.New(goldmark.WithExtensions(Extensions...))

// Entry is one heading in the outline.
type Entry struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Items []Entry `json:"items"`
}

// Build parses markdown and returns its heading outline.
// The result is never nil; a document without qualifying headings yields an empty slice.
func Build(source string) []Entry {
	src := []byte(source)
	doc := markdown.Parser().Parse(text.NewReader(src))
	return FromAST(doc, src)
}

// FromAST builds the outline from an already parsed document.
func FromAST(doc ast.Node, src []byte) []Entry {
	// Entries are built as pointers so children can be appended after the
	// parent was placed; they are flattened into values at the end.
	type node struct {
		title string
		url   string
		items []*node
	}

	var (
		top    []*node
		lastH2 *node
		lastH3 *node
	)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level < 2 || h.Level > 4 {
			return ast.WalkSkipChildren, nil
		}
		title := HeadingText(h, src)
		if title == "" {
			return ast.WalkSkipChildren, nil
		}
		e := &node{title: title, url: anchor.Fragment(title)}

		switch h.Level {
		case 2:
			top = append(top, e)
			lastH2 = e
			lastH3 = nil
		case 3:
			if lastH2 != nil {
				lastH2.items = append(lastH2.items, e)
				lastH3 = e
			} else {
				top = append(top, e)
			}
		case 4:
			switch {
			case lastH3 != nil:
				lastH3.items = append(lastH3.items, e)
			case lastH2 != nil:
				lastH2.items = append(lastH2.items, e)
			default:
				top = append(top, e)
			}
		}
		return ast.WalkSkipChildren, nil
	})

	var flatten func(nodes []*node) []Entry
	flatten = func(nodes []*node) []Entry {
		out := make([]Entry, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, Entry{Title: n.title, URL: n.url, Items: flatten(n.items)})
		}
		return out
	}
	return flatten(top)
}

// HeadingText returns the trimmed text of a heading's direct text children,
// with backslash escapes and character references decoded as they are in the
// rendered heading. Inline children that are not text (code spans, emphasis,
// links, images) are skipped.
func HeadingText(h *ast.Heading, src []byte) string {
	var buf bytes.Buffer
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(decode(t.Segment.Value(src)))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
	}
	return strings.TrimSpace(buf.String())
}

func decode(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}

// Flatten returns every entry of the outline in document order.
func Flatten(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		out = append(out, e)
		out = append(out, Flatten(e.Items)...)
	}
	return out
}

// Title returns the text of the first level-1 heading, or "" if there is none.
func Title(source string) string {
	src := []byte(source)
	doc := markdown.Parser().Parse(text.NewReader(src))
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 1 {
			if t := HeadingText(h, src); t != "" {
				title = t
				return ast.WalkStop, nil
			}
		}
		return ast.WalkSkipChildren, nil
	})
	return title
}
