// Package render turns post markdown into HTML whose heading ids match the
// URLs produced by the toc package.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Shiinama/blog-sub000/internal/anchor"
	"github.com/Shiinama/blog-sub000/internal/toc"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

type options struct {
	unsafe bool
}

// Option configures a Renderer.
type Option func(*options)

// WithUnsafeHTML lets raw HTML in the markdown through to the output.
func WithUnsafeHTML() Option {
	return func(o *options) { o.unsafe = true }
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var rendererOpts []renderer.Option
	if o.unsafe {
		rendererOpts = append(rendererOpts, gmhtml.WithUnsafe())
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(toc.Extensions...),
			goldmark.WithParserOptions(
				parser.WithASTTransformers(util.Prioritized(headingIDs{}, 100)),
			),
			goldmark.WithRendererOptions(rendererOpts...),
		),
	}
}

// Render converts markdown to HTML.
func (r *Renderer) Render(source string) (string, error) {
	out, _, err := r.Document(source)
	return out, err
}

// Document renders markdown and builds its table of contents from the same
// parse, so the outline and the heading ids cannot disagree.
func (r *Renderer) Document(source string) (string, []toc.Entry, error) {
	src := []byte(source)
	doc := r.md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return "", nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), toc.FromAST(doc, src), nil
}

// Audit renders markdown and returns the TOC URLs that do not resolve to a
// heading id in the output. An empty result means every link works.
func (r *Renderer) Audit(source string) ([]string, error) {
	out, entries, err := r.Document(source)
	if err != nil {
		return nil, err
	}
	ids, err := HeadingIDs(out)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}
	missing := []string{}
	for _, e := range toc.Flatten(entries) {
		if !present[strings.TrimPrefix(e.URL, "#")] {
			missing = append(missing, e.URL)
		}
	}
	return missing, nil
}

// HeadingIDs returns the id attribute of every h1-h6 element in document
// order. Headings without an id contribute an empty string.
func HeadingIDs(document string) ([]string, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	ids := []string{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && headingLevel(n.Data) > 0 {
			ids = append(ids, attr(n, "id"))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return ids, nil
}

// headingIDs assigns every titled heading the anchor the TOC links to.
type headingIDs struct{}

func (headingIDs) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	src := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if id := anchor.Slugify(toc.HeadingText(h, src)); id != "" {
			h.SetAttributeString("id", []byte(id))
		}
		return ast.WalkSkipChildren, nil
	})
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
