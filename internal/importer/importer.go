// Package importer converts uploaded documents into markdown drafts for the
// CMS editor.
package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Shiinama/blog-sub000/internal/doctree"
	"github.com/Shiinama/blog-sub000/internal/post"
	"github.com/Shiinama/blog-sub000/internal/preview"
	"github.com/Shiinama/blog-sub000/internal/toc"
)

// ErrUnsupported is returned for file types that cannot be imported.
var ErrUnsupported = errors.New("unsupported file type")

// Parser converts raw document bytes into a DocTree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// Options tunes individual parsers.
type Options struct {
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions that can be imported.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the parser for a filename. Markdown needs no parser and is
// handled by Import directly.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Draft is an imported document ready for editing.
type Draft struct {
	Filename string      `json:"filename"`
	Title    string      `json:"title"`
	Slug     string      `json:"slug"`
	Markdown string      `json:"markdown"`
	TOC      []toc.Entry `json:"toc"`
	Words    int         `json:"words"`
}

// Import reads a document and converts it into a markdown draft.
func Import(r io.Reader, filename string, opts Options) (Draft, error) {
	var title, md string

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		src, err := io.ReadAll(r)
		if err != nil {
			return Draft{}, fmt.Errorf("read %s: %w", filename, err)
		}
		md = string(src)
		title = toc.Title(md)
		if title == "" {
			title = stem(filename)
		}
	default:
		p, err := ForFile(filename, opts)
		if err != nil {
			return Draft{}, err
		}
		tree, err := p.Parse(r, filename)
		if err != nil {
			return Draft{}, fmt.Errorf("import %s: %w", filename, err)
		}
		if h1 := firstLevel(tree.Children, 1); h1 != "" {
			tree.Title = h1
		}
		title = tree.Title
		md = tree.Markdown()
	}

	return Draft{
		Filename: filename,
		Title:    title,
		Slug:     post.URLSlug(title, ""),
		Markdown: md,
		TOC:      toc.Build(md),
		Words:    preview.WordCount(md),
	}, nil
}

func firstLevel(nodes []*doctree.DocNode, level int) string {
	for _, n := range nodes {
		if n.Level == level && n.Title != "" {
			return n.Title
		}
		if t := firstLevel(n.Children, level); t != "" {
			return t
		}
	}
	return ""
}

func stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
