package importer

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Shiinama/blog-sub000/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "blog-import-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	return pdfTree(stem(filename), text), nil
}

var (
	pageNumber = regexp.MustCompile(`(?i)^(page\s+)?\d+(\s*(of|/)\s*\d+)?$`)
	digits     = regexp.MustCompile(`\d+`)
)

// pdfTree turns extracted page text into a post draft. Running headers and
// footers and bare page numbers are dropped, hard-wrapped lines are joined
// back into paragraphs, also across page breaks, and short standalone lines
// become level-2 sections.
func pdfTree(title, text string) *doctree.DocTree {
	var pages [][]string
	for _, page := range strings.Split(text, "\f") {
		lines := strings.Split(page, "\n")
		for i := range lines {
			lines[i] = strings.TrimSpace(lines[i])
		}
		pages = append(pages, lines)
	}
	running := runningLines(pages)

	b := newTreeBuilder()
	var para []string
	emit := func() {
		switch {
		case len(para) == 0:
			return
		case len(para) == 1 && isSectionLine(para[0]):
			b.heading(2, para[0])
		default:
			b.paragraph(escapeLine(joinWrapped(para)))
		}
		para = para[:0]
	}
	for _, lines := range pages {
		first, last, _ := edges(lines)
		for i, line := range lines {
			switch {
			case line == "":
				emit()
			case pageNumber.MatchString(line):
			case (i == first || i == last) && running[runningKey(line)]:
			default:
				para = append(para, line)
			}
		}
	}
	emit()

	tree := &doctree.DocTree{Title: title}
	b.finish(tree)
	return tree
}

// runningLines returns the lines that open or close at least half of the
// non-empty pages, keyed by runningKey.
func runningLines(pages [][]string) map[string]bool {
	counts := map[string]int{}
	nonEmpty := 0
	for _, lines := range pages {
		first, last, ok := edges(lines)
		if !ok {
			continue
		}
		nonEmpty++
		counts[runningKey(lines[first])]++
		if last != first {
			counts[runningKey(lines[last])]++
		}
	}
	running := map[string]bool{}
	for key, n := range counts {
		if n >= 2 && n*2 >= nonEmpty {
			running[key] = true
		}
	}
	return running
}

// runningKey ignores numbers so "Draft, page 3" matches "Draft, page 4".
func runningKey(line string) string {
	return digits.ReplaceAllString(line, "#")
}

func edges(lines []string) (first, last int, ok bool) {
	first, last = -1, -1
	for i, l := range lines {
		if l == "" {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last, first >= 0
}

func isSectionLine(line string) bool {
	if len(strings.Fields(line)) > 8 || utf8.RuneCountInString(line) > 60 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line)
	if !(unicode.IsLetter(r) || unicode.IsDigit(r)) || unicode.IsLower(r) {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(line)
	return !strings.ContainsRune(".,;:!?\"'", last)
}

// joinWrapped joins hard-wrapped lines, rejoining words hyphenated at a
// line end.
func joinWrapped(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			prev := lines[i-1]
			next, _ := utf8.DecodeRuneInString(line)
			if strings.HasSuffix(prev, "-") && len(prev) > 1 && unicode.IsLower(next) {
				s := b.String()
				b.Reset()
				b.WriteString(strings.TrimSuffix(s, "-"))
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(line)
	}
	return b.String()
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
