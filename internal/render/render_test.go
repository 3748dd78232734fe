package render

import (
	"strings"
	"testing"

	"github.com/Shiinama/blog-sub000/internal/toc"
)

const sample = `# Post Title

Intro paragraph.

## Getting Started

### Install & Configure

#### Über die CLI

## 快速开始

### Using ` + "`go test`" + ` today

##### Too deep

## What's new in v2.0?
`

func TestRender_HeadingIDs(t *testing.T) {
	r := New()
	out, err := r.Render(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		`<h1 id="post-title">Post Title</h1>`,
		`<h2 id="getting-started">Getting Started</h2>`,
		`<h3 id="install-and-configure">`,
		`<h4 id="über-die-cli">Über die CLI</h4>`,
		`<h2 id="快速开始">快速开始</h2>`,
		`<h3 id="using-today">`,
		`<h5 id="too-deep">Too deep</h5>`,
		`<h2 id="whats-new-in-v20">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestRender_TOCMatchesHeadingIDs(t *testing.T) {
	r := New()
	out, err := r.Render(sample)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	ids, err := HeadingIDs(out)
	if err != nil {
		t.Fatalf("heading ids: %v", err)
	}
	present := map[string]bool{}
	for _, id := range ids {
		present[id] = true
	}

	entries := toc.Flatten(toc.Build(sample))
	if len(entries) != 6 {
		t.Fatalf("expected 6 toc entries, got %d", len(entries))
	}
	for _, e := range entries {
		id := strings.TrimPrefix(e.URL, "#")
		if !present[id] {
			t.Errorf("toc url %q has no matching heading id in %v", e.URL, ids)
		}
	}
}

func TestDocument_TOCFromSameParse(t *testing.T) {
	r := New()
	_, entries, err := r.Document(sample)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	standalone := toc.Build(sample)
	if len(entries) != len(standalone) {
		t.Fatalf("expected %d top-level entries, got %d", len(standalone), len(entries))
	}
	for i := range entries {
		if entries[i].URL != standalone[i].URL {
			t.Errorf("entry %d: %q != %q", i, entries[i].URL, standalone[i].URL)
		}
	}
}

func TestAudit(t *testing.T) {
	r := New()
	missing, err := r.Audit(sample)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing anchors, got %v", missing)
	}
}

func TestRender_EscapedHeadingIDsMatchTOC(t *testing.T) {
	src := "## 1\\. Intro\n\n## Caf&eacute;\n\n## Tom &amp; Jerry\n"
	r := New()
	out, entries, err := r.Document(src)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	for _, want := range []string{
		`<h2 id="1-intro">1. Intro</h2>`,
		`<h2 id="café">`,
		`<h2 id="tom-and-jerry">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
	if entries[0].Title != "1. Intro" {
		t.Errorf("title = %q, want %q", entries[0].Title, "1. Intro")
	}
	missing, err := r.Audit(src)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("unresolved links: %v", missing)
	}
}

func TestAudit_PunctuationOnlyHeading(t *testing.T) {
	r := New()
	missing, err := r.Audit("## !!!\n\n## Next")
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("expected empty slug to resolve to an id-less heading, got %v", missing)
	}
}

func TestRender_EmptyHeadingHasNoID(t *testing.T) {
	out, err := New().Render("## ![logo](logo.png)\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "id=") {
		t.Errorf("expected no id attribute, got %s", out)
	}
}

func TestRender_UnsafeHTML(t *testing.T) {
	src := "<div class=\"note\">hi</div>\n"

	safe, err := New().Render(src)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(safe, `<div class="note">`) {
		t.Errorf("expected raw html to be omitted by default, got %s", safe)
	}

	unsafe, err := New(WithUnsafeHTML()).Render(src)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(unsafe, `<div class="note">hi</div>`) {
		t.Errorf("expected raw html passthrough, got %s", unsafe)
	}
}

func TestRender_GFMTable(t *testing.T) {
	out, err := New().Render("| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("expected a table, got %s", out)
	}
}

func TestHeadingIDs(t *testing.T) {
	ids, err := HeadingIDs(`<h2 id="a">A</h2><p>x</p><section><h3 id="b">B</h3></section><h4>C</h4>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b", ""}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, ids)
	}
}
