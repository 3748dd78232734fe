package post

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParse_FrontMatter(t *testing.T) {
	src := `---
title: Building a Blog
slug: building-a-blog
locale: en
summary: How this site works.
tags: [go, markdown]
premium: true
published_at: 2024-05-01
---
# Ignored Heading

Body text.
`
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Building a Blog" {
		t.Errorf("expected title %q, got %q", "Building a Blog", p.Title)
	}
	if p.Slug != "building-a-blog" {
		t.Errorf("expected slug %q, got %q", "building-a-blog", p.Slug)
	}
	if !p.Premium {
		t.Error("expected premium post")
	}
	if len(p.Tags) != 2 || p.Tags[0] != "go" || p.Tags[1] != "markdown" {
		t.Errorf("unexpected tags %v", p.Tags)
	}
	if !p.PublishedAt.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected published_at %v", p.PublishedAt)
	}
	if !strings.HasPrefix(p.Content, "# Ignored Heading") {
		t.Errorf("expected body to start after front matter, got %q", p.Content)
	}
}

func TestParse_DerivedFields(t *testing.T) {
	p, err := Parse("# Hello, World!\n\nText.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Hello, World!" {
		t.Errorf("expected title from heading, got %q", p.Title)
	}
	if p.Slug != "hello-world" {
		t.Errorf("expected slug %q, got %q", "hello-world", p.Slug)
	}
	if p.Premium {
		t.Error("expected free post by default")
	}
}

func TestParse_InvalidFrontMatter(t *testing.T) {
	_, err := Parse("---\ntitle: [unclosed\n---\nbody")
	if !errors.Is(err, ErrFrontMatter) {
		t.Fatalf("expected ErrFrontMatter, got %v", err)
	}
}

func TestParse_UnterminatedFrontMatterIsContent(t *testing.T) {
	src := "---\n\nJust a thematic break above."
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Content != src {
		t.Errorf("expected content unchanged, got %q", p.Content)
	}
	if p.Slug != "post" {
		t.Errorf("expected fallback slug, got %q", p.Slug)
	}
}

func TestParse_CRLFFrontMatter(t *testing.T) {
	p, err := Parse("---\r\ntitle: Windows\r\n---\r\nbody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Windows" {
		t.Errorf("expected title %q, got %q", "Windows", p.Title)
	}
	if p.Content != "body" {
		t.Errorf("expected body %q, got %q", "body", p.Content)
	}
}

func TestURLSlug(t *testing.T) {
	tests := []struct {
		title  string
		locale string
		want   string
	}{
		{"Hello World", "en", "hello-world"},
		{"Tom & Jerry", "en", "tom-and-jerry"},
		{"", "en", "post"},
		{"!!!", "", "post"},
	}
	for _, tt := range tests {
		if got := URLSlug(tt.title, tt.locale); got != tt.want {
			t.Errorf("URLSlug(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestURLSlug_TransliteratesCJK(t *testing.T) {
	got := URLSlug("你好世界", "zh")
	if got == "" || got == "post" {
		t.Fatalf("expected transliterated slug, got %q", got)
	}
	for _, r := range got {
		if r > 127 {
			t.Fatalf("expected ASCII slug, got %q", got)
		}
	}
}
