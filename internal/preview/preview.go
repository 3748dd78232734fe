// Package preview cuts premium post content down to the part shown in
// front of the paywall.
package preview

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultRatio is the share of words visible to readers without access.
const DefaultRatio = 0.3

const fence = "```"

// Build returns the first ratio share of content's words, keeping the
// original whitespace. An unclosed code fence at the cut is closed.
//
// At least one word is always kept. NaN or non-positive ratios keep one word,
// ratios above 1 keep everything.
func Build(content string, ratio float64) string {
	content = strings.TrimSpace(content)
	parts := tokenize(content)

	visible := VisibleCount(countWords(parts), ratio)

	var b strings.Builder
	words := 0
	for _, p := range parts {
		b.WriteString(p)
		if !isSpace(p) {
			words++
			if words >= visible {
				break
			}
		}
	}

	out := b.String()
	if strings.Count(out, fence)%2 != 0 {
		out += "\n" + fence
	}
	return out
}

// VisibleCount returns how many of total words a preview at ratio keeps.
func VisibleCount(total int, ratio float64) int {
	switch {
	case math.IsNaN(ratio) || ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	n := int(math.Floor(float64(total) * ratio))
	if n < 1 {
		n = 1
	}
	return n
}

// VisibleWords returns how many words of content Build keeps at ratio. Unlike
// counting the words of the preview itself, it ignores the fence Build may
// append to close an open code block.
func VisibleWords(content string, ratio float64) int {
	total := WordCount(content)
	return min(VisibleCount(total, ratio), total)
}

// WordCount returns the number of whitespace-separated words in content.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// tokenize splits s into alternating whitespace and non-whitespace runs.
// Joining the runs reproduces s exactly.
func tokenize(s string) []string {
	var parts []string
	start := 0
	inSpace := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if i > start && space != inSpace {
			parts = append(parts, s[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

func countWords(parts []string) int {
	n := 0
	for _, p := range parts {
		if !isSpace(p) {
			n++
		}
	}
	return n
}

func isSpace(token string) bool {
	r, _ := utf8.DecodeRuneInString(token)
	return unicode.IsSpace(r)
}
