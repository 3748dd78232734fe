package doctree

import "strings"

// DocTree is the root of an imported document.
type DocTree struct {
	Title    string     // Document title (from metadata, first H1 or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Level    int        // Source heading level, 0 if the source had none
	Text     string     // Text content of this node (may be empty for container nodes)
	Page     int        // Source page/line (0 if N/A)
	Children []*DocNode // Subsections
}

// Markdown renders the tree as a markdown draft.
//
// Headings keep their source level. Sections without one (PDF pages, CSV row
// groups) are placed one level below their parent, starting at level 2. The
// title becomes a level-1 heading unless the tree already has one.
func (t *DocTree) Markdown() string {
	var b strings.Builder
	if t.Title != "" && !hasLevel(t.Children, 1) {
		b.WriteString("# " + oneLine(t.Title) + "\n\n")
	}

	var walk func(nodes []*DocNode, parentLevel int)
	walk = func(nodes []*DocNode, parentLevel int) {
		for _, n := range nodes {
			level := parentLevel
			if n.Title != "" {
				level = n.Level
				if level <= 0 {
					level = parentLevel + 1
				}
				level = min(max(level, 1), 6)
				b.WriteString(strings.Repeat("#", level) + " " + oneLine(n.Title) + "\n\n")
			}
			if text := strings.TrimSpace(n.Text); text != "" {
				b.WriteString(text + "\n\n")
			}
			walk(n.Children, level)
		}
	}
	walk(t.Children, 1)

	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func hasLevel(nodes []*DocNode, level int) bool {
	for _, n := range nodes {
		if n.Level == level || hasLevel(n.Children, level) {
			return true
		}
	}
	return false
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
