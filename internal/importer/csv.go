package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Shiinama/blog-sub000/internal/doctree"
)

// CSVParser turns a CSV file into a markdown table. The first row is the header.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree := &doctree.DocTree{Title: stem(filename)}
	if len(records) == 0 {
		return tree, nil
	}

	headers := records[0]
	var table strings.Builder
	writeRow(&table, headers, len(headers))
	table.WriteString("|")
	for range headers {
		table.WriteString(" --- |")
	}
	table.WriteString("\n")
	for _, row := range records[1:] {
		writeRow(&table, row, len(headers))
	}

	tree.Children = []*doctree.DocNode{{Text: table.String()}}
	return tree, nil
}

// writeRow writes one table row padded or cut to width cells.
func writeRow(b *strings.Builder, cells []string, width int) {
	b.WriteString("|")
	for i := 0; i < width; i++ {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(" " + escapeCell(cell) + " |")
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
