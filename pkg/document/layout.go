package document

import (
	"fmt"
	"strings"
)

// A4 in points, with the margins the layout works inside.
const (
	pageHeight  = 842.0
	marginTop   = 56.0
	marginLeft  = 50.0
	lineHeight  = 16.0
	titleSize   = 18
	metaSize    = 10
	labelSize   = 11
	valueSize   = 11
	wrapColumns = 88
)

type line struct {
	text   string
	size   int
	indent float64
}

// layout flattens a document into wrapped lines and splits them into pages.
// Pure string work, so tests can assert on it without producing a PDF.
func layout(doc Document) [][]line {
	var lines []line

	lines = append(lines, line{text: doc.Title, size: titleSize})
	if doc.Description != "" {
		for _, wrapped := range wrap(doc.Description, wrapColumns) {
			lines = append(lines, line{text: wrapped, size: metaSize})
		}
	}
	lines = append(lines,
		line{text: fmt.Sprintf("Submitted by %s <%s>", doc.RespondentName, doc.RespondentEmail), size: metaSize},
		line{text: doc.SubmittedAt.UTC().Format("January 2, 2006 15:04 UTC"), size: metaSize},
		line{text: "", size: metaSize},
	)

	for _, entry := range doc.Entries {
		lines = append(lines, line{text: entry.Label, size: labelSize})
		value := entry.Value
		if value == "" {
			value = "-"
		}
		for _, wrapped := range wrap(value, wrapColumns) {
			lines = append(lines, line{text: wrapped, size: valueSize, indent: 12})
		}
		lines = append(lines, line{text: "", size: valueSize})
	}

	usable := float64(pageHeight - 2*marginTop)
	perPage := int(usable / lineHeight)
	var pages [][]line
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}
	return pages
}

// wrap breaks text on word boundaries at the given column budget. Words
// longer than the budget are emitted on their own line unbroken.
func wrap(text string, columns int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var out []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > columns {
			out = append(out, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(out, current)
}
