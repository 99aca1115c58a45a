package outline

import (
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// Aggregate turns every line of the document into a TextBlock, keeping the
// parser's emission order. Lines with no text are dropped.
func Aggregate(doc *doctree.Document) []TextBlock {
	if doc == nil {
		return nil
	}
	var blocks []TextBlock
	for i, page := range doc.Pages {
		if page == nil {
			continue
		}
		num := page.Number
		if num <= 0 {
			num = i + 1
		}
		for _, b := range page.Blocks {
			for _, line := range b.Lines {
				if tb, ok := aggregateLine(line, num); ok {
					blocks = append(blocks, tb)
				}
			}
		}
	}
	return blocks
}

func aggregateLine(line *doctree.Line, page int) (TextBlock, bool) {
	if line == nil {
		return TextBlock{}, false
	}
	tb := TextBlock{Page: page}
	parts := make([]string, 0, len(line.Spans))
	for _, span := range line.Spans {
		text := Normalize(span.Text)
		if text == "" {
			continue
		}
		if len(parts) == 0 {
			tb.Y = span.BBox.Y0
		}
		parts = append(parts, text)
		tb.Size = max(tb.Size, span.Size)
		tb.Bold = tb.Bold || span.Bold()
	}
	tb.Text = Normalize(strings.Join(parts, " "))
	return tb, tb.Text != ""
}
