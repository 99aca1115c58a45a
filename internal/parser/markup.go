package parser

import (
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// Markup formats carry heading levels but no typography. These sizes stand
// in for the fonts a renderer would use.
const (
	bodySize   = 11.0
	lineHeight = 14.0
)

func headingSize(level int) float64 {
	switch level {
	case 1:
		return 24
	case 2:
		return 18
	case 3:
		return 14
	}
	return 12
}

// layout lays markup out on a single page, one line per heading or source
// line, top to bottom.
type layout struct {
	page *doctree.Page
	y    float64
}

func newLayout(doc *doctree.Document) *layout {
	page := &doctree.Page{Number: 1}
	doc.Pages = append(doc.Pages, page)
	return &layout{page: page}
}

func (l *layout) heading(level int, text string) {
	l.line(doctree.Span{Text: text, Size: headingSize(level), Flags: doctree.FlagBold})
}

func (l *layout) paragraph(text string) {
	for _, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		l.line(doctree.Span{Text: ln, Size: bodySize})
	}
}

// line places spans on the next line, filling in their vertical position.
func (l *layout) line(spans ...doctree.Span) {
	for i := range spans {
		spans[i].BBox.Y0 = l.y
		spans[i].BBox.Y1 = l.y + spans[i].Size
	}
	l.page.AddLine(spans...)
	l.y += lineHeight
}
