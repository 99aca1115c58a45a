package parser

import (
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
)

type flatLine struct {
	page  int
	text  string
	size  float64
	bold  bool
	y     float64
	spans int
}

// flatten lists every line of the document in emission order.
func flatten(doc *doctree.Document) []flatLine {
	var out []flatLine
	for _, p := range doc.Pages {
		for _, b := range p.Blocks {
			for _, l := range b.Lines {
				fl := flatLine{page: p.Number, spans: len(l.Spans)}
				var parts []string
				for i, s := range l.Spans {
					if i == 0 {
						fl.y = s.BBox.Y0
					}
					parts = append(parts, s.Text)
					fl.size = max(fl.size, s.Size)
					fl.bold = fl.bold || s.Bold()
				}
				fl.text = strings.Join(parts, " ")
				out = append(out, fl)
			}
		}
	}
	return out
}

func lineTexts(doc *doctree.Document) []string {
	var out []string
	for _, l := range flatten(doc) {
		out = append(out, l.text)
	}
	return out
}
