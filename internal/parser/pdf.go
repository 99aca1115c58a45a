package parser

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// US Letter, used when a page has no usable MediaBox.
const defaultPageTop = 792.0

// PDFParser handles PDF files. Glyph runs are grouped into lines by
// baseline and split into spans wherever the font changes.
type PDFParser struct {
	RowTolerance        float64 // Baseline drift allowed within one line, in points
	WordSpaceMultiplier float64 // Gap, as a fraction of font size, that starts a new word
}

// NewPDFParser returns a PDFParser with default tolerances.
func NewPDFParser() *PDFParser {
	return &PDFParser{
		RowTolerance:        3.0,
		WordSpaceMultiplier: 0.3,
	}
}

func (p *PDFParser) Parse(r io.Reader, filename string) (doc *doctree.Document, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	// ledongthuc/pdf panics on malformed objects and content streams.
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = unreadable("decode pdf", fmt.Errorf("%v", rec))
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, unreadable("open pdf", err)
	}

	doc = &doctree.Document{Title: baseTitle(filename)}
	if title := strings.TrimSpace(reader.Trailer().Key("Info").Key("Title").Text()); title != "" {
		doc.Title = title
	}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		out := &doctree.Page{Number: i}
		doc.Pages = append(doc.Pages, out)
		if page.V.IsNull() {
			continue
		}

		top := defaultPageTop
		if box, ok := mediaBox(page); ok {
			out.Width = box.X1 - box.X0
			out.Height = box.Y1 - box.Y0
			top = box.Y1
		}

		lb := &lineBuilder{
			page:    out,
			top:     top,
			tol:     p.RowTolerance,
			wordGap: p.WordSpaceMultiplier,
		}
		for _, t := range page.Content().Text {
			lb.add(t)
		}
		lb.flushLine()
	}

	return doc, nil
}

// mediaBox finds the page's MediaBox, which may be inherited from an
// ancestor in the page tree.
func mediaBox(page pdflib.Page) (doctree.Rect, bool) {
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			return doctree.Rect{
				X0: box.Index(0).Float64(),
				Y0: box.Index(1).Float64(),
				X1: box.Index(2).Float64(),
				Y1: box.Index(3).Float64(),
			}, true
		}
	}
	return doctree.Rect{}, false
}

// lineBuilder turns a page's glyph stream into lines of spans. Glyphs are
// taken in emission order; a baseline jump starts a new line.
type lineBuilder struct {
	page    *doctree.Page
	top     float64
	tol     float64
	wordGap float64

	line     []doctree.Span
	span     *doctree.Span
	font     string
	baseline float64
	end      float64
}

func (b *lineBuilder) add(t pdflib.Text) {
	if t.S == "" {
		return
	}
	if t.S == "\n" {
		b.flushLine()
		return
	}
	if b.span == nil || math.Abs(t.Y-b.baseline) > b.tol {
		b.flushLine()
		b.start(t)
		return
	}
	if t.Font != b.font || t.FontSize != b.span.Size {
		b.flushSpan()
		b.start(t)
		return
	}

	if gap := t.X - b.end; gap > b.wordGap*t.FontSize && t.S != " " && !strings.HasSuffix(b.span.Text, " ") {
		b.span.Text += " "
	}
	b.span.Text += t.S
	b.end = max(b.end, t.X+t.W)
	b.span.BBox.X1 = b.end
}

func (b *lineBuilder) start(t pdflib.Text) {
	// PDF space is bottom-up; spans are stored top-down.
	y0 := b.top - (t.Y + t.FontSize)
	b.span = &doctree.Span{
		Text:  t.S,
		Size:  t.FontSize,
		Flags: fontFlags(t.Font),
		BBox:  doctree.Rect{X0: t.X, Y0: y0, X1: t.X + t.W, Y1: y0 + t.FontSize},
	}
	b.font = t.Font
	b.baseline = t.Y
	b.end = t.X + t.W
}

func (b *lineBuilder) flushSpan() {
	if b.span != nil {
		b.line = append(b.line, *b.span)
		b.span = nil
	}
}

func (b *lineBuilder) flushLine() {
	b.flushSpan()
	if len(b.line) > 0 {
		b.page.AddLine(b.line...)
	}
	b.line = nil
}

var boldMarkers = []string{"bold", "black", "heavy", "semibold", "demi"}

// fontFlags derives span flags from a PDF base font name such as
// "ABCDEF+Arial-BoldMT".
func fontFlags(font string) uint32 {
	name := strings.ToLower(font)
	for _, m := range boldMarkers {
		if strings.Contains(name, m) {
			return doctree.FlagBold
		}
	}
	return 0
}
