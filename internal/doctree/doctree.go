package doctree

// FlagBold is the span flag bit that marks a bold font weight.
const FlagBold uint32 = 1 << 4

// Document is a parsed document as emitted by a format parser.
type Document struct {
	Title string  // Document title from metadata or filename
	Pages []*Page // Pages in document order
}

// Page is a single page of a document.
type Page struct {
	Number int      // 1-based page number
	Width  float64  // Page width in document units (0 if N/A)
	Height float64  // Page height in document units (0 if N/A)
	Blocks []*Block // Blocks in emission order
}

// Block is a group of lines the parser considers one unit.
type Block struct {
	Lines []*Line
}

// Line is one visually contiguous line of text.
type Line struct {
	Spans []Span
}

// Span is the smallest formatted run of text: one font, one size.
type Span struct {
	Text  string
	Size  float64 // Point size; <= 0 when the parser could not measure it
	Flags uint32  // Bit field; see FlagBold
	BBox  Rect    // Top-left origin, y grows downward
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Bold reports whether the span carries the bold flag.
func (s Span) Bold() bool {
	return s.Flags&FlagBold != 0
}

// LineCount returns the number of lines across all pages.
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Pages {
		for _, b := range p.Blocks {
			n += len(b.Lines)
		}
	}
	return n
}

// AddLine appends spans as a single-line block to the page.
func (p *Page) AddLine(spans ...Span) {
	if len(spans) == 0 {
		return
	}
	p.Blocks = append(p.Blocks, &Block{Lines: []*Line{{Spans: spans}}})
}
