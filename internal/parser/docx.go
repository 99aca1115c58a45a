package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Explicit run sizes and bold runs are kept;
// heading styles fill in when a run has no direct formatting.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	parsed, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, unreadable("parse docx", err)
	}

	doc := &doctree.Document{Title: baseTitle(filename)}
	out := newLayout(doc)

	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if spans := docxParagraphSpans(para); len(spans) > 0 {
			out.line(spans...)
		}
	}

	return doc, nil
}

func docxParagraphSpans(para *docx.Paragraph) []doctree.Span {
	level := docxHeadingLevel(para)
	size := bodySize
	if level > 0 {
		size = headingSize(level)
	}

	var spans []doctree.Span
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
		if strings.TrimSpace(buf.String()) == "" {
			continue
		}

		span := doctree.Span{Text: buf.String(), Size: size}
		if level > 0 {
			span.Flags |= doctree.FlagBold
		}
		if props := run.RunProperties; props != nil {
			if props.Bold != nil {
				span.Flags |= doctree.FlagBold
			}
			if props.Size != nil {
				// w:sz is in half-points.
				if half, err := strconv.ParseFloat(props.Size.Val, 64); err == nil && half > 0 {
					span.Size = half / 2
				}
			}
		}
		// Word splits runs mid-word; only a formatting change starts a span.
		if n := len(spans); n > 0 && spans[n-1].Size == span.Size && spans[n-1].Flags == span.Flags {
			spans[n-1].Text += span.Text
			continue
		}
		spans = append(spans, span)
	}
	return spans
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	switch style {
	case "title", "heading1":
		return 1
	case "subtitle", "heading2":
		return 2
	case "heading3":
		return 3
	case "heading4", "heading5", "heading6":
		return 4
	}
	return 0
}
