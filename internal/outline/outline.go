// Package outline builds a title and heading outline from the typography of
// a parsed document.
package outline

import "github.com/dgallion1/docoutline/internal/doctree"

// Build runs the full pipeline over doc. A document without usable text
// yields the fallback title and an empty outline.
func (p Policy) Build(doc *doctree.Document) Outline {
	blocks := Aggregate(doc)
	st, ok := p.ComputeStats(blocks)
	if !ok {
		return p.Empty()
	}

	var cands []Candidate
	for _, b := range blocks {
		if !p.IsCandidate(b.Text) {
			continue
		}
		level, ok := p.Classify(b, st)
		if !ok {
			continue
		}
		cands = append(cands, Candidate{TextBlock: b, Level: level})
	}

	SortByLayout(cands)
	entries := Dedupe(p.MergeAdjacent(cands))
	return Outline{Title: p.SelectTitle(entries), Entries: entries}
}

// Build runs the pipeline with DefaultPolicy.
func Build(doc *doctree.Document) Outline {
	return DefaultPolicy().Build(doc)
}

// SelectTitle returns the first entry's text or the fallback title.
func (p Policy) SelectTitle(entries []Entry) string {
	if len(entries) > 0 {
		return entries[0].Text
	}
	return p.FallbackTitle
}

// Empty is the result for a document without headings.
func (p Policy) Empty() Outline {
	return Outline{Title: p.FallbackTitle, Entries: []Entry{}}
}
