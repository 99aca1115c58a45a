package outline

import (
	"math"
	"strings"
)

// MergeAdjacent joins vertically close candidates on the same page into one
// heading. The merged heading keeps the level, page and position of its
// first line. The input slice is not modified.
func (p Policy) MergeAdjacent(cands []Candidate) []Candidate {
	if len(cands) == 0 {
		return nil
	}
	merged := make([]Candidate, 0, len(cands))
	cur := cands[0]
	for _, next := range cands[1:] {
		if p.joins(cur, next) {
			cur.Text = Normalize(cur.Text + " " + next.Text)
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	return append(merged, cur)
}

func (p Policy) joins(cur, next Candidate) bool {
	if next.Page != cur.Page {
		return false
	}
	if math.Abs(next.Y-cur.Y) >= p.MergeDistance {
		return false
	}
	// Overlapping fragments of text already in the heading.
	return !strings.Contains(cur.Text, next.Text)
}
