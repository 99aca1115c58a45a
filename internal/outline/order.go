package outline

import "sort"

// SortByLayout stably orders candidates top to bottom, page by page.
func SortByLayout(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Page != cands[j].Page {
			return cands[i].Page < cands[j].Page
		}
		return cands[i].Y < cands[j].Y
	})
}
