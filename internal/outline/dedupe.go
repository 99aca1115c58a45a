package outline

import "strings"

type dedupeKey struct {
	text string
	page int
}

// Dedupe drops repeated (case-insensitive text, page) pairs, keeping the
// first occurrence and the original order.
func Dedupe(cands []Candidate) []Entry {
	seen := make(map[dedupeKey]struct{}, len(cands))
	entries := make([]Entry, 0, len(cands))
	for _, c := range cands {
		key := dedupeKey{text: strings.ToLower(c.Text), page: c.Page}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, Entry{Text: c.Text, Level: c.Level, Page: c.Page})
	}
	return entries
}
