package outline

import (
	"strings"
	"unicode/utf8"
)

// Characters that make up rule lines and leader dots.
const ruleChars = " .-\u2013\u2014"

// IsCandidate reports whether text could plausibly be a heading.
func (p Policy) IsCandidate(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if strings.Trim(text, ruleChars) == "" {
		return false
	}
	if utf8.RuneCountInString(text) < p.MinChars {
		return false
	}
	return len(strings.Fields(text)) <= p.MaxWords
}
