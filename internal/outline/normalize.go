package outline

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const byteOrderMark = "\ufeff"

// Normalize applies NFKD, drops byte-order marks, collapses whitespace runs
// to a single space and trims the result.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFKD.String(text)
	text = strings.ReplaceAll(text, byteOrderMark, "")
	return strings.Join(strings.Fields(text), " ")
}
