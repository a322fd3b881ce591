package match

import (
	"regexp"
	"strings"
)

// Token builds a case-insensitive, word-boundary-anchored matcher for word
// that tolerates optional whitespace inserted between every character pair.
// 'Stacon' matches 'S t a c o n', 'S tacon', etc. This is the one shared
// counter to OCR artifacts that shatter tokens.
func Token(word string) *regexp.Regexp {
	runes := []rune(word)
	var b strings.Builder
	b.WriteString(`(?i)\b`)
	for i, r := range runes {
		b.WriteString(regexp.QuoteMeta(string(r)))
		if i < len(runes)-1 {
			b.WriteString(`\s*`)
		}
	}
	b.WriteString(`\b`)
	return regexp.MustCompile(b.String())
}
