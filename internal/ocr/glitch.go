package ocr

import "regexp"

// Strict, conservative rewrites for recognition glitches observed on fixed
// brand terms. Word-boundary anchored so parts of other words are never
// altered; a trailing ® is preserved.
var brandGlitches = []struct {
	re   *regexp.Regexp
	repl string
}{
	// 1EBEA / IEBEA / lEBEA / |EBEA -> TEBEA
	{regexp.MustCompile(`(?i)\b[1Il|]EBEA(\s*®)?\b`), "TEBEA${1}"},
	// more patterns can be added here as they are observed
}

// NormalizeBrandGlitches rewrites known OCR confusions of brand tokens to
// their canonical spelling.
func NormalizeBrandGlitches(text string) string {
	for _, g := range brandGlitches {
		text = g.re.ReplaceAllString(text, g.repl)
	}
	return text
}
