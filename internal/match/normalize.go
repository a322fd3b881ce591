package match

import "regexp"

// Canonical tokens repaired before matching, in order. Tronsole must precede
// Tronsolen so the longer token can reassemble from the shorter repair.
var canonicalTokens = []string{
	"Schöck",
	"Schoeck",
	"Isokorb",
	"Tronsole",
	"Tronsolen",
	"Stacon",
	"Brandschutzmanschette",
}

type tokenFix struct {
	re   *regexp.Regexp
	repl string
}

var canonicalFixes = func() []tokenFix {
	fixes := make([]tokenFix, 0, len(canonicalTokens))
	for _, t := range canonicalTokens {
		fixes = append(fixes, tokenFix{re: Token(t), repl: t})
	}
	return fixes
}()

var (
	reUnitSt = regexp.MustCompile(`(?i)S\s*t\b`)
	reHyphen = regexp.MustCompile(`\s*-\s*`)
	// a digit gap: left digit, whitespace, right digit
	reDigitGap = regexp.MustCompile(`\d(\s+)\d`)
	// a quantity+unit pair starting at the right digit of a gap; such gaps
	// separate a code from its quantity and must survive the collapse
	reQtyBoundary = regexp.MustCompile(`(?i)^\d{1,3}(?:[.,]\d{3})*\s*(?:S\s*t|St|m)\b`)
)

// CleanLine deglitches a line for matching without touching the stored text:
// known tokens are repaired even with stray inter-letter spaces, the 'St'
// unit written as 'S t' is collapsed, hyphens inside codes are tightened and
// spaces between consecutive digits removed ('REI1 2 0' -> 'REI120').
// Idempotent: CleanLine(CleanLine(x)) == CleanLine(x).
func CleanLine(line string) string {
	fixed := line

	for _, f := range canonicalFixes {
		fixed = f.re.ReplaceAllString(fixed, f.repl)
	}

	fixed = reUnitSt.ReplaceAllString(fixed, "St")
	fixed = reHyphen.ReplaceAllString(fixed, "-")
	fixed = collapseDigitGaps(fixed)

	return fixed
}

// collapseDigitGaps removes whitespace between consecutive digits, except
// where the right-hand side starts a quantity+unit pair ("H220 10,000 St"
// keeps its gap so the code and the quantity stay distinct tokens).
func collapseDigitGaps(s string) string {
	for {
		gap := nextMergeableGap(s)
		if gap == nil {
			return s
		}
		s = s[:gap[0]] + s[gap[1]:]
	}
}

func nextMergeableGap(s string) []int {
	start := 0
	for {
		m := reDigitGap.FindStringSubmatchIndex(s[start:])
		if m == nil {
			return nil
		}
		gapStart, gapEnd := start+m[2], start+m[3]
		if reQtyBoundary.MatchString(s[gapEnd:]) {
			// resume at the right digit; it may open the next gap
			start = gapEnd
			continue
		}
		return []int{gapStart, gapEnd}
	}
}
