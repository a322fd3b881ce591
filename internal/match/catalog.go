package match

import (
	"regexp"
	"strings"

	"github.com/cemil-kerimoglu/pdf-extractor/constants"
)

// FamilyRule classifies a product family and knows how to pull its catalog
// code out of a text segment.
type FamilyRule struct {
	Name        string
	Token       *regexp.Regexp // fuzzy family-name matcher
	CodePattern *regexp.Regexp // nil when the family has no code shape
	CodeGroup   int            // submatch holding the code; 0 = whole match
	CodePrefix  string         // prepended to the captured code
}

// Catalog is the declarative match configuration: vendor spellings,
// competitor noise words and the family rules in detection priority order.
// Adding a family or spelling variant means editing data, not control flow.
type Catalog struct {
	VendorSpellings []string // lowercase
	Competitors     []string // lowercase substrings that disqualify a line
	Families        []FamilyRule
}

var (
	// Isokorb codes combine a lead block, a fire-rating marker and
	// height/width markers: K-M6-V1-REI120-CV35-X120-H220, Q V1 REI120 H80 X180
	reIsokorbCode = regexp.MustCompile(`(?i)(?:K-\w+|Q(?:\s*-?\s*V\d+)?)[-\s\w]*REI\d+[-\s\w]*?(?:CV\d+)?[-\s\w]*X\d+[-\s\w]*H\d+`)
	// Tronsole types are spelled out after a literal "Typ" label
	reTronsoleCode = regexp.MustCompile(`(?i)Typ[:\s]*([A-Z0-9/\-\s]+)`)
	// Stacon codes start with one of two fixed prefixes
	reStaconCode = regexp.MustCompile(`(?i)(SLD[^\s,;/]+|LS-Q[^\s,;/]+)`)
)

// DefaultCatalog returns the configured vendor, competitor and family set.
func DefaultCatalog() Catalog {
	return Catalog{
		VendorSpellings: []string{"schöck", "schoeck"},
		Competitors:     []string{"halfen", "hit", "tebea", "arbox"},
		Families: []FamilyRule{
			{
				Name:        constants.FamilyIsokorb,
				Token:       Token("Isokorb"),
				CodePattern: reIsokorbCode,
			},
			{
				Name:        constants.FamilyTronsole,
				Token:       Token("Tronsole"),
				CodePattern: reTronsoleCode,
				CodeGroup:   1,
				CodePrefix:  "Typ ",
			},
			{
				Name:        constants.FamilyStacon,
				Token:       Token("Stacon"),
				CodePattern: reStaconCode,
				CodeGroup:   1,
			},
			{
				// recognized as a family but carries no code shape of its own
				Name:  constants.FamilyTronsolen,
				Token: Token("Tronsolen"),
			},
		},
	}
}

// MentionsVendor reports whether the lowercased line contains any accepted
// vendor spelling.
func (c Catalog) MentionsVendor(lower string) bool {
	for _, v := range c.VendorSpellings {
		if strings.Contains(lower, v) {
			return true
		}
	}
	return false
}

// MentionsCompetitor reports whether the lowercased line names a competitor.
// Competitor co-mentions are noise, not the vendor's product.
func (c Catalog) MentionsCompetitor(lower string) bool {
	for _, w := range c.Competitors {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// MatchFamily tests the cleaned line against the family rules in priority
// order; the first match wins.
func (c Catalog) MatchFamily(cleaned string) (FamilyRule, bool) {
	for _, f := range c.Families {
		if f.Token.MatchString(cleaned) {
			return f, true
		}
	}
	return FamilyRule{}, false
}

// ExtractCode applies the family's code pattern to segment and returns the
// trimmed, prefixed code, or "" when the family has no pattern or no match.
func (r FamilyRule) ExtractCode(segment string) string {
	if r.CodePattern == nil {
		return ""
	}
	m := r.CodePattern.FindStringSubmatch(segment)
	if m == nil || r.CodeGroup >= len(m) {
		return ""
	}
	code := strings.TrimSpace(m[r.CodeGroup])
	if code == "" {
		return ""
	}
	return r.CodePrefix + code
}
