package extract

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/cemil-kerimoglu/pdf-extractor/constants"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/match"
)

var (
	// LV positions like "6.1.2310." or "5.3.2110.", tolerant of whitespace
	// around the dots ("6 . 1 . 2320 .")
	reLVPosition = regexp.MustCompile(`\b\d+(?:\s*\.\s*\d+)+\s*\.`)
	// quantity + unit like "10,000 St" or "45,000 m"; 'St' may still appear
	// as 'S t'
	reQtyUnit = regexp.MustCompile(`(?i)(\d{1,3}(?:[.,]\d{3})*)\s*(S\s*t|St|m)\b`)
	// grouping separators inside a matched quantity
	reQtySep = regexp.MustCompile(`[.,]`)
)

// scanContext is the carried state of the sequential line scan: the page
// ordinal of the most recent marker and the most recent LV position token.
type scanContext struct {
	page int
	lv   string
}

// Scanner recovers vendor mentions from a document's page-marked text blob.
// It favors precision: lines whose family cannot be determined are dropped,
// as are lines that co-mention a competitor.
type Scanner struct {
	catalog       match.Catalog
	lookahead     int
	maxSourceLine int
	logger        *slog.Logger
}

func NewScanner(catalog match.Catalog, lookahead, maxSourceLine int, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	if lookahead < 0 {
		lookahead = 3
	}
	if maxSourceLine <= 0 {
		maxSourceLine = 500
	}
	return &Scanner{catalog: catalog, lookahead: lookahead, maxSourceLine: maxSourceLine, logger: logger}
}

// Scan walks the blob line by line and returns the extraction records for
// one document.
func (s *Scanner) Scan(document, text string) []Record {
	lines := strings.Split(text, "\n")
	sc := scanContext{}
	var records []Record

	for idx, raw := range lines {
		line := strings.TrimSpace(raw)

		if n, ok := constants.ParsePageMarker(line); ok {
			sc.page = n
			continue
		}

		cleaned := match.CleanLine(line)
		lower := strings.ToLower(cleaned)

		if m := reLVPosition.FindString(cleaned); m != "" {
			sc.lv = m
		}

		if !s.catalog.MentionsVendor(lower) {
			continue
		}
		if s.catalog.MentionsCompetitor(lower) {
			continue
		}

		rule, ok := s.detectFamily(cleaned, idx, lines)
		if !ok {
			// vendor mention without a recognizable family: drop it
			continue
		}

		code := rule.ExtractCode(s.codeSegment(cleaned, idx, lines))
		qty, unit := s.findQuantity(lines, idx)

		if qty == nil && code == "" {
			continue
		}

		rec := newRecord(document, sc.page, sc.lv, rule.Name, code, qty, unit, line, s.maxSourceLine)
		records = append(records, rec)

		s.logger.Debug("record emitted",
			"document", document, "page", sc.page, "lv", sc.lv,
			"family", rule.Name, "code", code, "unit", unit)
	}

	return records
}

// detectFamily tests the current line, then the immediately preceding one,
// against the family rules.
func (s *Scanner) detectFamily(cleaned string, idx int, lines []string) (match.FamilyRule, bool) {
	if rule, ok := s.catalog.MatchFamily(cleaned); ok {
		return rule, true
	}
	if idx > 0 {
		prev := match.CleanLine(strings.TrimSpace(lines[idx-1]))
		if rule, ok := s.catalog.MatchFamily(prev); ok {
			return rule, true
		}
	}
	return match.FamilyRule{}, false
}

// codeSegment joins the current line with the next one so codes broken
// across a line wrap still match.
func (s *Scanner) codeSegment(cleaned string, idx int, lines []string) string {
	if idx+1 < len(lines) {
		return cleaned + " " + match.CleanLine(strings.TrimSpace(lines[idx+1]))
	}
	return cleaned
}

// findQuantity searches the current line and the lookahead window for the
// first quantity+unit pair. Grouping separators are stripped from the
// quantity; a spaced 'S t' unit is compacted.
func (s *Scanner) findQuantity(lines []string, idx int) (*int, string) {
	end := idx + 1 + s.lookahead
	if end > len(lines) {
		end = len(lines)
	}
	for j := idx; j < end; j++ {
		cj := match.CleanLine(lines[j])
		m := reQtyUnit.FindStringSubmatch(cj)
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(reQtySep.ReplaceAllString(m[1], ""))
		if err != nil {
			continue
		}
		return &qty, canonicalUnit(strings.ReplaceAll(m[2], " ", ""))
	}
	return nil, ""
}

// canonicalUnit folds OCR casing variants onto the exported unit codes.
func canonicalUnit(unit string) string {
	switch {
	case strings.EqualFold(unit, constants.UnitPiece):
		return constants.UnitPiece
	case strings.EqualFold(unit, constants.UnitMeter):
		return constants.UnitMeter
	}
	return unit
}
