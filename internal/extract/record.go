package extract

import "unicode/utf8"

// Record is one extracted vendor mention. Immutable once emitted; at least
// one of Quantity and ProductCode is always present.
type Record struct {
	Document    string
	Page        int // 0 when no page marker has been seen yet
	LVPosition  string
	Family      string
	ProductCode string
	Quantity    *int
	Unit        string
	SourceLine  string
}

// newRecord assembles a record, bounding the stored raw line.
func newRecord(document string, page int, lv, family, code string, qty *int, unit, sourceLine string, maxLine int) Record {
	return Record{
		Document:    document,
		Page:        page,
		LVPosition:  lv,
		Family:      family,
		ProductCode: code,
		Quantity:    qty,
		Unit:        unit,
		SourceLine:  truncate(sourceLine, maxLine),
	}
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
