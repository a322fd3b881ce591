package textextract

import (
	"strings"
	"unicode/utf8"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/common"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/pdfread"
)

// PageClass is the result of the per-page triage deciding whether digital
// text is trustworthy for a page.
type PageClass int

const (
	// DigitalOK keeps the digitally extracted text verbatim.
	DigitalOK PageClass = iota
	// NoText means the page has no usable digital text and must be OCR'd.
	NoText
	// SparseVector marks a vector-heavy sheet (plans, CAD tables) whose few
	// digital labels hide the real content; OCR is forced.
	SparseVector
)

func (c PageClass) String() string {
	switch c {
	case NoText:
		return "no_text"
	case SparseVector:
		return "sparse_vector"
	default:
		return "digital_ok"
	}
}

// DefaultThresholds returns the classification thresholds used when no
// configuration is supplied.
func DefaultThresholds() common.ExtractConfig {
	return common.ExtractConfig{
		MinCharsPerPage:       20,
		SparseTextChars:       800,
		SparseWords:           80,
		VectorObjectThreshold: 30,
	}
}

// Classify triages one page given its trimmed digital text, word count and
// vector-object stats.
//
// A page with some text can still be a vector-drawn sheet where extraction
// captured only a handful of labels; requiring short text AND few words AND
// many vector objects catches that case without forcing OCR on genuinely
// text-rich pages.
func Classify(text string, words int, stats pdfread.VectorStats, t common.ExtractConfig) PageClass {
	trimmed := strings.TrimSpace(text)
	chars := utf8.RuneCountInString(trimmed)

	if chars < t.MinCharsPerPage {
		return NoText
	}
	if chars < t.SparseTextChars && words < t.SparseWords && stats.Total() >= t.VectorObjectThreshold {
		return SparseVector
	}
	return DigitalOK
}
