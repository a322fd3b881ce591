package pdfread

// VectorStats counts the drawing primitives on a page. Plan/CAD-style sheets
// carry most of their content in these instead of text objects.
type VectorStats struct {
	Rects  int
	Lines  int
	Curves int
	Images int
}

// Total returns the combined vector-object count used by the page classifier.
func (s VectorStats) Total() int {
	return s.Rects + s.Lines + s.Curves + s.Images
}

// PageContent is the structural read of a single page.
type PageContent struct {
	Text  string
	Words int
	Stats VectorStats
}

// Document is an open PDF yielding per-page structural reads. One handle per
// document; Close after full page iteration.
type Document interface {
	NumPages() int
	// Page returns the structural content of the 1-based page n. Internal
	// read failures degrade to empty content, never an error.
	Page(n int) PageContent
	Close() error
}

// Opener opens a PDF for structured reading.
type Opener interface {
	Open(path string) (Document, error)
}
