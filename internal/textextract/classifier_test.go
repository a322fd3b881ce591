package textextract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/pdfread"
)

func TestClassify_NoText(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, NoText, Classify("", 0, pdfread.VectorStats{}, th))
	assert.Equal(t, NoText, Classify("   \n\t  ", 0, pdfread.VectorStats{}, th))
	assert.Equal(t, NoText, Classify(strings.Repeat("a", 19), 1, pdfread.VectorStats{}, th))
	// exactly at the minimum is enough
	assert.Equal(t, DigitalOK, Classify(strings.Repeat("a", 20), 1, pdfread.VectorStats{}, th))
}

func TestClassify_SparseVector(t *testing.T) {
	th := DefaultThresholds()
	text := strings.Repeat("x", 100)

	assert.Equal(t, SparseVector, Classify(text, 10, pdfread.VectorStats{Lines: 30}, th))
	// one condition short of sparse each time
	assert.Equal(t, DigitalOK, Classify(text, 10, pdfread.VectorStats{Lines: 29}, th))
	assert.Equal(t, DigitalOK, Classify(text, 80, pdfread.VectorStats{Lines: 30}, th))
	assert.Equal(t, DigitalOK, Classify(strings.Repeat("x", 800), 10, pdfread.VectorStats{Lines: 30}, th))
}

func TestClassify_CountsRunesNotBytes(t *testing.T) {
	th := DefaultThresholds()
	// 19 runes but 32 bytes; still below the character minimum
	text := strings.Repeat("ö", 13) + "abcdef"

	assert.Equal(t, NoText, Classify(text, 2, pdfread.VectorStats{}, th))
}

func TestClassify_VectorStatsAggregate(t *testing.T) {
	th := DefaultThresholds()
	stats := pdfread.VectorStats{Rects: 10, Lines: 10, Curves: 5, Images: 5}

	assert.Equal(t, 30, stats.Total())
	assert.Equal(t, SparseVector, Classify(strings.Repeat("x", 50), 5, stats, th))
}
