package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, 20, cfg.Extract.MinCharsPerPage)
	assert.Equal(t, 800, cfg.Extract.SparseTextChars)
	assert.Equal(t, 80, cfg.Extract.SparseWords)
	assert.Equal(t, 30, cfg.Extract.VectorObjectThreshold)

	assert.Equal(t, "pdftoppm", cfg.OCR.Pdftoppm)
	assert.Equal(t, "tesseract", cfg.OCR.Tesseract)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, "deu", cfg.OCR.Language)
	assert.Equal(t, 6, cfg.OCR.PSM)
	assert.Equal(t, 1, cfg.OCR.OEM)
	assert.Positive(t, cfg.OCR.MaxWorkers)

	assert.Equal(t, 3, cfg.Match.Lookahead)
	assert.Equal(t, 500, cfg.Match.MaxSourceLine)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OCR_DPI", "150")
	t.Setenv("OCR_LANG", "eng")
	t.Setenv("OCR_MAX_WORKERS", "2")
	t.Setenv("MATCH_LOOKAHEAD", "5")

	cfg := LoadConfig()
	assert.Equal(t, 150, cfg.OCR.DPI)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, 2, cfg.OCR.MaxWorkers)
	assert.Equal(t, 5, cfg.Match.Lookahead)
}

func TestLoadConfig_RejectsNonPositiveWorkers(t *testing.T) {
	t.Setenv("OCR_MAX_WORKERS", "0")
	cfg := LoadConfig()
	assert.Positive(t, cfg.OCR.MaxWorkers, "zero falls back to the default pool size")

	t.Setenv("OCR_MAX_WORKERS", "-3")
	cfg = LoadConfig()
	assert.Positive(t, cfg.OCR.MaxWorkers)
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.OCR.DPI = 0
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.OCR.Language = ""
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.Match.Lookahead = -1
	assert.Error(t, cfg.Validate())
}
