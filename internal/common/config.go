package common

import (
	"os"
	"runtime"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Extract ExtractConfig
	OCR     OCRConfig
	Match   MatchConfig
}

// ExtractConfig holds the page-classification thresholds.
type ExtractConfig struct {
	MinCharsPerPage       int // below this the page counts as having no text
	SparseTextChars       int
	SparseWords           int
	VectorObjectThreshold int
}

// OCRConfig holds OCR-related configuration.
type OCRConfig struct {
	Pdftoppm   string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract  string // binary name or absolute path; if empty -> "tesseract"
	DPI        int    // rasterization DPI, default 300
	Language   string // default "deu"
	PSM        int    // 6 is good for uniform blocks of text
	OEM        int    // 1 = LSTM
	MaxWorkers int    // parallel page OCR tasks
}

// MatchConfig holds the extraction-engine tunables.
type MatchConfig struct {
	Lookahead     int // lines scanned past a mention for quantity+unit
	MaxSourceLine int // stored source-line cap
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			MinCharsPerPage:       getEnvAsInt("EXTRACT_MIN_CHARS", 20),
			SparseTextChars:       getEnvAsInt("EXTRACT_SPARSE_CHARS", 800),
			SparseWords:           getEnvAsInt("EXTRACT_SPARSE_WORDS", 80),
			VectorObjectThreshold: getEnvAsInt("EXTRACT_VECTOR_THRESHOLD", 30),
		},
		OCR: OCRConfig{
			Pdftoppm:   getEnv("OCR_PDFTOPPM", "pdftoppm"),
			Tesseract:  getEnv("OCR_TESSERACT", "tesseract"),
			DPI:        getEnvAsInt("OCR_DPI", 300),
			Language:   getEnv("OCR_LANG", "deu"),
			PSM:        getEnvAsInt("OCR_PSM", 6),
			OEM:        getEnvAsInt("OCR_OEM", 1),
			MaxWorkers: getEnvAsPositiveInt("OCR_MAX_WORKERS", DefaultWorkers()),
		},
		Match: MatchConfig{
			Lookahead:     getEnvAsInt("MATCH_LOOKAHEAD", 3),
			MaxSourceLine: getEnvAsInt("MATCH_MAX_SOURCE_LINE", 500),
		},
	}
}

// DefaultWorkers caps the OCR pool at the available parallelism, max 8.
func DefaultWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n > 8 {
		n = 8
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsPositiveInt keeps the default unless the variable parses as a
// positive integer.
func getEnvAsPositiveInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	if c.OCR.MaxWorkers <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_MAX_WORKERS must be positive", ErrInvalidInput)
	}
	if c.OCR.Language == "" {
		return NewAppError("CONFIG_ERROR", "OCR_LANG is required", ErrInvalidInput)
	}
	if c.Match.Lookahead < 0 {
		return NewAppError("CONFIG_ERROR", "MATCH_LOOKAHEAD must not be negative", ErrInvalidInput)
	}
	return nil
}
