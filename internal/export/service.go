package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/extract"
)

// WriteFile writes every record to path; the extension picks the format
// (.xlsx for a workbook, anything else is CSV).
func WriteFile(path string, recs []extract.Record, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		err = writeXLSXFile(path, recs)
	default:
		err = writeCSVFile(path, recs)
	}
	if err != nil {
		return err
	}

	logger.Info("export.ok",
		"path", path,
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func writeCSVFile(path string, recs []extract.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := NewCSVWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteRecords(recs); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeXLSXFile(path string, recs []extract.Record) error {
	data, err := BuildXLSX(recs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
