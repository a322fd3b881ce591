package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/common"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/ingest"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/ocr"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/pdfread"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/textextract"
)

// lvtext runs only the text-recovery stage: PDFs in -in become page-marked
// .txt files in -textdir. Useful for inspecting what the scanner will see.
func main() {
	var (
		in      = flag.String("in", "", "directory with source PDFs (required)")
		textDir = flag.String("textdir", "", "output directory for text files (default <in>/../text)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *in == "" {
		logger.Error("usage", "cmd", "lvtext -in <dir> [-textdir <dir>]")
		os.Exit(2)
	}
	if *textDir == "" {
		*textDir = filepath.Join(filepath.Dir(*in), "text")
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	recognizer := ocr.NewRecognizer(ocr.Config{
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		DPI:       cfg.OCR.DPI,
		Language:  cfg.OCR.Language,
		PSM:       cfg.OCR.PSM,
		OEM:       cfg.OCR.OEM,
		Workers:   cfg.OCR.MaxWorkers,
	}, logger)

	extractor := textextract.NewExtractor(pdfread.NewFileOpener(), recognizer, textextract.Config{
		Thresholds: cfg.Extract,
		Workers:    cfg.OCR.MaxWorkers,
	}, logger)

	paths, err := ingest.ListDocuments(*in)
	if err != nil {
		logger.Error("list documents", "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		logger.Info("no PDFs found, nothing to do", "dir", *in)
		return
	}

	if err := os.MkdirAll(*textDir, 0755); err != nil {
		logger.Error("create text dir", "error", err)
		os.Exit(1)
	}

	failures := 0
	for _, path := range paths {
		txtPath := filepath.Join(*textDir, ingest.Stem(path)+".txt")
		if upToDate(path, txtPath) {
			logger.Info("skipping, text output up to date", "document", filepath.Base(path))
			continue
		}

		start := time.Now()
		text, err := extractor.ExtractDocument(ctx, path)
		if err != nil {
			logger.Error("document failed", "document", filepath.Base(path), "error", err)
			failures++
			continue
		}
		if err := os.WriteFile(txtPath, []byte(text), 0644); err != nil {
			logger.Error("write text output", "path", txtPath, "error", err)
			failures++
			continue
		}
		logger.Info("text extraction OK",
			"document", filepath.Base(path),
			"bytes", len(text),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	if failures > 0 {
		logger.Error("completed with failures", "failed", failures, "total", len(paths))
		os.Exit(1)
	}
}

func upToDate(pdfPath, txtPath string) bool {
	out, err := os.Stat(txtPath)
	if err != nil {
		return false
	}
	in, err := os.Stat(pdfPath)
	if err != nil {
		return false
	}
	return !out.ModTime().Before(in.ModTime())
}
