package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/common"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/extract"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/ingest"
)

// TextExtractor is Stage 1: document -> page-marked text blob.
type TextExtractor interface {
	ExtractDocument(ctx context.Context, path string) (string, error)
}

// RunStats aggregates one directory run.
type RunStats struct {
	Documents int
	Processed int
	Skipped   int
	Failed    int
	Records   int
}

// Processor drives the two stages for each document: text recovery into the
// text directory (mtime-cached), then the line scan over the stored blob.
type Processor struct {
	extractor TextExtractor
	scanner   *extract.Scanner
	textDir   string
	logger    *slog.Logger
}

func NewProcessor(extractor TextExtractor, scanner *extract.Scanner, textDir string, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{extractor: extractor, scanner: scanner, textDir: textDir, logger: logger}
}

// EnsureText produces the text blob for pdfPath under the text directory,
// skipping the work when the existing output is not older than the source.
func (p *Processor) EnsureText(ctx context.Context, pdfPath string) (txtPath string, cached bool, err error) {
	stem := ingest.Stem(pdfPath)
	txtPath = filepath.Join(p.textDir, stem+".txt")

	if upToDate(pdfPath, txtPath) {
		p.logger.Info("skipping, text output up to date", "document", filepath.Base(pdfPath))
		return txtPath, true, nil
	}

	p.logger.Info("extracting text", "document", filepath.Base(pdfPath))
	text, err := p.extractor.ExtractDocument(ctx, pdfPath)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(p.textDir, 0755); err != nil {
		return "", false, fmt.Errorf("create text dir: %w", err)
	}
	if err := os.WriteFile(txtPath, []byte(text), 0644); err != nil {
		return "", false, fmt.Errorf("write %q: %w", txtPath, err)
	}
	return txtPath, false, nil
}

// ProcessDocument runs both stages for one PDF and returns its records,
// plus whether stage 1 was satisfied from the cache.
func (p *Processor) ProcessDocument(ctx context.Context, pdfPath string) ([]extract.Record, bool, error) {
	txtPath, cached, err := p.EnsureText(ctx, pdfPath)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return nil, cached, fmt.Errorf("read %q: %w", txtPath, err)
	}

	document := ingest.Stem(pdfPath) + ".pdf"
	return p.scanner.Scan(document, string(data)), cached, nil
}

// ProcessDirectory processes every PDF in dir in name order. Per-document
// failures are logged and skipped; the run continues. Returns
// common.ErrNoDocuments when the directory holds no PDFs.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) ([]extract.Record, RunStats, error) {
	paths, err := ingest.ListDocuments(dir)
	if err != nil {
		return nil, RunStats{}, err
	}
	if len(paths) == 0 {
		return nil, RunStats{}, common.ErrNoDocuments
	}

	var all []extract.Record
	stats := RunStats{Documents: len(paths)}

	for _, path := range paths {
		recs, cached, err := p.ProcessDocument(ctx, path)
		if err != nil {
			p.logger.Error("document failed", "document", filepath.Base(path), "error", err)
			stats.Failed++
			continue
		}
		if cached {
			stats.Skipped++
		} else {
			stats.Processed++
		}
		stats.Records += len(recs)
		all = append(all, recs...)
	}

	return all, stats, nil
}

// upToDate reports whether the output is at least as new as the input.
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
