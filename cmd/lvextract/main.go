package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/common"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/export"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/extract"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/ingest"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/match"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/ocr"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/pdfread"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/pipeline"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/repository"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/textextract"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		in       = flag.String("in", "", "directory with source PDFs (required)")
		textDir  = flag.String("textdir", "", "directory for intermediate text files (default <in>/../text)")
		out      = flag.String("out", "", "results file, .csv or .xlsx (default <in>/../extracted.csv)")
		dbPath   = flag.String("db", "", "optional SQLite database to persist results into")
		watch    = flag.Bool("watch", false, "keep running and reprocess on file changes")
		debounce = flag.Duration("debounce", 2*time.Second, "watch-mode event debounce")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *in == "" {
		printError("Error: -in is required\n")
		os.Exit(1)
	}
	if *textDir == "" {
		*textDir = filepath.Join(filepath.Dir(*in), "text")
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*in), "extracted.csv")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

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

	scanner := extract.NewScanner(match.DefaultCatalog(), cfg.Match.Lookahead, cfg.Match.MaxSourceLine, logger)
	processor := pipeline.NewProcessor(extractor, scanner, *textDir, logger)

	var store *repository.ResultStore
	if *dbPath != "" {
		var err error
		store, err = repository.OpenResultStore(*dbPath, logger)
		if err != nil {
			logger.Error("failed to open results db", "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				logger.Error("close results db", "error", cerr)
			}
		}()
	}

	if err := runOnce(ctx, processor, store, *in, *out, logger); err != nil {
		if errors.Is(err, common.ErrNoDocuments) {
			logger.Info("no PDFs found, nothing to do", "dir", *in)
			return
		}
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	if !*watch {
		return
	}

	logger.Info("watching for changes", "dir", *in)
	events, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{Root: *in, Debounce: *debounce})
	if err != nil {
		logger.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}
	for {
		select {
		case path, ok := <-events:
			if !ok {
				return
			}
			logger.Info("change detected", "path", path)
			if err := runOnce(ctx, processor, store, *in, *out, logger); err != nil && !errors.Is(err, common.ErrNoDocuments) {
				logger.Error("run failed", "error", err)
			}
		case werr, ok := <-errCh:
			if ok && werr != nil {
				logger.Error("watcher error", "error", werr)
			}
		}
	}
}

// runOnce processes the directory, exports the aggregate results and
// optionally persists them.
func runOnce(ctx context.Context, processor *pipeline.Processor, store *repository.ResultStore, in, out string, logger *slog.Logger) error {
	runID := uuid.NewString()
	start := time.Now()

	records, stats, err := processor.ProcessDirectory(ctx, in)
	if err != nil {
		return err
	}

	if err := export.WriteFile(out, records, logger); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if store != nil {
		if err := store.SaveRun(ctx, runID, records); err != nil {
			return fmt.Errorf("persist results: %w", err)
		}
	}

	logger.Info("run complete",
		"run_id", runID,
		"documents", stats.Documents,
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"records", stats.Records,
		"output", out,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
