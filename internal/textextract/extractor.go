package textextract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cemil-kerimoglu/pdf-extractor/constants"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/common"
	"github.com/cemil-kerimoglu/pdf-extractor/internal/pdfread"
)

// Recognizer is the OCR recovery contract consumed by the orchestrator.
type Recognizer interface {
	RecognizePage(ctx context.Context, path string, page int) (string, error)
	RecognizeDocument(ctx context.Context, path string) ([]string, error)
}

// Config tunes the per-document page orchestration.
type Config struct {
	Thresholds common.ExtractConfig
	Workers    int // bounded pool for page OCR tasks
}

// Extractor turns one PDF into a single page-marked text blob. Pages whose
// digital text is trustworthy keep it; the rest are recovered through OCR.
type Extractor struct {
	opener pdfread.Opener
	ocr    Recognizer
	cfg    Config
	logger *slog.Logger
}

func NewExtractor(opener pdfread.Opener, ocr Recognizer, cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Thresholds == (common.ExtractConfig{}) {
		cfg.Thresholds = DefaultThresholds()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = common.DefaultWorkers()
	}
	return &Extractor{opener: opener, ocr: ocr, cfg: cfg, logger: logger}
}

// ExtractDocument runs the per-page strategy and, if that fails outright,
// falls back to recognizing the whole document. Fallback failure is fatal
// for this document only.
func (e *Extractor) ExtractDocument(ctx context.Context, path string) (string, error) {
	text, err := e.extractPerPage(ctx, path)
	if err == nil {
		return text, nil
	}

	e.logger.Warn("per-page extraction failed, falling back to full OCR",
		"path", path, "error", err)

	text, ferr := e.extractFullOCR(ctx, path)
	if ferr != nil {
		return "", fmt.Errorf("full-document ocr after per-page failure (%v): %w", err, ferr)
	}
	return text, nil
}

// extractPerPage tries digital text first on every page and queues the rest
// for OCR. Results land in pre-sized page slots so the final blob is page
// ordered no matter when each OCR task completes.
func (e *Extractor) extractPerPage(ctx context.Context, path string) (string, error) {
	doc, err := e.opener.Open(path)
	if err != nil {
		return "", fmt.Errorf("structural read: %w", err)
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			e.logger.Warn("close document", "path", path, "error", cerr)
		}
	}()

	total := doc.NumPages()
	if total <= 0 {
		return "", errors.New("document reports no pages")
	}

	pieces := make([]string, total)
	var ocrPages []int

	for n := 1; n <= total; n++ {
		pc := doc.Page(n)
		txt := strings.TrimSpace(pc.Text)
		class := Classify(txt, pc.Words, pc.Stats, e.cfg.Thresholds)

		e.logger.Debug("page classified",
			"path", path, "page", n, "class", class.String(),
			"chars", len(txt), "words", pc.Words, "vector_objects", pc.Stats.Total())

		if class == DigitalOK {
			pieces[n-1] = pageSection(n, txt)
		} else {
			ocrPages = append(ocrPages, n)
		}
	}

	if len(ocrPages) > 0 {
		if err := e.recoverPages(ctx, path, ocrPages, pieces); err != nil {
			return "", err
		}
	}

	return strings.Join(pieces, ""), nil
}

// recoverPages OCRs the queued pages on a bounded worker pool. Each result is
// written into its own slot exactly once; a failing page does not cancel the
// tasks in flight, but fails the per-page strategy afterwards.
func (e *Extractor) recoverPages(ctx context.Context, path string, pages []int, pieces []string) error {
	workers := e.cfg.Workers
	if workers > len(pages) {
		workers = len(pages)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				txt, err := e.ocr.RecognizePage(ctx, path, n)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("ocr page %d: %w", n, err)
					}
					mu.Unlock()
					continue
				}
				pieces[n-1] = pageSection(n, txt)
			}
		}()
	}

	for _, n := range pages {
		jobs <- n
	}
	close(jobs)
	wg.Wait()

	return firstErr
}

func (e *Extractor) extractFullOCR(ctx context.Context, path string) (string, error) {
	texts, err := e.ocr.RecognizeDocument(ctx, path)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, t := range texts {
		b.WriteString(pageSection(i+1, t))
	}
	return b.String(), nil
}

// pageSection prefixes a page's text with its boundary marker. An empty text
// still gets its section so every page stays accounted for.
func pageSection(n int, text string) string {
	return "\n" + constants.PageMarker(n) + "\n" + text
}
