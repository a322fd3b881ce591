package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/common"
)

// Config mirrors common.OCRConfig for the recognizer; zero values pick the
// same defaults.
type Config struct {
	Pdftoppm  string
	Tesseract string

	DPI      int    // rasterization DPI, default 300
	Language string // default "deu"
	PSM      int
	OEM      int

	Workers int // pool size for whole-document recognition
}

// Recognizer renders PDF pages to grayscale images and runs optical
// recognition on them via external poppler/tesseract binaries.
type Recognizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRecognizer(cfg Config, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.Language == "" {
		cfg.Language = "deu"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = common.DefaultWorkers()
	}
	return &Recognizer{cfg: cfg, runner: execRunner{}, logger: logger}
}

// RecognizePage renders the 1-based page of the PDF to a grayscale image and
// returns its recognized, glitch-normalized text.
func (r *Recognizer) RecognizePage(ctx context.Context, path string, page int) (string, error) {
	tmpDir, err := os.MkdirTemp("", "lv-ocr-*")
	if err != nil {
		return "", err
	}
	defer cleanupTemp(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	p := strconv.Itoa(page)
	// pdftoppm -f N -l N -r DPI -gray -png <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm,
		"-f", p, "-l", p, "-r", strconv.Itoa(r.cfg.DPI), "-gray", "-png", path, prefix)
	if err != nil {
		return "", fmt.Errorf("render page %d: %w (%s)", page, err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "*.png")
	if len(matches) == 0 {
		return "", fmt.Errorf("page %d rendered no image", page)
	}

	txt, err := r.recognizeImage(ctx, matches[0])
	if err != nil {
		return "", fmt.Errorf("recognize page %d: %w", page, err)
	}
	return NormalizeBrandGlitches(txt), nil
}

// RecognizeDocument renders every page once and recognizes them concurrently.
// Results come back in page order. Any page failure fails the document.
func (r *Recognizer) RecognizeDocument(ctx context.Context, path string) ([]string, error) {
	tmpDir, err := os.MkdirTemp("", "lv-ocr-*")
	if err != nil {
		return nil, err
	}
	defer cleanupTemp(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm,
		"-r", strconv.Itoa(r.cfg.DPI), "-gray", "-png", path, prefix)
	if err != nil {
		return nil, fmt.Errorf("render document: %w (%s)", err, truncate(string(errb), 512))
	}

	// pdftoppm zero-pads the page numbers, so a name sort is a page sort
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("document rendered no images")
	}

	texts := make([]string, len(matches))
	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	workers := r.cfg.Workers
	if workers > len(matches) {
		workers = len(matches)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				txt, rerr := r.recognizeImage(ctx, matches[i])
				if rerr != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("recognize page %d: %w", i+1, rerr)
					}
					mu.Unlock()
					continue
				}
				texts[i] = NormalizeBrandGlitches(txt)
			}
		}()
	}
	for i := range matches {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return texts, nil
}

func (r *Recognizer) recognizeImage(ctx context.Context, img string) (string, error) {
	args := []string{img, "stdout", "-l", r.cfg.Language}
	if r.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(r.cfg.PSM))
	}
	if r.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(r.cfg.OEM))
	}

	// tesseract <img> stdout -l <lang> --psm 6 --oem 1
	out, errb, err := r.runner.Run(ctx, r.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}
	return string(out), nil
}

func cleanupTemp(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("failed to remove temp dir", "dir", dir, "error", err)
	}
}
