package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptRunner fakes the poppler/tesseract binaries: pdftoppm invocations
// drop empty png files next to the given prefix, tesseract invocations
// return text derived from the image name.
type scriptRunner struct {
	mu    sync.Mutex
	calls [][]string

	pages     int                     // images per whole-document render
	noImages  bool                    // pdftoppm succeeds but renders nothing
	renderErr error                   // returned for pdftoppm
	text      func(img string) string // tesseract output per image
	textErr   map[string]error        // per-image tesseract failures
}

func (s *scriptRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.mu.Lock()
	s.calls = append(s.calls, append([]string{name}, args...))
	s.mu.Unlock()

	switch filepath.Base(name) {
	case "pdftoppm":
		if s.renderErr != nil {
			return nil, []byte("render failed"), s.renderErr
		}
		if s.noImages {
			return nil, nil, nil
		}
		prefix := args[len(args)-1]
		n := s.pages
		if args[0] == "-f" { // single-page render
			n = 1
		}
		for i := 1; i <= n; i++ {
			img := fmt.Sprintf("%s-%02d.png", prefix, i)
			if err := os.WriteFile(img, nil, 0644); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	case "tesseract":
		img := args[0]
		if err, ok := s.textErr[filepath.Base(img)]; ok {
			return nil, []byte("tesseract failed"), err
		}
		return []byte(s.text(img)), nil, nil
	default:
		return nil, nil, fmt.Errorf("unexpected binary %q", name)
	}
}

func newTestRecognizer(runner Runner, cfg Config) *Recognizer {
	r := NewRecognizer(cfg, nil)
	r.runner = runner
	return r
}

func TestRecognizePage_ArgsAndGlitchRepair(t *testing.T) {
	script := &scriptRunner{text: func(string) string { return "Elastomerlager wie 1EBEA\n" }}
	r := newTestRecognizer(script, Config{DPI: 150, Language: "deu", PSM: 6, OEM: 1})

	txt, err := r.RecognizePage(context.Background(), "in.pdf", 2)
	require.NoError(t, err)
	assert.Equal(t, "Elastomerlager wie TEBEA\n", txt)

	require.Len(t, script.calls, 2)

	render := script.calls[0]
	assert.Equal(t, "pdftoppm", render[0])
	// trailing arg is the temp output prefix
	assert.Equal(t, []string{"-f", "2", "-l", "2", "-r", "150", "-gray", "-png", "in.pdf"},
		render[1:len(render)-1])

	recognize := script.calls[1]
	assert.Equal(t, "tesseract", recognize[0])
	assert.Equal(t, []string{"stdout", "-l", "deu", "--psm", "6", "--oem", "1"}, recognize[2:])
}

func TestRecognizeDocument_PageOrder(t *testing.T) {
	script := &scriptRunner{
		pages: 4,
		text:  func(img string) string { return "from " + filepath.Base(img) },
	}
	r := newTestRecognizer(script, Config{Workers: 3})

	texts, err := r.RecognizeDocument(context.Background(), "in.pdf")
	require.NoError(t, err)
	require.Len(t, texts, 4)
	for i, txt := range texts {
		assert.Equal(t, fmt.Sprintf("from page-%02d.png", i+1), txt)
	}
}

func TestRecognizeDocument_PageFailureFailsDocument(t *testing.T) {
	script := &scriptRunner{
		pages:   3,
		text:    func(string) string { return "ok" },
		textErr: map[string]error{"page-02.png": errors.New("boom")},
	}
	r := newTestRecognizer(script, Config{})

	_, err := r.RecognizeDocument(context.Background(), "in.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
}

func TestRecognizePage_NoImageRendered(t *testing.T) {
	script := &scriptRunner{noImages: true, text: func(string) string { return "" }}
	r := newTestRecognizer(script, Config{})

	_, err := r.RecognizePage(context.Background(), "in.pdf", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image")
}
