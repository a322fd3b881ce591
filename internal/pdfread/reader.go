package pdfread

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FileOpener reads PDFs from the local filesystem.
type FileOpener struct{}

func NewFileOpener() FileOpener {
	return FileOpener{}
}

func (FileOpener) Open(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %q: %w", path, err)
	}
	return &document{f: f, r: r}, nil
}

type document struct {
	f *os.File
	r *pdf.Reader
}

func (d *document) NumPages() int {
	return d.r.NumPage()
}

func (d *document) Close() error {
	return d.f.Close()
}

// Page reads text and vector stats for page n. The pdf library can panic on
// exotic font tables; such pages are treated as having no extractable text.
func (d *document) Page(n int) (pc PageContent) {
	defer func() {
		if recover() != nil {
			pc = PageContent{}
		}
	}()

	p := d.r.Page(n)
	if p.V.IsNull() {
		return PageContent{}
	}

	text, err := p.GetPlainText(nil)
	if err != nil {
		text = ""
	}
	pc.Text = text
	pc.Words = len(strings.Fields(text))
	pc.Stats = countVectorObjects(p)
	return pc
}

// countVectorObjects tallies drawing operators in the page's content streams:
// re (rectangles), l (line segments), c/v/y (Bezier curves), Do/BI (placed
// XObjects and inline images).
func countVectorObjects(p pdf.Page) VectorStats {
	var st VectorStats
	contents := p.V.Key("Contents")
	switch contents.Kind() {
	case pdf.Stream:
		countStream(contents, &st)
	case pdf.Array:
		for i := 0; i < contents.Len(); i++ {
			countStream(contents.Index(i), &st)
		}
	}
	return st
}

func countStream(v pdf.Value, st *VectorStats) {
	defer func() {
		// a malformed stream is simply not counted
		_ = recover()
	}()

	rc := v.Reader()
	defer func() {
		_ = rc.Close()
	}()
	data, err := io.ReadAll(rc)
	if err != nil {
		return
	}

	for _, tok := range contentTokens(data) {
		switch tok {
		case "re":
			st.Rects++
		case "l":
			st.Lines++
		case "c", "v", "y":
			st.Curves++
		case "Do", "BI":
			st.Images++
		}
	}
}

// contentTokens lexes a content stream into bare tokens, skipping string
// literals, hex strings and comments so operator names inside them are not
// miscounted.
func contentTokens(data []byte) []string {
	var toks []string
	i := 0
	n := len(data)
	for i < n {
		c := data[i]
		switch {
		case isWhitespace(c):
			i++
		case c == '%':
			for i < n && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			depth := 1
			i++
			for i < n && depth > 0 {
				switch data[i] {
				case '\\':
					i++ // skip escaped char
				case '(':
					depth++
				case ')':
					depth--
				}
				i++
			}
		case c == '<':
			for i < n && data[i] != '>' {
				i++
			}
			i++
		case c == '[' || c == ']' || c == '{' || c == '}' || c == '>' || c == ')':
			i++
		case c == '/':
			i++
			for i < n && isRegular(data[i]) {
				i++
			}
		default:
			start := i
			for i < n && isRegular(data[i]) {
				i++
			}
			if i > start {
				toks = append(toks, string(data[start:i]))
			} else {
				i++
			}
		}
	}
	return toks
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isRegular(c byte) bool {
	if isWhitespace(c) {
		return false
	}
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	}
	return true
}
