package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/extract"
)

// columns defines the CSV header row.
var columns = []string{
	"document",
	"page",
	"lv_position",
	"family",
	"product_code",
	"quantity",
	"unit",
	"source_line",
}

// CSVWriter wraps csv.Writer for exporting extraction records.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of records to CSV rows and writes them.
func (w *CSVWriter) WriteRecords(recs []extract.Record) error {
	for i := range recs {
		if err := w.csv.Write(recordToRow(&recs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func recordToRow(r *extract.Record) []string {
	row := make([]string, len(columns))
	row[0] = r.Document
	if r.Page > 0 {
		row[1] = strconv.Itoa(r.Page)
	}
	row[2] = r.LVPosition
	row[3] = r.Family
	row[4] = r.ProductCode
	if r.Quantity != nil {
		row[5] = strconv.Itoa(*r.Quantity)
	}
	row[6] = r.Unit
	row[7] = r.SourceLine
	return row
}
