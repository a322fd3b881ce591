package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/extract"
)

// BuildXLSX returns an XLSX workbook (as bytes) holding every record.
func BuildXLSX(recs []extract.Record) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Extractions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		r := &recs[i]
		write(1, r.Document)
		if r.Page > 0 {
			write(2, r.Page)
		}
		write(3, r.LVPosition)
		write(4, r.Family)
		write(5, r.ProductCode)
		if r.Quantity != nil {
			write(6, *r.Quantity)
		}
		write(7, r.Unit)
		write(8, r.SourceLine)
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 28) // document
	_ = f.SetColWidth(sheet, "C", "C", 14) // lv position
	_ = f.SetColWidth(sheet, "E", "E", 32) // product code
	_ = f.SetColWidth(sheet, "H", "H", 80) // source line

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
