package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/extract"
)

func TestCSVWriter_RoundTrip(t *testing.T) {
	qty := 10000
	recs := []extract.Record{
		{
			Document:    "tender.pdf",
			Page:        3,
			LVPosition:  "6.1.2310.",
			Family:      "Isokorb",
			ProductCode: "K-M6-V1-REI120-CV35-X120-H220",
			Quantity:    &qty,
			Unit:        "St",
			SourceLine:  "6.1.2310. Schöck Isokorb K-M6-V1-REI120-CV35-X120-H220 10,000 St",
		},
		{
			Document:    "tender.pdf",
			Family:      "Stacon",
			ProductCode: "SLD-200",
			SourceLine:  "Schöck Stacon SLD-200",
		},
	}

	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords(recs))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, columns, rows[0])
	assert.Equal(t, []string{
		"tender.pdf", "3", "6.1.2310.", "Isokorb",
		"K-M6-V1-REI120-CV35-X120-H220", "10000", "St",
		"6.1.2310. Schöck Isokorb K-M6-V1-REI120-CV35-X120-H220 10,000 St",
	}, rows[1])

	// unknown page and missing quantity render as empty cells
	assert.Equal(t, "", rows[2][1])
	assert.Equal(t, "", rows[2][5])
	assert.Equal(t, "SLD-200", rows[2][4])
}
