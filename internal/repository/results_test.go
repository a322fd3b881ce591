package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/extract"
)

func TestResultStore_SaveAndCount(t *testing.T) {
	store, err := OpenResultStore(":memory:", nil)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	ctx := context.Background()
	qty := 45000
	recs := []extract.Record{
		{
			Document:    "tender.pdf",
			Page:        3,
			LVPosition:  "6.1.2310.",
			Family:      "Isokorb",
			ProductCode: "K-M6-V1-REI120-CV35-X120-H220",
			Quantity:    &qty,
			Unit:        "St",
			SourceLine:  "source",
		},
		{
			// unknown page and no quantity persist as NULLs
			Document:   "tender.pdf",
			Family:     "Stacon",
			SourceLine: "source",
		},
	}

	require.NoError(t, store.SaveRun(ctx, "run-1", recs))
	require.NoError(t, store.SaveRun(ctx, "run-2", recs[:1]))

	n, err := store.CountByRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = store.CountByRun(ctx, "run-2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var nullPages int
	err = store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM extractions WHERE run_id = ? AND page IS NULL AND quantity IS NULL",
		"run-1").Scan(&nullPages)
	require.NoError(t, err)
	assert.Equal(t, 1, nullPages)
}
