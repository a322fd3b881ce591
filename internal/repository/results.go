package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cemil-kerimoglu/pdf-extractor/internal/extract"
)

// Schema for the extractions table. Applied by OpenResultStore.
const Schema = `
CREATE TABLE IF NOT EXISTS extractions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	document TEXT NOT NULL,
	page INTEGER,
	lv_position TEXT,
	family TEXT NOT NULL,
	product_code TEXT,
	quantity INTEGER,
	unit TEXT,
	source_line TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_run ON extractions(run_id);
CREATE INDEX IF NOT EXISTS idx_extractions_doc ON extractions(document);
`

// ResultStore persists extraction records to a SQLite table so downstream
// consumers can query runs without reparsing the tabular exports.
type ResultStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenResultStore opens (or creates) the SQLite database at path and applies
// the schema.
func OpenResultStore(path string, logger *slog.Logger) (*ResultStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open results db %q: %w", path, err)
	}
	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &ResultStore{db: db, logger: logger}, nil
}

// SaveRun inserts every record under the given run id in one transaction.
func (s *ResultStore) SaveRun(ctx context.Context, runID string, recs []extract.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO extractions
			(run_id, document, page, lv_position, family, product_code, quantity, unit, source_line, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		_ = stmt.Close()
	}()

	now := time.Now().Unix()
	for i := range recs {
		r := &recs[i]
		var page any
		if r.Page > 0 {
			page = r.Page
		}
		var qty any
		if r.Quantity != nil {
			qty = *r.Quantity
		}
		if _, err := stmt.ExecContext(ctx, runID, r.Document, page, r.LVPosition,
			r.Family, r.ProductCode, qty, r.Unit, r.SourceLine, now); err != nil {
			return fmt.Errorf("insert record for %s: %w", r.Document, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("results saved", "run_id", runID, "rows", len(recs))
	return nil
}

// CountByRun returns the number of persisted rows for a run.
func (s *ResultStore) CountByRun(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM extractions WHERE run_id = ?", runID).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *ResultStore) Close() error {
	return s.db.Close()
}
