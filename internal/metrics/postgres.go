package metrics

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
)

const DefaultTable = "loan_model_metrics"

// PostgresSink inserts one row per record, with the report in a JSONB column.
type PostgresSink struct {
	db    *sql.DB
	table string
}

func OpenPostgres(dsn, table string) (*PostgresSink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSink, err)
	}
	return NewPostgresSink(db, table), nil
}

func NewPostgresSink(db *sql.DB, table string) *PostgresSink {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresSink{db: db, table: table}
}

func (s *PostgresSink) EnsureTable(ctx context.Context) error {
	q := `CREATE TABLE IF NOT EXISTS ` + pq.QuoteIdentifier(s.table) + ` (
	run_id     TEXT PRIMARY KEY,
	algorithm  TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	accuracy   DOUBLE PRECISION NOT NULL,
	metrics    JSONB NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrSink, s.table, err)
	}
	return nil
}

func (s *PostgresSink) Write(ctx context.Context, r Record) error {
	if r.Report == nil {
		return fmt.Errorf("%w: run %s has no report", ErrSink, r.RunID)
	}
	payload, err := json.Marshal(r.Report)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSink, err)
	}
	q := `INSERT INTO ` + pq.QuoteIdentifier(s.table) +
		` (run_id, algorithm, created_at, accuracy, metrics) VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.db.ExecContext(ctx, q, r.RunID, r.Algorithm, r.Timestamp, r.Report.Accuracy, string(payload)); err != nil {
		return fmt.Errorf("%w: insert run %s: %v", ErrSink, r.RunID, err)
	}
	return nil
}

func (s *PostgresSink) Close() error {
	return s.db.Close()
}
