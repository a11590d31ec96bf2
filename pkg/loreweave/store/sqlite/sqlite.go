// Package sqlite implements store.Store on a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/loreweave/loreweave/pkg/loreweave/store"
)

// sqliteStore implements the Store interface using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for better concurrency between importers and extract runs.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id       TEXT PRIMARY KEY,
		content  TEXT NOT NULL,
		source   TEXT NOT NULL DEFAULT '',
		added_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		run_id          TEXT PRIMARY KEY,
		created_at      INTEGER NOT NULL,
		record_count    INTEGER NOT NULL,
		success_rate    REAL NOT NULL,
		anomaly_count   INTEGER NOT NULL,
		classifications TEXT NOT NULL,
		relationships   TEXT NOT NULL,
		summary         TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// PutRecord inserts or replaces a record.
func (s *sqliteStore) PutRecord(ctx context.Context, r store.Record) error {
	if r.AddedAt.IsZero() {
		r.AddedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, content, source, added_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			source = excluded.source,
			added_at = excluded.added_at`,
		r.ID, r.Content, r.Source, r.AddedAt.Unix())
	return err
}

// GetRecord returns a record by id.
func (s *sqliteStore) GetRecord(ctx context.Context, id string) (store.Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, content, source, added_at FROM records WHERE id = ?`, id)

	var r store.Record
	var addedAt int64
	if err := row.Scan(&r.ID, &r.Content, &r.Source, &addedAt); err != nil {
		if err == sql.ErrNoRows {
			return store.Record{}, false, nil
		}
		return store.Record{}, false, err
	}
	r.AddedAt = time.Unix(addedAt, 0)
	return r, true, nil
}

// ListRecords returns all records ordered by id.
func (s *sqliteStore) ListRecords(ctx context.Context) ([]store.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, source, added_at FROM records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Record
	for rows.Next() {
		var r store.Record
		var addedAt int64
		if err := rows.Scan(&r.ID, &r.Content, &r.Source, &addedAt); err != nil {
			return nil, err
		}
		r.AddedAt = time.Unix(addedAt, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountRecords returns the number of stored records.
func (s *sqliteStore) CountRecords(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}

// SaveRun persists a batch run.
func (s *sqliteStore) SaveRun(ctx context.Context, run store.Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, created_at, record_count, success_rate,
			anomaly_count, classifications, relationships, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			created_at = excluded.created_at,
			record_count = excluded.record_count,
			success_rate = excluded.success_rate,
			anomaly_count = excluded.anomaly_count,
			classifications = excluded.classifications,
			relationships = excluded.relationships,
			summary = excluded.summary`,
		run.RunID, run.CreatedAt.Unix(), run.RecordCount, run.SuccessRate,
		run.AnomalyCount, run.ClassificationsJSON, run.RelationshipsJSON,
		run.SummaryJSON)
	return err
}

// GetRun returns a run by id.
func (s *sqliteStore) GetRun(ctx context.Context, runID string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, created_at, record_count, success_rate,
			anomaly_count, classifications, relationships, summary
		FROM runs WHERE run_id = ?`, runID)

	run, err := scanRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return store.Run{}, false, nil
		}
		return store.Run{}, false, err
	}
	return run, true, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, created_at, record_count, success_rate,
			anomaly_count, classifications, relationships, summary
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (store.Run, error) {
	var run store.Run
	var createdAt int64
	err := row.Scan(&run.RunID, &createdAt, &run.RecordCount,
		&run.SuccessRate, &run.AnomalyCount, &run.ClassificationsJSON,
		&run.RelationshipsJSON, &run.SummaryJSON)
	if err != nil {
		return store.Run{}, err
	}
	run.CreatedAt = time.Unix(createdAt, 0)
	return run, nil
}
