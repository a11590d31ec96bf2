package store

import (
	"context"
	"time"
)

// Store supplies raw world-building records to the engine and persists
// finished batch runs. The engine core never touches a Store directly;
// the calling orchestrator fetches records, runs the batch, and saves
// the result.
type Store interface {
	Close() error

	// Records
	PutRecord(ctx context.Context, r Record) error
	GetRecord(ctx context.Context, id string) (Record, bool, error)
	ListRecords(ctx context.Context) ([]Record, error)
	CountRecords(ctx context.Context) (int64, error)

	// Batch runs
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, runID string) (Run, bool, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// Record is one raw (id, content) unit awaiting classification.
type Record struct {
	ID      string
	Content string
	Source  string // provenance: file path, import batch, etc.
	AddedAt time.Time
}

// Run is a persisted batch result. The classification, relationship,
// and summary payloads are stored as JSON documents; the engine's own
// types never leak into the schema.
type Run struct {
	RunID               string
	CreatedAt           time.Time
	RecordCount         int
	SuccessRate         float64
	AnomalyCount        int
	ClassificationsJSON string
	RelationshipsJSON   string
	SummaryJSON         string
}
