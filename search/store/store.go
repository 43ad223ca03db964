// Package store provides persistence backends for the search run archive.
//
// The archive records completed runs only: which puzzle was searched, in
// which mode, with what outcome and cost. It never feeds state back into a
// running search; searches are not resumable.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested run ID does not exist.
var ErrNotFound = errors.New("not found")

// RunRecord is one archived search run.
//
// Type parameter N is the node type of the archived search. Start and
// Solution are serialized as JSON by database-backed stores, so N should be
// JSON-serializable.
type RunRecord[N any] struct {
	// RunID uniquely identifies the run.
	RunID string

	// Mode is the execution mode, "sequential" or "parallel".
	Mode string

	// Workers is the worker pool size (1 for sequential runs).
	Workers int

	// Outcome is the terminal state the run reached, "solved" or "exhausted".
	Outcome string

	// Iterations is the total number of goal checks performed.
	Iterations int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// Start is the node the search began from.
	Start N

	// Solution is the accepted node for solved runs, nil for exhausted runs.
	Solution *N

	// CreatedAt is when the record was written.
	CreatedAt time.Time
}

// Store archives completed search runs.
//
// Implementations:
//   - MemStore: in-memory, for tests and short-lived processes
//   - SQLiteStore: single-file database, zero-setup local persistence
//   - MySQLStore: shared relational database for multi-host deployments
//
// All implementations are safe for concurrent use.
type Store[N any] interface {
	// SaveRun persists a completed run. Saving a record with an existing
	// RunID overwrites the previous record.
	SaveRun(ctx context.Context, rec RunRecord[N]) error

	// LoadRun retrieves an archived run by ID.
	// Returns ErrNotFound if the run ID doesn't exist.
	LoadRun(ctx context.Context, runID string) (RunRecord[N], error)

	// ListRuns returns archived runs ordered most recent first.
	// A limit <= 0 returns all runs.
	ListRuns(ctx context.Context, limit int) ([]RunRecord[N], error)
}
