package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a SQLite implementation of Store[N].
//
// It archives runs in a single-file database. Designed for:
//   - Local tooling with zero setup
//   - Development and testing (use ":memory:")
//   - Single-host deployments
//
// The store uses WAL mode so readers don't block behind the writer.
//
// Type parameter N is the node type; Start and Solution are stored as JSON.
type SQLiteStore[N any] struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
	path   string
}

// NewSQLiteStore creates a SQLite-backed archive at the given path.
//
// Path can be a file ("./runs.db"), an absolute path, or ":memory:" for an
// in-memory database that is lost on Close. The store automatically creates
// the database file and schema, enables WAL mode, and sets a busy timeout.
func NewSQLiteStore[N any](path string) (*SQLiteStore[N], error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &SQLiteStore[N]{
		db:   db,
		path: path,
	}

	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore[N]) createTables(ctx context.Context) error {
	runsTable := `
		CREATE TABLE IF NOT EXISTS search_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			workers INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			iterations INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			start_node TEXT NOT NULL,
			solution_node TEXT,
			created_at TIMESTAMP NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, runsTable); err != nil {
		return fmt.Errorf("failed to create search_runs table: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_runs_created ON search_runs(created_at)"); err != nil {
		return fmt.Errorf("failed to create idx_runs_created: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_runs_outcome ON search_runs(outcome)"); err != nil {
		return fmt.Errorf("failed to create idx_runs_outcome: %w", err)
	}

	return nil
}

// SaveRun persists a completed run, overwriting any record with the same ID.
func (s *SQLiteStore[N]) SaveRun(ctx context.Context, rec RunRecord[N]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("store is closed")
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	startJSON, err := json.Marshal(rec.Start)
	if err != nil {
		return fmt.Errorf("failed to marshal start node: %w", err)
	}

	var solutionJSON sql.NullString
	if rec.Solution != nil {
		data, err := json.Marshal(rec.Solution)
		if err != nil {
			return fmt.Errorf("failed to marshal solution node: %w", err)
		}
		solutionJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		INSERT INTO search_runs (run_id, mode, workers, outcome, iterations, elapsed_ms, start_node, solution_node, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			mode = excluded.mode,
			workers = excluded.workers,
			outcome = excluded.outcome,
			iterations = excluded.iterations,
			elapsed_ms = excluded.elapsed_ms,
			start_node = excluded.start_node,
			solution_node = excluded.solution_node,
			created_at = excluded.created_at
	`
	_, err = s.db.ExecContext(ctx, query,
		rec.RunID, rec.Mode, rec.Workers, rec.Outcome, rec.Iterations,
		rec.Elapsed.Milliseconds(), string(startJSON), solutionJSON, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// LoadRun retrieves a run by ID, or ErrNotFound.
func (s *SQLiteStore[N]) LoadRun(ctx context.Context, runID string) (RunRecord[N], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero RunRecord[N]
	if s.closed {
		return zero, fmt.Errorf("store is closed")
	}

	query := `
		SELECT run_id, mode, workers, outcome, iterations, elapsed_ms, start_node, solution_node, created_at
		FROM search_runs WHERE run_id = ?
	`
	row := s.db.QueryRowContext(ctx, query, runID)

	rec, err := scanRunRecord[N](row)
	if err == sql.ErrNoRows {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("failed to load run: %w", err)
	}
	return rec, nil
}

// ListRuns returns archived runs ordered most recent first.
func (s *SQLiteStore[N]) ListRuns(ctx context.Context, limit int) ([]RunRecord[N], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("store is closed")
	}

	query := `
		SELECT run_id, mode, workers, outcome, iterations, elapsed_ms, start_node, solution_node, created_at
		FROM search_runs ORDER BY created_at DESC, id DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord[N]
	for rows.Next() {
		rec, err := scanRunRecord[N](rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return out, nil
}

// Close releases the database connection. Further calls error.
func (s *SQLiteStore[N]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRunRecord[N any](row rowScanner) (RunRecord[N], error) {
	var (
		rec          RunRecord[N]
		elapsedMS    int64
		startJSON    string
		solutionJSON sql.NullString
	)

	err := row.Scan(&rec.RunID, &rec.Mode, &rec.Workers, &rec.Outcome,
		&rec.Iterations, &elapsedMS, &startJSON, &solutionJSON, &rec.CreatedAt)
	if err != nil {
		return rec, err
	}

	rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond

	if err := json.Unmarshal([]byte(startJSON), &rec.Start); err != nil {
		return rec, fmt.Errorf("failed to unmarshal start node: %w", err)
	}
	if solutionJSON.Valid {
		var solution N
		if err := json.Unmarshal([]byte(solutionJSON.String), &solution); err != nil {
			return rec, fmt.Errorf("failed to unmarshal solution node: %w", err)
		}
		rec.Solution = &solution
	}

	return rec, nil
}
