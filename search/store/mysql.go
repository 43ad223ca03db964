package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a MySQL/MariaDB implementation of Store[N].
//
// Designed for deployments where runs from multiple hosts are archived in a
// shared relational database, with the usual audit-trail benefits. Uses
// connection pooling; safe for concurrent use.
//
// Type parameter N is the node type; Start and Solution are stored as JSON.
type MySQLStore[N any] struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// NewMySQLStore creates a MySQL-backed archive.
//
// The DSN format is the go-sql-driver one:
//
//	user:password@tcp(localhost:3306)/solver?parseTime=true
//
// parseTime=true is required so created_at scans into time.Time. Never
// hardcode credentials; read the DSN from the environment.
//
// The store pings the server and creates the schema on construction.
func NewMySQLStore[N any](dsn string) (*MySQLStore[N], error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	s := &MySQLStore[N]{db: db}

	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

func (m *MySQLStore[N]) createTables(ctx context.Context) error {
	runsTable := `
		CREATE TABLE IF NOT EXISTS search_runs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id VARCHAR(255) NOT NULL UNIQUE,
			mode VARCHAR(32) NOT NULL,
			workers INT NOT NULL,
			outcome VARCHAR(32) NOT NULL,
			iterations BIGINT NOT NULL,
			elapsed_ms BIGINT NOT NULL,
			start_node TEXT NOT NULL,
			solution_node TEXT,
			created_at TIMESTAMP NOT NULL,
			INDEX idx_runs_created (created_at),
			INDEX idx_runs_outcome (outcome)
		)
	`
	if _, err := m.db.ExecContext(ctx, runsTable); err != nil {
		return fmt.Errorf("failed to create search_runs table: %w", err)
	}

	return nil
}

// SaveRun persists a completed run, overwriting any record with the same ID.
func (m *MySQLStore[N]) SaveRun(ctx context.Context, rec RunRecord[N]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
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
		ON DUPLICATE KEY UPDATE
			mode = VALUES(mode),
			workers = VALUES(workers),
			outcome = VALUES(outcome),
			iterations = VALUES(iterations),
			elapsed_ms = VALUES(elapsed_ms),
			start_node = VALUES(start_node),
			solution_node = VALUES(solution_node),
			created_at = VALUES(created_at)
	`
	_, err = m.db.ExecContext(ctx, query,
		rec.RunID, rec.Mode, rec.Workers, rec.Outcome, rec.Iterations,
		rec.Elapsed.Milliseconds(), string(startJSON), solutionJSON, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// LoadRun retrieves a run by ID, or ErrNotFound.
func (m *MySQLStore[N]) LoadRun(ctx context.Context, runID string) (RunRecord[N], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero RunRecord[N]
	if m.closed {
		return zero, fmt.Errorf("store is closed")
	}

	query := `
		SELECT run_id, mode, workers, outcome, iterations, elapsed_ms, start_node, solution_node, created_at
		FROM search_runs WHERE run_id = ?
	`
	row := m.db.QueryRowContext(ctx, query, runID)

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
func (m *MySQLStore[N]) ListRuns(ctx context.Context, limit int) ([]RunRecord[N], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
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

	rows, err := m.db.QueryContext(ctx, query, args...)
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

// Close releases the connection pool. Further calls error.
func (m *MySQLStore[N]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return m.db.Close()
}
