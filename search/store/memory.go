package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore is an in-memory implementation of Store[N].
//
// Designed for tests and single-process tools where persistence across
// restarts isn't required. Thread-safe.
type MemStore[N any] struct {
	mu   sync.RWMutex
	runs map[string]RunRecord[N]
}

// NewMemStore creates an empty in-memory archive.
func NewMemStore[N any]() *MemStore[N] {
	return &MemStore[N]{
		runs: make(map[string]RunRecord[N]),
	}
}

// SaveRun persists a completed run, overwriting any record with the same ID.
func (m *MemStore[N]) SaveRun(_ context.Context, rec RunRecord[N]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.runs[rec.RunID] = rec
	return nil
}

// LoadRun retrieves a run by ID, or ErrNotFound.
func (m *MemStore[N]) LoadRun(_ context.Context, runID string) (RunRecord[N], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.runs[runID]
	if !ok {
		var zero RunRecord[N]
		return zero, ErrNotFound
	}
	return rec, nil
}

// ListRuns returns runs ordered most recent first.
func (m *MemStore[N]) ListRuns(_ context.Context, limit int) ([]RunRecord[N], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]RunRecord[N], 0, len(m.runs))
	for _, rec := range m.runs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
