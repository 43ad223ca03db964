package store

import (
	"context"
	"testing"
	"time"
)

// testNode stands in for a search node; it only needs to survive a JSON
// round trip.
type testNode struct {
	Grid string `json:"grid"`
}

func sampleRecord(runID string) RunRecord[testNode] {
	solution := testNode{Grid: "solved-grid"}
	return RunRecord[testNode]{
		RunID:      runID,
		Mode:       "parallel",
		Workers:    8,
		Outcome:    "solved",
		Iterations: 1234,
		Elapsed:    42 * time.Millisecond,
		Start:      testNode{Grid: "start-grid"},
		Solution:   &solution,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

// verifyStore runs the shared contract checks against any Store implementation.
func verifyStore(t *testing.T, s Store[testNode]) {
	t.Helper()
	ctx := context.Background()

	// Unknown run IDs surface ErrNotFound.
	if _, err := s.LoadRun(ctx, "missing"); err != ErrNotFound {
		t.Errorf("LoadRun(missing) error = %v, want ErrNotFound", err)
	}

	// Save and load round trip.
	rec := sampleRecord("run-001")
	if err := s.SaveRun(ctx, rec); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	loaded, err := s.LoadRun(ctx, "run-001")
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}
	if loaded.Mode != rec.Mode || loaded.Workers != rec.Workers || loaded.Outcome != rec.Outcome {
		t.Errorf("loaded run metadata = %+v, want %+v", loaded, rec)
	}
	if loaded.Iterations != rec.Iterations {
		t.Errorf("iterations = %d, want %d", loaded.Iterations, rec.Iterations)
	}
	if loaded.Elapsed != rec.Elapsed {
		t.Errorf("elapsed = %v, want %v", loaded.Elapsed, rec.Elapsed)
	}
	if loaded.Start.Grid != "start-grid" {
		t.Errorf("start grid = %q, want %q", loaded.Start.Grid, "start-grid")
	}
	if loaded.Solution == nil || loaded.Solution.Grid != "solved-grid" {
		t.Errorf("solution = %v, want solved-grid", loaded.Solution)
	}

	// Overwrite with same run ID.
	rec.Outcome = "exhausted"
	rec.Solution = nil
	if err := s.SaveRun(ctx, rec); err != nil {
		t.Fatalf("SaveRun (overwrite) failed: %v", err)
	}
	loaded, err = s.LoadRun(ctx, "run-001")
	if err != nil {
		t.Fatalf("LoadRun after overwrite failed: %v", err)
	}
	if loaded.Outcome != "exhausted" {
		t.Errorf("outcome after overwrite = %q, want %q", loaded.Outcome, "exhausted")
	}
	if loaded.Solution != nil {
		t.Errorf("solution after overwrite = %v, want nil", loaded.Solution)
	}

	// ListRuns orders most recent first and honors the limit.
	older := sampleRecord("run-000")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	if err := s.SaveRun(ctx, older); err != nil {
		t.Fatalf("SaveRun (older) failed: %v", err)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns length = %d, want 2", len(runs))
	}
	if runs[0].RunID != "run-001" || runs[1].RunID != "run-000" {
		t.Errorf("ListRuns order = [%s, %s], want [run-001, run-000]", runs[0].RunID, runs[1].RunID)
	}

	limited, err := s.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("ListRuns(1) failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("ListRuns(1) length = %d, want 1", len(limited))
	}
}
