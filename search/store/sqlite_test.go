package store

import (
	"context"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore[testNode] {
	t.Helper()
	s, err := NewSQLiteStore[testNode](":memory:")
	if err != nil {
		t.Fatalf("failed to create SQLite store: %v", err)
	}
	return s
}

func TestSQLiteStore(t *testing.T) {
	s := newTestSQLiteStore(t)
	defer s.Close()

	verifyStore(t, s)
}

func TestSQLiteStoreFile(t *testing.T) {
	path := t.TempDir() + "/runs.db"

	s, err := NewSQLiteStore[testNode](path)
	if err != nil {
		t.Fatalf("failed to create SQLite store: %v", err)
	}

	ctx := context.Background()
	if err := s.SaveRun(ctx, sampleRecord("run-persist")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Records survive reopening the file.
	s, err = NewSQLiteStore[testNode](path)
	if err != nil {
		t.Fatalf("failed to reopen SQLite store: %v", err)
	}
	defer s.Close()

	loaded, err := s.LoadRun(ctx, "run-persist")
	if err != nil {
		t.Fatalf("LoadRun after reopen failed: %v", err)
	}
	if loaded.Iterations != 1234 {
		t.Errorf("iterations = %d, want 1234", loaded.Iterations)
	}
}

func TestSQLiteStoreClosed(t *testing.T) {
	s := newTestSQLiteStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Double close is a no-op.
	if err := s.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	ctx := context.Background()
	if err := s.SaveRun(ctx, sampleRecord("run-closed")); err == nil {
		t.Error("SaveRun on closed store succeeded, want error")
	}
	if _, err := s.LoadRun(ctx, "run-closed"); err == nil {
		t.Error("LoadRun on closed store succeeded, want error")
	}
	if _, err := s.ListRuns(ctx, 0); err == nil {
		t.Error("ListRuns on closed store succeeded, want error")
	}
}
