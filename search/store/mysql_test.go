package store

import (
	"context"
	"os"
	"testing"
)

// newTestMySQLStore connects to the database named by TEST_MYSQL_DSN, or
// skips the test when the variable is unset. Example DSN:
//
//	root:secret@tcp(localhost:3306)/search_test?parseTime=true
func newTestMySQLStore(t *testing.T) *MySQLStore[testNode] {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set, skipping MySQL store tests")
	}

	s, err := NewMySQLStore[testNode](dsn)
	if err != nil {
		t.Fatalf("failed to create MySQL store: %v", err)
	}

	// Start from a clean table so contract checks see only their own rows.
	if _, err := s.db.ExecContext(context.Background(), "DELETE FROM search_runs"); err != nil {
		t.Fatalf("failed to clean search_runs: %v", err)
	}

	return s
}

func TestMySQLStore(t *testing.T) {
	s := newTestMySQLStore(t)
	defer s.Close()

	verifyStore(t, s)
}

func TestMySQLStoreClosed(t *testing.T) {
	s := newTestMySQLStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := s.SaveRun(context.Background(), sampleRecord("run-closed")); err == nil {
		t.Error("SaveRun on closed store succeeded, want error")
	}
}
