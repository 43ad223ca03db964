package search

import (
	"sync"
	"testing"
)

func TestVisitedSet_AddContains(t *testing.T) {
	v := NewVisitedSet[string]()

	if v.Contains("a") {
		t.Error("empty set contains a")
	}

	v.Add("a")
	if !v.Contains("a") {
		t.Error("set does not contain added node")
	}
	if v.Contains("b") {
		t.Error("set contains node that was never added")
	}

	// Re-adding is a no-op.
	v.Add("a")
	if v.Len() != 1 {
		t.Errorf("Len = %d, want 1", v.Len())
	}
}

func TestVisitedSet_ConcurrentAdd(t *testing.T) {
	v := NewVisitedSet[int]()
	const goroutines = 8
	const perGoroutine = 1000

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// All goroutines add the same range; the set must converge on
			// one entry per value.
			for i := 0; i < perGoroutine; i++ {
				v.Add(i)
				if !v.Contains(i) {
					t.Errorf("node %d missing right after Add", i)
				}
			}
		}()
	}
	wg.Wait()

	if v.Len() != perGoroutine {
		t.Errorf("Len = %d, want %d", v.Len(), perGoroutine)
	}
}
