package search

import (
	"sync"
	"testing"
)

func TestFrontier_LIFO(t *testing.T) {
	f := NewFrontier[int]()

	for i := 1; i <= 3; i++ {
		f.Push(i)
	}

	for want := 3; want >= 1; want-- {
		got, ok := f.Pop()
		if !ok {
			t.Fatalf("Pop returned empty, want %d", want)
		}
		if got != want {
			t.Errorf("Pop = %d, want %d (LIFO order)", got, want)
		}
	}

	if _, ok := f.Pop(); ok {
		t.Error("Pop on empty frontier returned ok")
	}
}

func TestFrontier_Len(t *testing.T) {
	f := NewFrontier[string]()

	if f.Len() != 0 {
		t.Errorf("empty Len = %d, want 0", f.Len())
	}

	f.Push("a")
	f.Push("b")
	if f.Len() != 2 {
		t.Errorf("Len = %d, want 2", f.Len())
	}

	f.Pop()
	if f.Len() != 1 {
		t.Errorf("Len after Pop = %d, want 1", f.Len())
	}
}

func TestFrontier_ConcurrentPushPop(t *testing.T) {
	f := NewFrontier[int]()
	const goroutines = 8
	const perGoroutine = 1000

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				f.Push(base*perGoroutine + i)
			}
		}(g)
	}
	wg.Wait()

	seen := make(map[int]bool)
	var drain sync.WaitGroup
	var mu sync.Mutex
	for g := 0; g < goroutines; g++ {
		drain.Add(1)
		go func() {
			defer drain.Done()
			for {
				v, ok := f.Pop()
				if !ok {
					return
				}
				mu.Lock()
				if seen[v] {
					t.Errorf("value %d popped twice", v)
				}
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	drain.Wait()

	if len(seen) != goroutines*perGoroutine {
		t.Errorf("popped %d distinct values, want %d", len(seen), goroutines*perGoroutine)
	}
}
