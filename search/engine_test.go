package search

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// chainGraph is a deterministic test graph over int nodes: each node fans
// out to node+1 .. node+fanout, capped at limit. CheckGoal finishes at goal,
// prunes members of prune, and continues otherwise. With goal < 0 the graph
// has no accepting node at all.
type chainGraph struct {
	goal   int
	limit  int
	fanout int
	prune  map[int]bool
}

func (g chainGraph) Neighbours(n int) []int {
	var out []int
	for i := 1; i <= g.fanout; i++ {
		if n+i <= g.limit {
			out = append(out, n+i)
		}
	}
	return out
}

func (g chainGraph) CheckGoal(n int) (int, Control) {
	switch {
	case g.goal >= 0 && n == g.goal:
		return n, Finish
	case g.prune[n]:
		return n, Prune
	default:
		return n, Continue
	}
}

// countingGraph wraps a Graph and counts goal checks per node.
type countingGraph struct {
	inner Graph[int]
	mu    sync.Mutex
	seen  map[int]int
}

func newCountingGraph(inner Graph[int]) *countingGraph {
	return &countingGraph{inner: inner, seen: make(map[int]int)}
}

func (c *countingGraph) Neighbours(n int) []int {
	return c.inner.Neighbours(n)
}

func (c *countingGraph) CheckGoal(n int) (int, Control) {
	c.mu.Lock()
	c.seen[n]++
	c.mu.Unlock()
	return c.inner.CheckGoal(n)
}

func TestNew_NilGraph(t *testing.T) {
	if _, err := New[int](nil); err == nil {
		t.Fatal("expected error for nil graph")
	}
}

func TestNew_InvalidWorkers(t *testing.T) {
	if _, err := New[int](chainGraph{}, WithWorkers[int](-1)); err == nil {
		t.Fatal("expected error for negative workers")
	}
}

func TestDFS_FindsSolution(t *testing.T) {
	g := chainGraph{goal: 5, limit: 10, fanout: 1}

	node, iterations, err := DFS[int](context.Background(), g, 0)
	if err != nil {
		t.Fatalf("DFS failed: %v", err)
	}
	if node != 5 {
		t.Errorf("solution = %d, want 5", node)
	}
	// Single chain 0->1->...->5: one goal check per node on the path.
	if iterations != 6 {
		t.Errorf("iterations = %d, want 6", iterations)
	}
}

func TestDFS_SolutionSatisfiesGoal(t *testing.T) {
	g := chainGraph{goal: 7, limit: 20, fanout: 3}

	node, _, err := DFS[int](context.Background(), g, 0)
	if err != nil {
		t.Fatalf("DFS failed: %v", err)
	}
	if _, ctrl := g.CheckGoal(node); ctrl != Finish {
		t.Errorf("returned node %d does not satisfy the goal", node)
	}
}

func TestDFS_IterationsReproducible(t *testing.T) {
	g := chainGraph{goal: 9, limit: 30, fanout: 3}

	_, first, err := DFS[int](context.Background(), g, 0)
	if err != nil {
		t.Fatalf("DFS failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		_, n, err := DFS[int](context.Background(), g, 0)
		if err != nil {
			t.Fatalf("DFS failed on rerun: %v", err)
		}
		if n != first {
			t.Fatalf("iterations = %d on rerun, want %d (sequential counts must be exactly reproducible)", n, first)
		}
	}
}

func TestDFS_LastPushedExploredFirst(t *testing.T) {
	// Node 0 fans out to 1 and 2, both accepting. Neighbours pushes 1 then
	// 2, so the stack pops 2 first and the search must return it.
	g := forkGraph{}

	node, _, err := DFS[int](context.Background(), g, 0)
	if err != nil {
		t.Fatalf("DFS failed: %v", err)
	}
	if node != 2 {
		t.Errorf("solution = %d, want 2 (last pushed neighbour explored first)", node)
	}
}

// forkGraph: 0 -> {1, 2}, both accepting.
type forkGraph struct{}

func (forkGraph) Neighbours(n int) []int {
	if n == 0 {
		return []int{1, 2}
	}
	return nil
}

func (forkGraph) CheckGoal(n int) (int, Control) {
	if n == 0 {
		return n, Continue
	}
	return n, Finish
}

func TestDFS_Exhaustion(t *testing.T) {
	// No accepting node anywhere: 0..10 all get goal-checked exactly once,
	// then exhaustion is reported with that count.
	g := chainGraph{goal: -1, limit: 10, fanout: 1}

	_, iterations, err := DFS[int](context.Background(), g, 0)
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("error = %v, want ErrExhausted", err)
	}
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error type = %T, want *ExhaustedError", err)
	}
	if exhausted.Iterations != iterations {
		t.Errorf("ExhaustedError.Iterations = %d, want %d", exhausted.Iterations, iterations)
	}
	if iterations != 11 {
		t.Errorf("iterations = %d, want 11 (each of 0..10 checked once)", iterations)
	}
}

func TestDFS_NoNodeCheckedTwice(t *testing.T) {
	// fanout 3 produces heavy overlap (node n is discovered by n-1, n-2 and
	// n-3). The visited set must still hold every node to one goal check.
	g := newCountingGraph(chainGraph{goal: -1, limit: 50, fanout: 3})

	_, iterations, err := DFS[int](context.Background(), g, 0)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("error = %v, want ErrExhausted", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for node, count := range g.seen {
		if count > 1 {
			t.Errorf("node %d goal-checked %d times, want at most 1", node, count)
		}
	}
	if iterations != len(g.seen) {
		t.Errorf("iterations = %d, want %d (one per distinct node checked)", iterations, len(g.seen))
	}
}

func TestDFS_PruneStopsSubtree(t *testing.T) {
	// Pruning node 3 on a single chain cuts off everything past it.
	g := chainGraph{goal: 8, limit: 10, fanout: 1, prune: map[int]bool{3: true}}

	_, iterations, err := DFS[int](context.Background(), g, 0)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("error = %v, want ErrExhausted", err)
	}
	if iterations != 4 {
		t.Errorf("iterations = %d, want 4 (0, 1, 2 and the pruned 3)", iterations)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	g := chainGraph{goal: -1, limit: 1 << 20, fanout: 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := DFS[int](ctx, g, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestEngine_Reusable(t *testing.T) {
	engine, err := New[int](chainGraph{goal: 5, limit: 10, fanout: 1}, WithWorkers[int](1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		node, _, err := engine.Run(context.Background(), "reuse", 0)
		if err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
		if node != 5 {
			t.Errorf("run %d: solution = %d, want 5", i, node)
		}
	}
}
