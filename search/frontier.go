package search

import "sync"

// Frontier is the pending-work container: nodes discovered but not yet
// goal-checked. Discipline is strictly LIFO, which is what makes the
// traversal depth-first; there is no priority ordering (pure DFS).
//
// Thread-safety: all methods are safe for concurrent use. The parallel
// engine shares one Frontier across all workers. The Frontier lock is never
// held together with the VisitedSet lock by any caller; the engine keeps the
// two acquisitions disjoint so no lock ordering can deadlock.
type Frontier[N comparable] struct {
	mu    sync.Mutex
	nodes []N
}

// NewFrontier creates an empty frontier.
func NewFrontier[N comparable]() *Frontier[N] {
	return &Frontier[N]{}
}

// Push adds a node to the top of the stack.
func (f *Frontier[N]) Push(node N) {
	f.mu.Lock()
	f.nodes = append(f.nodes, node)
	f.mu.Unlock()
}

// Pop removes and returns the most recently pushed node. The second return
// value is false when the frontier is empty.
//
// An empty frontier alone says nothing about global exhaustion: in the
// parallel engine another worker may be mid goal-check and about to push
// children. Callers must combine an empty Pop with the outstanding-work
// counter before declaring failure.
func (f *Frontier[N]) Pop() (N, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := len(f.nodes)
	if n == 0 {
		var zero N
		return zero, false
	}

	node := f.nodes[n-1]
	f.nodes = f.nodes[:n-1]
	return node, true
}

// Len returns the current number of pending nodes.
func (f *Frontier[N]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.nodes)
}
