package search

import "sync"

// VisitedSet records nodes whose goal check has completed, regardless of how
// they were classified. It is insertion-only and never shrinks.
//
// In the sequential engine the set guarantees no node is goal-checked twice.
// In the parallel engine it is a best-effort dedup filter, not a correctness
// mechanism: two workers can race past Contains and enqueue the same node,
// which is tolerated as wasted work because goal checks are idempotent.
//
// The set has its own lock, independent of the Frontier's; the engine never
// holds both at once.
type VisitedSet[N comparable] struct {
	mu    sync.Mutex
	nodes map[N]struct{}
}

// NewVisitedSet creates an empty visited set.
func NewVisitedSet[N comparable]() *VisitedSet[N] {
	return &VisitedSet[N]{nodes: make(map[N]struct{})}
}

// Add inserts a node. Inserting a node twice is a no-op.
func (v *VisitedSet[N]) Add(node N) {
	v.mu.Lock()
	v.nodes[node] = struct{}{}
	v.mu.Unlock()
}

// Contains reports whether a node has already completed its goal check.
func (v *VisitedSet[N]) Contains(node N) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.nodes[node]
	return ok
}

// Len returns the number of distinct nodes recorded.
func (v *VisitedSet[N]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.nodes)
}
