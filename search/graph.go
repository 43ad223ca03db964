// Package search provides a generic depth-first backtracking search engine.
//
// The engine explores an implicitly defined state graph: a domain model
// supplies a start node and a Graph implementation, and the engine drives
// goal-checking and neighbour expansion until a terminal node is found or
// the search space is certified exhausted. Two execution modes share one
// external contract: a single-threaded reference engine and a worker-pool
// engine that distributes frontier nodes across goroutines.
package search

// Control classifies a node after its goal check.
//
// It is the tri-state signal a Graph returns from CheckGoal:
//   - Finish: the node is fully resolved and valid; the search stops here.
//   - Continue: the node needs further expansion via Neighbours.
//   - Prune: the node is a dead end; it is discarded without children.
type Control int

const (
	// Continue indicates the node is neither solved nor dead and must be
	// expanded. It is the zero value so a forgotten classification errs on
	// the side of exploring rather than terminating.
	Continue Control = iota

	// Finish indicates the node is an accepting terminal state.
	Finish

	// Prune indicates the node is invalid and its subtree is abandoned.
	Prune
)

// String returns the control name for logs and events.
func (c Control) String() string {
	switch c {
	case Finish:
		return "finish"
	case Prune:
		return "prune"
	default:
		return "continue"
	}
}

// Graph is the capability contract a domain model satisfies to be searchable.
//
// Type parameter N is the node type: an opaque, self-contained candidate
// state. Requiring comparable value types gives the engine everything it
// needs structurally: equality and hashing (nodes are used as map keys) and
// cheap independent duplication (nodes are copied by value, so mutating one
// copy never affects another).
//
// The engine trusts nodes to be well-formed; malformed input must be
// rejected by the domain model before a search starts.
type Graph[N comparable] interface {
	// Neighbours enumerates the successor states of node. It must be pure:
	// no side effects, and the same node always yields the same successors.
	// For the sequential engine, order matters: successors are pushed onto
	// the frontier in slice order, so the last element is explored first.
	//
	// CheckGoal must have classified node as Continue before Neighbours is
	// called; that call establishes the branch point successors fan out from.
	Neighbours(node N) []N

	// CheckGoal performs all currently forceable deductions on node and
	// classifies the result. It returns the (possibly mutated) node along
	// with its classification. The returned node is the one the engine
	// expands, records as visited, and reports on Finish.
	//
	// CheckGoal must be deterministic and idempotent per node: the parallel
	// engine may rarely goal-check the same node twice, which is tolerated
	// as wasted work only because re-checking cannot change the outcome.
	CheckGoal(node N) (N, Control)
}
