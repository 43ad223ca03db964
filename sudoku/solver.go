package sudoku

import (
	"context"

	"github.com/renato145/sudoku-solver/search"
)

// Solver implements search.Graph[Board]: goal checks are candidate
// propagation passes, and neighbours are one board copy per legal value at
// the branch cell. Solver is stateless; all search state lives in the
// boards themselves.
type Solver struct{}

// CheckGoal runs one candidate propagation pass and maps the board state to
// a search control: Invalid prunes, Solved finishes, anything else
// continues with the branch point established for Neighbours.
func (Solver) CheckGoal(b Board) (Board, search.Control) {
	b.ComputeCandidates()
	switch b.State {
	case StateInvalid:
		return b, search.Prune
	case StateSolved:
		return b, search.Finish
	default:
		return b, search.Continue
	}
}

// Neighbours fans out one successor board per candidate value at the branch
// cell. Candidates are recomputed fresh here; the masks stored by an earlier
// propagation pass may be stale for cells filled later in that pass.
//
// CheckGoal must have classified the board first: a board without an
// established branch point has no successors.
func (Solver) Neighbours(b Board) []Board {
	if b.State != StateBranch {
		return nil
	}

	r, c := int(b.BranchRow), int(b.BranchCol)
	guesses := b.Candidates(r, c)

	out := make([]Board, 0, len(guesses))
	for _, v := range guesses {
		next := b
		next.Set(r, c, v)
		out = append(out, next)
	}
	return out
}

// Solve searches for a solution with the sequential reference engine.
// Returns the solved board and the number of goal checks performed; on an
// unsolvable board the error matches search.ErrExhausted.
func Solve(ctx context.Context, board Board) (Board, int, error) {
	return search.DFS[Board](ctx, Solver{}, board)
}

// SolveParallel searches with one worker per CPU. For boards with a unique
// solution the result matches Solve; iteration counts vary across runs.
func SolveParallel(ctx context.Context, board Board) (Board, int, error) {
	return search.DFSParallel[Board](ctx, Solver{}, board)
}
