package search

import (
	"errors"
	"fmt"
)

// ErrExhausted is the sentinel for search exhaustion: the frontier and all
// in-flight work were certified empty without reaching a Finish node.
// Match with errors.Is; the concrete error carries the iteration count.
var ErrExhausted = errors.New("search space exhausted")

// ExhaustedError reports that no solution exists, along with the total
// number of goal checks performed before exhaustion was certified.
//
// Exhaustion is an ordinary, reportable outcome, not a fault. It is the only
// error kind the engine models: internal synchronization failures are
// defects of the hosting environment and surface as panics, and context
// cancellation surfaces as the context's own error.
type ExhaustedError struct {
	// Iterations is the number of nodes goal-checked before the search
	// space was certified empty.
	Iterations int
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("search space exhausted after %d iterations", e.Iterations)
}

// Is reports whether target is ErrExhausted, enabling
// errors.Is(err, ErrExhausted) without losing the iteration count.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}
