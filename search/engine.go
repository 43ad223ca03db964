package search

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/renato145/sudoku-solver/search/emit"
	"github.com/renato145/sudoku-solver/search/store"
)

// Execution modes reported in events, metrics and archive records.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
)

// Terminal outcomes reported in events, metrics and archive records.
const (
	OutcomeSolved    = "solved"
	OutcomeExhausted = "exhausted"
	OutcomeCancelled = "cancelled"
)

// Engine drives a depth-first search over a Graph.
//
// The engine owns the three search structures (frontier, visited set,
// iteration counter) for the duration of a run; callers only ever see the
// result. Two execution modes share the same external contract:
//
//   - Sequential (Workers <= 1): explicit-stack DFS, exactly reproducible
//     iteration counts, no node goal-checked twice.
//   - Parallel: a fixed pool of workers drains a shared frontier. Iteration
//     counts vary across runs, and which of several valid solutions is
//     returned is intentionally nondeterministic.
//
// An Engine is stateless between runs and safe to reuse.
//
// Example:
//
//	engine, err := search.New(solver,
//	    search.WithWorkers[Board](runtime.NumCPU()),
//	    search.WithEmitter[Board](emit.NewLogEmitter(os.Stderr, false)),
//	)
//	solution, iterations, err := engine.Run(ctx, "run-001", board)
type Engine[N comparable] struct {
	graph   Graph[N]
	workers int
	emitter emit.Emitter
	metrics *PrometheusMetrics
	store   store.Store[N]
}

// New creates an Engine for the given graph.
//
// With no options the engine runs in parallel mode with one worker per CPU.
// Returns an error if the graph is nil or an option is invalid.
func New[N comparable](graph Graph[N], opts ...Option[N]) (*Engine[N], error) {
	if graph == nil {
		return nil, errors.New("graph cannot be nil")
	}

	cfg := engineConfig[N]{}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Engine[N]{
		graph:   graph,
		workers: cfg.workers,
		emitter: cfg.emitter,
		metrics: cfg.metrics,
		store:   cfg.store,
	}, nil
}

// Run executes a search from start until a Finish node is found or the
// search space is certified exhausted.
//
// Returns the accepted node and the total number of goal checks performed.
// On failure the error is an *ExhaustedError (match with ErrExhausted)
// carrying the same count, or the context's error if ctx was cancelled
// before a terminal state was reached.
//
// runID labels the run in events, metrics and the archive; it carries no
// semantics inside the search itself.
func (e *Engine[N]) Run(ctx context.Context, runID string, start N) (N, int, error) {
	workers := e.workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	mode := ModeParallel
	if workers <= 1 {
		mode = ModeSequential
		workers = 1
	}

	began := time.Now()
	e.emit(emit.Event{
		RunID:  runID,
		Worker: -1,
		Msg:    "search_start",
		Meta: map[string]interface{}{
			"mode":    mode,
			"workers": workers,
		},
	})

	var (
		node       N
		iterations int
		err        error
	)
	if mode == ModeSequential {
		node, iterations, err = e.runSequential(ctx, start)
	} else {
		node, iterations, err = e.runParallel(ctx, runID, workers, start)
	}

	elapsed := time.Since(began)
	outcome := outcomeOf(err)
	if e.metrics != nil {
		e.metrics.ObserveSolveDuration(mode, outcome, elapsed)
	}

	meta := map[string]interface{}{
		"mode":        mode,
		"duration_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		meta["error"] = err.Error()
	}
	e.emit(emit.Event{
		RunID:     runID,
		Iteration: iterations,
		Worker:    -1,
		Msg:       outcome,
		Meta:      meta,
	})

	// Cancellation is not a terminal transition of the search state machine,
	// so cancelled runs are not archived.
	if e.store != nil && outcome != OutcomeCancelled {
		e.archive(ctx, runID, mode, workers, outcome, iterations, elapsed, start, node, err)
	}

	return node, iterations, err
}

// runSequential is the single-threaded reference engine: explicit-stack DFS
// (no recursion, to bound stack depth on deep search spaces).
func (e *Engine[N]) runSequential(ctx context.Context, start N) (N, int, error) {
	frontier := NewFrontier[N]()
	visited := NewVisitedSet[N]()
	frontier.Push(start)

	iterations := 0
	var zero N

	for {
		select {
		case <-ctx.Done():
			return zero, iterations, ctx.Err()
		default:
		}

		node, ok := frontier.Pop()
		if !ok {
			return zero, iterations, &ExhaustedError{Iterations: iterations}
		}

		iterations++
		if e.metrics != nil {
			e.metrics.IncNodesChecked(ModeSequential)
		}

		node, ctrl := e.graph.CheckGoal(node)
		switch ctrl {
		case Finish:
			// First solution in traversal order; reported before the node
			// would be recorded as visited.
			return node, iterations, nil
		case Prune:
			if e.metrics != nil {
				e.metrics.IncNodesPruned(ModeSequential)
			}
		case Continue:
			for _, nb := range e.graph.Neighbours(node) {
				if visited.Contains(nb) {
					if e.metrics != nil {
						e.metrics.IncDuplicatesSkipped(ModeSequential)
					}
					continue
				}
				frontier.Push(nb)
			}
		}

		// Always recorded, whatever the classification was.
		visited.Add(node)
	}
}

// archive writes the terminal record; failures are reported, never returned.
func (e *Engine[N]) archive(ctx context.Context, runID, mode string, workers int,
	outcome string, iterations int, elapsed time.Duration, start, node N, runErr error) {

	rec := store.RunRecord[N]{
		RunID:      runID,
		Mode:       mode,
		Workers:    workers,
		Outcome:    outcome,
		Iterations: iterations,
		Elapsed:    elapsed,
		Start:      start,
	}
	if runErr == nil {
		solution := node
		rec.Solution = &solution
	}

	if err := e.store.SaveRun(ctx, rec); err != nil {
		e.emit(emit.Event{
			RunID:     runID,
			Iteration: iterations,
			Worker:    -1,
			Msg:       "archive_failed",
			Meta:      map[string]interface{}{"error": err.Error()},
		})
	}
}

func (e *Engine[N]) emit(event emit.Event) {
	if e.emitter != nil {
		e.emitter.Emit(event)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSolved
	case errors.Is(err, ErrExhausted):
		return OutcomeExhausted
	default:
		return OutcomeCancelled
	}
}

// DFS runs a one-off sequential search. It is the reference implementation:
// iteration counts are exactly reproducible for fixed input and no node is
// goal-checked twice.
func DFS[N comparable](ctx context.Context, graph Graph[N], start N) (N, int, error) {
	e := &Engine[N]{graph: graph, workers: 1}
	return e.Run(ctx, newRunID(), start)
}

// DFSParallel runs a one-off search with one worker per CPU. The same
// success/failure contract as DFS, computed by concurrent workers; iteration
// counts and solution selection (among multiple valid solutions) vary
// across runs.
func DFSParallel[N comparable](ctx context.Context, graph Graph[N], start N) (N, int, error) {
	e := &Engine[N]{graph: graph}
	return e.Run(ctx, newRunID(), start)
}

func newRunID() string {
	return fmt.Sprintf("run-%d", time.Now().UnixNano())
}
