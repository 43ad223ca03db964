package search

import (
	"fmt"

	"github.com/renato145/sudoku-solver/search/emit"
	"github.com/renato145/sudoku-solver/search/store"
)

// Option is a functional option for configuring an Engine.
//
// Options are chainable and self-documenting:
//
//	engine, err := search.New(solver,
//	    search.WithWorkers(8),
//	    search.WithEmitter(emit.NewLogEmitter(os.Stderr, false)),
//	)
type Option[N comparable] func(*engineConfig[N]) error

// engineConfig collects options before they are applied to an Engine.
// The indirection allows validation before construction completes.
type engineConfig[N comparable] struct {
	workers int
	emitter emit.Emitter
	metrics *PrometheusMetrics
	store   store.Store[N]
}

// WithWorkers sets the number of worker goroutines for parallel runs.
//
// Default: runtime.NumCPU(), detected once at Run time. A value of 1 forces
// the sequential reference engine. The pool is fixed-size; it never grows or
// shrinks during a run.
//
// Returns an error at construction time if n is negative.
func WithWorkers[N comparable](n int) Option[N] {
	return func(cfg *engineConfig[N]) error {
		if n < 0 {
			return fmt.Errorf("workers must be >= 0, got %d", n)
		}
		cfg.workers = n
		return nil
	}
}

// WithEmitter sets the observability event receiver.
//
// Default: events are discarded. The emitter receives search lifecycle
// events (search_start, worker_start, worker_stop, solved, exhausted); it is
// never called per goal check, so a slow emitter cannot throttle the search.
func WithEmitter[N comparable](e emit.Emitter) Option[N] {
	return func(cfg *engineConfig[N]) error {
		cfg.emitter = e
		return nil
	}
}

// WithMetrics attaches a Prometheus metrics collector.
//
// Default: no metrics are recorded. See NewPrometheusMetrics.
func WithMetrics[N comparable](m *PrometheusMetrics) Option[N] {
	return func(cfg *engineConfig[N]) error {
		cfg.metrics = m
		return nil
	}
}

// WithStore attaches a run archive. After each run reaches its terminal
// state the engine writes a RunRecord (outcome, iteration count, elapsed
// time, start and solution nodes). Archive failures are reported through the
// emitter and never fail the search itself.
//
// The archive records completed runs only; it never feeds state back into a
// search.
func WithStore[N comparable](s store.Store[N]) Option[N] {
	return func(cfg *engineConfig[N]) error {
		cfg.store = s
		return nil
	}
}
