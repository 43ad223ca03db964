package search

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/renato145/sudoku-solver/search/emit"
)

// outcome is the single terminal result of a parallel run: either an
// accepted node or an exhaustion error, plus the iteration count at the
// moment the terminal transition happened.
type outcome[N comparable] struct {
	node       N
	iterations int
	err        error
}

// runParallel drains a shared frontier with a fixed pool of workers.
//
// Shared state and its synchronization:
//   - frontier and visited each carry their own mutex; no worker ever holds
//     both locks at once, so no lock ordering can deadlock.
//   - outstanding counts nodes that are enqueued-but-unprocessed plus nodes
//     currently mid goal-check. It starts at 1 for the start node, gains 1
//     per enqueued neighbour, and loses 1 when a node's processing ends.
//     It reaches 0 exactly when no work exists anywhere in the system.
//   - finished is the monotone stop indicator; a compare-and-swap on it is
//     the single-write guard for the capacity-1 result channel, so exactly
//     one worker performs the Running -> {Solved, Exhausted} transition and
//     any simultaneous loser discards its result.
//
// Workers poll the frontier rather than block on it: searches are
// short-lived and the busy-wait window (frontier empty but work still in
// flight) closes as soon as a mid-check worker pushes children or drops its
// counter credit. An empty frontier alone never justifies declaring failure;
// only empty frontier AND outstanding == 0 certifies global exhaustion.
//
// There is no preemptive interrupt: after the terminal transition the
// remaining workers notice finished on their next poll and exit, so shutdown
// latency is bounded by polling granularity.
func (e *Engine[N]) runParallel(ctx context.Context, runID string, workers int, start N) (N, int, error) {
	frontier := NewFrontier[N]()
	visited := NewVisitedSet[N]()

	// The start node is pushed before any worker spawns, so workers never
	// see an empty system at startup; outstanding already holds its credit.
	frontier.Push(start)

	var (
		iterations  atomic.Int64
		outstanding atomic.Int64
		finished    atomic.Bool
	)
	outstanding.Store(1)

	result := make(chan outcome[N], 1)

	if e.metrics != nil {
		e.metrics.SetActiveWorkers(workers)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			e.emit(emit.Event{RunID: runID, Worker: id, Msg: "worker_start"})
			defer func() {
				e.emit(emit.Event{
					RunID:     runID,
					Iteration: int(iterations.Load()),
					Worker:    id,
					Msg:       "worker_stop",
				})
			}()

			for {
				if finished.Load() || ctx.Err() != nil {
					return
				}

				node, ok := frontier.Pop()
				if !ok {
					if outstanding.Load() == 0 {
						// Frontier empty and nothing in flight: safe to
						// certify exhaustion. The CAS decides who reports.
						if finished.CompareAndSwap(false, true) {
							n := int(iterations.Load())
							result <- outcome[N]{
								iterations: n,
								err:        &ExhaustedError{Iterations: n},
							}
						}
						return
					}
					runtime.Gosched()
					continue
				}

				iterations.Add(1)
				if e.metrics != nil {
					e.metrics.IncNodesChecked(ModeParallel)
				}

				node, ctrl := e.graph.CheckGoal(node)
				switch ctrl {
				case Finish:
					if finished.CompareAndSwap(false, true) {
						result <- outcome[N]{
							node:       node,
							iterations: int(iterations.Load()),
						}
					}
					return
				case Prune:
					if e.metrics != nil {
						e.metrics.IncNodesPruned(ModeParallel)
					}
				case Continue:
					for _, nb := range e.graph.Neighbours(node) {
						// Best-effort dedup: two workers can race past this
						// check and enqueue the same node. Wasted work, not a
						// correctness violation; goal checks are idempotent.
						if visited.Contains(nb) {
							if e.metrics != nil {
								e.metrics.IncDuplicatesSkipped(ModeParallel)
							}
							continue
						}
						frontier.Push(nb)
						outstanding.Add(1)
					}
					if e.metrics != nil {
						e.metrics.SetFrontierDepth(frontier.Len())
					}
				}

				visited.Add(node)
				outstanding.Add(-1)
			}
		}(w)
	}

	wg.Wait()

	if e.metrics != nil {
		e.metrics.SetActiveWorkers(0)
		e.metrics.SetFrontierDepth(frontier.Len())
	}

	var zero N
	select {
	case out := <-result:
		if out.err != nil {
			return zero, out.iterations, out.err
		}
		return out.node, out.iterations, nil
	default:
		// All workers exited without a terminal transition: the context was
		// cancelled mid-search.
		return zero, int(iterations.Load()), ctx.Err()
	}
}
