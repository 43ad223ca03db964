package emit

// Event represents an observability event emitted during a search run.
//
// Events describe search lifecycle, not individual goal checks: run start,
// worker start/stop, terminal transitions (solved or exhausted), and archive
// writes. Per-node signals belong in metrics, where they are cheap.
type Event struct {
	// RunID identifies the search run that emitted this event.
	RunID string

	// Iteration is the engine's goal-check count at the time of the event.
	// Zero for events emitted before the first goal check.
	Iteration int

	// Worker is the index of the worker goroutine that emitted this event.
	// -1 for run-level events and for the sequential engine.
	Worker int

	// Msg is a short machine-matchable event name, e.g. "search_start",
	// "worker_start", "solved", "exhausted".
	Msg string

	// Meta contains additional structured data specific to this event.
	// Common keys:
	//   - "duration_ms": elapsed run time in milliseconds
	//   - "mode": "sequential" or "parallel"
	//   - "workers": pool size for parallel runs
	//   - "error": error details
	Meta map[string]interface{}
}
