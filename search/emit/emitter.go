// Package emit defines the observability event surface of the search engine
// and a set of pluggable emitter backends: structured logging, in-memory
// capture for tests and dashboards, OpenTelemetry spans, and a no-op.
package emit

// Emitter receives observability events from search execution.
//
// Implementations should be:
//   - Non-blocking: avoid slowing down the search
//   - Thread-safe: the parallel engine emits from multiple goroutines
//   - Resilient: handle backend failures without panicking
type Emitter interface {
	// Emit sends an event to the configured backend. Emit must not panic;
	// backend errors should be handled internally.
	Emit(event Event)
}
