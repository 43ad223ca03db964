package emit

import "sync"

// BufferedEmitter implements Emitter by storing events in memory, organized
// by run ID, with query capabilities for post-run analysis.
//
// Use cases:
//   - Tests asserting on emitted lifecycle events
//   - Debugging parallel runs after the fact
//   - Lightweight dashboards
//
// All events are held in memory; long-lived processes should Clear runs they
// no longer need.
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event // runID -> events
}

// HistoryFilter specifies criteria for filtering run history. All fields are
// optional; set fields combine with AND logic.
type HistoryFilter struct {
	Worker       *int   // filter by worker index (nil = no filter)
	Msg          string // filter by message (empty = no filter)
	MinIteration *int   // minimum iteration count (nil = no filter)
	MaxIteration *int   // maximum iteration count (nil = no filter)
}

// NewBufferedEmitter creates an empty BufferedEmitter. Safe for concurrent use.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{
		events: make(map[string][]Event),
	}
}

// Emit stores an event in the buffer.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events[event.RunID] = append(b.events[event.RunID], event)
}

// GetHistory retrieves all events for a run in emission order. Returns a
// copy, so callers can inspect it while the run continues emitting.
func (b *BufferedEmitter) GetHistory(runID string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	events := b.events[runID]
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// GetHistoryWithFilter retrieves events for a run matching the filter.
func (b *BufferedEmitter) GetHistoryWithFilter(runID string, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Event
	for _, event := range b.events[runID] {
		if filter.Msg != "" && event.Msg != filter.Msg {
			continue
		}
		if filter.Worker != nil && event.Worker != *filter.Worker {
			continue
		}
		if filter.MinIteration != nil && event.Iteration < *filter.MinIteration {
			continue
		}
		if filter.MaxIteration != nil && event.Iteration > *filter.MaxIteration {
			continue
		}
		out = append(out, event)
	}
	return out
}

// Clear removes all events for a run. Clearing an unknown run is a no-op.
func (b *BufferedEmitter) Clear(runID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.events, runID)
}

// ClearAll removes all buffered events for every run.
func (b *BufferedEmitter) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = make(map[string][]Event)
}
