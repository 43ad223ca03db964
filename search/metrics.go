package search

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics provides Prometheus-compatible metrics for search runs.
//
// Metrics exposed (all namespaced "search"):
//
//  1. nodes_checked_total (counter): goal checks performed.
//     Labels: mode (sequential/parallel).
//
//  2. nodes_pruned_total (counter): nodes classified Prune.
//     Labels: mode.
//
//  3. duplicates_skipped_total (counter): neighbours skipped because they
//     were already in the visited set. Labels: mode.
//
//  4. frontier_depth (gauge): pending nodes at the last sample point.
//
//  5. active_workers (gauge): workers currently running.
//
//  6. solve_duration_ms (histogram): run duration in milliseconds.
//     Labels: mode, outcome (solved/exhausted/cancelled).
//     Buckets: 1ms to 60s.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := search.NewPrometheusMetrics(registry)
//	engine, err := search.New(solver, search.WithMetrics[Board](metrics))
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// Thread-safe; recording methods are called from worker goroutines.
type PrometheusMetrics struct {
	nodesChecked      *prometheus.CounterVec
	nodesPruned       *prometheus.CounterVec
	duplicatesSkipped *prometheus.CounterVec

	frontierDepth prometheus.Gauge
	activeWorkers prometheus.Gauge

	solveDuration *prometheus.HistogramVec

	registry prometheus.Registerer

	mu      sync.RWMutex
	enabled bool
}

// NewPrometheusMetrics creates and registers all search metrics with the
// provided registry. A nil registry falls back to the global default
// registerer; prefer a dedicated registry for isolation.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	pm := &PrometheusMetrics{
		registry: registry,
		enabled:  true,
	}

	pm.nodesChecked = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "search",
		Name:      "nodes_checked_total",
		Help:      "Total number of nodes goal-checked",
	}, []string{"mode"})

	pm.nodesPruned = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "search",
		Name:      "nodes_pruned_total",
		Help:      "Total number of nodes classified as dead ends",
	}, []string{"mode"})

	pm.duplicatesSkipped = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "search",
		Name:      "duplicates_skipped_total",
		Help:      "Neighbours skipped because they were already visited",
	}, []string{"mode"})

	pm.frontierDepth = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "search",
		Name:      "frontier_depth",
		Help:      "Number of pending nodes in the frontier at the last sample",
	})

	pm.activeWorkers = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "search",
		Name:      "active_workers",
		Help:      "Worker goroutines currently draining the frontier",
	})

	pm.solveDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "search",
		Name:      "solve_duration_ms",
		Help:      "Wall-clock run duration in milliseconds",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000, 30000, 60000},
	}, []string{"mode", "outcome"})

	return pm
}

// IncNodesChecked counts one goal check in the given mode.
func (pm *PrometheusMetrics) IncNodesChecked(mode string) {
	if !pm.recording() {
		return
	}
	pm.nodesChecked.WithLabelValues(mode).Inc()
}

// IncNodesPruned counts one Prune classification in the given mode.
func (pm *PrometheusMetrics) IncNodesPruned(mode string) {
	if !pm.recording() {
		return
	}
	pm.nodesPruned.WithLabelValues(mode).Inc()
}

// IncDuplicatesSkipped counts one neighbour skipped via the visited set.
func (pm *PrometheusMetrics) IncDuplicatesSkipped(mode string) {
	if !pm.recording() {
		return
	}
	pm.duplicatesSkipped.WithLabelValues(mode).Inc()
}

// SetFrontierDepth samples the current frontier size.
func (pm *PrometheusMetrics) SetFrontierDepth(depth int) {
	if !pm.recording() {
		return
	}
	pm.frontierDepth.Set(float64(depth))
}

// SetActiveWorkers sets the number of running workers.
func (pm *PrometheusMetrics) SetActiveWorkers(count int) {
	if !pm.recording() {
		return
	}
	pm.activeWorkers.Set(float64(count))
}

// ObserveSolveDuration records a completed run's duration.
func (pm *PrometheusMetrics) ObserveSolveDuration(mode, outcome string, elapsed time.Duration) {
	if !pm.recording() {
		return
	}
	pm.solveDuration.WithLabelValues(mode, outcome).Observe(float64(elapsed.Milliseconds()))
}

func (pm *PrometheusMetrics) recording() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// Disable temporarily disables metric recording (useful for testing).
func (pm *PrometheusMetrics) Disable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = false
}

// Enable re-enables metric recording after Disable.
func (pm *PrometheusMetrics) Enable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = true
}

// Reset clears the gauges. Counters and histograms are cumulative and are
// not reset without unregistering.
func (pm *PrometheusMetrics) Reset() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.frontierDepth.Set(0)
	pm.activeWorkers.Set(0)
}
