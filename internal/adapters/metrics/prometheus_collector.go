package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "fuelroute"
	// Subsystem for planner metrics
	subsystem = "planner"
)

var (
	registryMu sync.RWMutex

	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalRoutingCollector is the singleton routing metrics collector
	// Set by SetGlobalRoutingCollector() when metrics are enabled
	globalRoutingCollector RoutingMetricsRecorder
)

// Solve outcomes used as the "outcome" label
const (
	OutcomeSuccess   = "success"
	OutcomeNoRoute   = "no_route"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled"
)

// RoutingMetricsRecorder defines the interface for recording planner metrics
// This interface is used by application code to record metrics
type RoutingMetricsRecorder interface {
	RecordSolve(outcome string, statesExplored int, distance int, refuelStops int, durationSeconds float64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	Registry = prometheus.NewRegistry()
}

// ResetRegistry disables metrics and drops the global collector
func ResetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	Registry = nil
	globalRoutingCollector = nil
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return GetRegistry() != nil
}

// SetGlobalRoutingCollector sets the global routing metrics collector
func SetGlobalRoutingCollector(collector RoutingMetricsRecorder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	globalRoutingCollector = collector
}

// RecordSolve records a solve globally
func RecordSolve(outcome string, statesExplored int, distance int, refuelStops int, durationSeconds float64) {
	registryMu.RLock()
	collector := globalRoutingCollector
	registryMu.RUnlock()

	if collector != nil {
		collector.RecordSolve(outcome, statesExplored, distance, refuelStops, durationSeconds)
	}
}

// register adds collectors to the global registry; a no-op when metrics are disabled
func register(collectors ...prometheus.Collector) error {
	registry := GetRegistry()
	if registry == nil {
		return nil
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
