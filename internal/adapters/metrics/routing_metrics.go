package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RoutingMetricsCollector handles all route planning metrics
type RoutingMetricsCollector struct {
	solvesTotal    *prometheus.CounterVec
	solveDuration  *prometheus.HistogramVec
	statesExplored prometheus.Histogram
	routeDistance  prometheus.Histogram
	refuelStops    prometheus.Histogram
}

// NewRoutingMetricsCollector creates a new routing metrics collector
func NewRoutingMetricsCollector() *RoutingMetricsCollector {
	return &RoutingMetricsCollector{
		// Solve outcomes counter
		solvesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solves_total",
				Help:      "Total number of route solves by outcome",
			},
			[]string{"outcome"},
		),

		// Solve wall time histogram
		solveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Route solve duration distribution",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"outcome"},
		),

		// Settled (city, fuel) states per solve
		statesExplored: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "states_explored",
				Help:      "Distinct (city, fuel) states settled per solve",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),

		// Distance of successful routes
		routeDistance: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "route_distance",
				Help:      "Total distance of successful routes",
				Buckets:   prometheus.ExponentialBuckets(10, 3, 10),
			},
		),

		// Intermediate refuels on successful routes
		refuelStops: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "refuel_stops",
				Help:      "Refuel stops on successful routes",
				Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
			},
		),
	}
}

// Register registers all routing metrics with the Prometheus registry
func (c *RoutingMetricsCollector) Register() error {
	return register(
		c.solvesTotal,
		c.solveDuration,
		c.statesExplored,
		c.routeDistance,
		c.refuelStops,
	)
}

// RecordSolve records one solve. Distance and refuel stops are observed only on success.
func (c *RoutingMetricsCollector) RecordSolve(
	outcome string,
	statesExplored int,
	distance int,
	refuelStops int,
	durationSeconds float64,
) {
	c.solvesTotal.WithLabelValues(outcome).Inc()
	c.solveDuration.WithLabelValues(outcome).Observe(durationSeconds)

	if outcome == OutcomeError || outcome == OutcomeCancelled {
		return
	}
	c.statesExplored.Observe(float64(statesExplored))

	if outcome == OutcomeSuccess {
		c.routeDistance.Observe(float64(distance))
		c.refuelStops.Observe(float64(refuelStops))
	}
}
