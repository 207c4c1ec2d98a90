package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the counters recorded by the planner.
type Metrics struct {
	registry *prometheus.Registry

	Searches       *prometheus.CounterVec
	SearchDuration prometheus.Histogram
	PlansCompleted prometheus.Histogram
	PlansExpanded  prometheus.Counter
	CacheLookups   *prometheus.CounterVec
}

// NewMetrics creates and registers every collector on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flightplan",
			Name:      "searches_total",
			Help:      "Plan searches by outcome.",
		}, []string{"outcome"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flightplan",
			Name:      "search_duration_seconds",
			Help:      "Wall time of plan enumeration.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		PlansCompleted: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flightplan",
			Name:      "plans_completed",
			Help:      "Completed plans per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		PlansExpanded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flightplan",
			Name:      "plans_expanded_total",
			Help:      "Partial plans popped from the worklist and extended.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flightplan",
			Name:      "cache_lookups_total",
			Help:      "Plan cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Searches,
		m.SearchDuration,
		m.PlansCompleted,
		m.PlansExpanded,
		m.CacheLookups,
	)
	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
