// Package metrics exposes Prometheus instruments for link resolutions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for ResolutionsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeCached  = "cached"
)

// Metrics groups the instruments recorded by a batch.
type Metrics struct {
	ResolutionsTotal   *prometheus.CounterVec
	EntriesPerResult   prometheus.Histogram
	CyclesPerResult    prometheus.Histogram
	InterfaceCacheSize prometheus.Gauge
	ResolutionDuration prometheus.Histogram
}

// New creates the instruments and registers them on reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkorder_resolutions_total",
				Help: "Number of link resolutions by outcome.",
			},
			[]string{"outcome"},
		),
		EntriesPerResult: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linkorder_result_entries",
				Help:    "Number of entries on each resolved link line.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		CyclesPerResult: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linkorder_result_cycles",
				Help:    "Number of static-library cycles on each resolved link line.",
				Buckets: []float64{0, 1, 2, 4, 8},
			},
		),
		InterfaceCacheSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "linkorder_interface_cache_entries",
				Help: "Number of memoized link interfaces after the last batch.",
			},
		),
		ResolutionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linkorder_resolution_duration_seconds",
				Help:    "Time taken to resolve one link line.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.ResolutionsTotal,
			m.EntriesPerResult,
			m.CyclesPerResult,
			m.InterfaceCacheSize,
			m.ResolutionDuration,
		)
	}
	return m
}
