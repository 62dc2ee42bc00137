// Package metrics exposes the benchmark's Prometheus instrumentation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/0x19f/sievebench"
)

var (
	// PhaseDuration tracks wall-clock duration per benchmark phase
	// (read, insert, evaluate, total).
	PhaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sievebench_phase_duration_seconds",
			Help:    "Wall-clock duration of each benchmark phase",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		},
		[]string{"phase"},
	)

	// QueryOutcomes counts evaluation outcomes by class.
	QueryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sievebench_query_outcomes_total",
			Help: "Evaluation outcomes by class",
		},
		[]string{"outcome"},
	)

	// WordsInserted counts elements inserted into the filter.
	WordsInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sievebench_words_inserted_total",
			Help: "Total number of words inserted into the filter",
		},
	)

	// FillRatio reports the fraction of filter bits set after the
	// insert phase.
	FillRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sievebench_filter_fill_ratio",
			Help: "Fraction of filter bits set after the insert phase",
		},
	)
)

// ObservePhase records a completed phase duration.
func ObservePhase(phase string, d time.Duration) {
	PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// RecordEvaluation feeds a finished evaluation's counters into the
// outcome counters.
func RecordEvaluation(r sievebench.EvaluationResult) {
	QueryOutcomes.WithLabelValues("true_positive").Add(float64(r.TotalPositives - r.FalseNegatives))
	QueryOutcomes.WithLabelValues("true_negative").Add(float64(r.TotalNegatives - r.FalsePositives))
	QueryOutcomes.WithLabelValues("false_positive").Add(float64(r.FalsePositives))
	QueryOutcomes.WithLabelValues("false_negative").Add(float64(r.FalseNegatives))
}
