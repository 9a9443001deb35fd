// SPDX-License-Identifier: MIT

// Package metrics exports multi-start session outcomes as Prometheus metrics.
//
// A Collector registers its metrics on the given registerer and implements
// multistart.Observer:
//
//	reg := prometheus.NewRegistry()
//	col := metrics.NewCollector(reg)
//	s := multistart.NewSession(multistart.WithObserver(col))
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/lvqa/multistart"
)

const (
	namespace = "lvqa"
	subsystem = "multistart"
)

// IterationBuckets spans short plateau exits up to the default iteration budget.
var IterationBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}

// Collector holds the session metrics. It is safe for concurrent use.
type Collector struct {
	runs        *prometheus.CounterVec
	failures    *prometheus.CounterVec
	iterations  *prometheus.HistogramVec
	evaluations *prometheus.CounterVec
	selections  *prometheus.CounterVec
	invalid     prometheus.Counter
	quality     prometheus.Gauge
}

// NewCollector creates and registers every metric on reg.
// It panics if a metric with the same name is already registered.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Finished optimization attempts by optimizer and convergence.",
		}, []string{"optimizer", "converged"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_errors_total",
			Help:      "Attempts that ended with an error (divergence, panic, cancellation).",
		}, []string{"optimizer"}),
		iterations: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_iterations",
			Help:      "Optimizer iterations per attempt.",
			Buckets:   IterationBuckets,
		}, []string{"optimizer"}),
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cost_evaluations_total",
			Help:      "Objective evaluations, gradient evaluations included.",
		}, []string{"optimizer"}),
		selections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "selections_total",
			Help:      "Completed selections by outcome.",
		}, []string{"outcome"}),
		invalid: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "invalid_runs_total",
			Help:      "Runs excluded by the selection filter.",
		}),
		quality: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "selection_quality",
			Help:      "Quality score of the most recent selection.",
		}),
	}
}

// ObserveRun records one finished attempt.
func (c *Collector) ObserveRun(r multistart.Run) {
	opt := optimizerLabel(r)
	c.runs.WithLabelValues(opt, strconv.FormatBool(r.Converged)).Inc()
	c.iterations.WithLabelValues(opt).Observe(float64(r.Iterations))
	c.evaluations.WithLabelValues(opt).Add(float64(r.Evaluations))
	if r.Err != nil {
		c.failures.WithLabelValues(opt).Inc()
	}
}

// ObserveSelection records one selection.
func (c *Collector) ObserveSelection(s multistart.Selection) {
	outcome := "valid"
	if !s.Valid {
		outcome = "fallback"
	}
	c.selections.WithLabelValues(outcome).Inc()
	c.invalid.Add(float64(s.Stats.Total - s.Stats.Valid))
	c.quality.Set(s.Quality)
}

func optimizerLabel(r multistart.Run) string {
	if r.Optimizer == 0 {
		return "unknown"
	}
	return r.Optimizer.String()
}

var _ multistart.Observer = (*Collector)(nil)
