// SPDX-License-Identifier: MIT
package metrics_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvqa/metrics"
	"github.com/katalvlaran/lvqa/multistart"
	"github.com/katalvlaran/lvqa/optimizer"
)

// gather indexes every sample by metric name and label values.
func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func counterWithLabels(mf *dto.MetricFamily, labels map[string]string) float64 {
	for _, m := range mf.GetMetric() {
		match := true
		for _, lp := range m.GetLabel() {
			if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
				match = false
			}
		}
		if match {
			return m.GetCounter().GetValue()
		}
	}
	return -1
}

// TestCollector_ObservesSession verifies counters after a session with one failure.
func TestCollector_ObservesSession(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := metrics.NewCollector(reg)

	attempts := []multistart.Attempt{
		func(context.Context) multistart.Run {
			return multistart.Run{Optimizer: optimizer.LBFGS, Cost: 0.01, Converged: true, Iterations: 7, Evaluations: 100}
		},
		func(context.Context) multistart.Run {
			return multistart.Run{Optimizer: optimizer.LBFGS, Cost: 0.02, Converged: true, Iterations: 9, Evaluations: 120}
		},
		func(context.Context) multistart.Run { panic("boom") },
	}
	s := multistart.NewSession(multistart.WithObserver(col), multistart.WithWorkers(2))
	_, sel := s.RunAndSelect(context.Background(), attempts, multistart.DefaultCriteria())
	require.True(t, sel.Valid)

	fams := gather(t, reg)
	runs := fams["lvqa_multistart_runs_total"]
	require.NotNil(t, runs)
	assert.Equal(t, 2.0, counterWithLabels(runs, map[string]string{"optimizer": "lbfgs", "converged": "true"}))
	assert.Equal(t, 1.0, counterWithLabels(runs, map[string]string{"optimizer": "unknown", "converged": "false"}))

	evals := fams["lvqa_multistart_cost_evaluations_total"]
	assert.Equal(t, 220.0, counterWithLabels(evals, map[string]string{"optimizer": "lbfgs"}))

	assert.Equal(t, 1.0, fams["lvqa_multistart_invalid_runs_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 1.0, counterWithLabels(fams["lvqa_multistart_run_errors_total"], map[string]string{"optimizer": "unknown"}))
	assert.InDelta(t, sel.Quality, fams["lvqa_multistart_selection_quality"].GetMetric()[0].GetGauge().GetValue(), 1e-15)

	hist := fams["lvqa_multistart_run_iterations"]
	require.NotNil(t, hist)
	var samples uint64
	for _, m := range hist.GetMetric() {
		samples += m.GetHistogram().GetSampleCount()
	}
	assert.Equal(t, uint64(3), samples)
}

// TestCollector_DuplicateRegistrationPanics verifies promauto registration semantics.
func TestCollector_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewCollector(reg)
	assert.Panics(t, func() { metrics.NewCollector(reg) })
}

// TestCollector_Fallback verifies the fallback outcome label.
func TestCollector_Fallback(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := metrics.NewCollector(reg)
	col.ObserveSelection(multistart.Select([]multistart.Run{{Cost: 1}}, multistart.DefaultCriteria()))

	fams := gather(t, reg)
	assert.Equal(t, 1.0, counterWithLabels(fams["lvqa_multistart_selections_total"], map[string]string{"outcome": "fallback"}))
	assert.Zero(t, fams["lvqa_multistart_selection_quality"].GetMetric()[0].GetGauge().GetValue())
}
