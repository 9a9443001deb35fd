// SPDX-License-Identifier: MIT
// Package vqa_test verifies the three algorithm facades end to end.
package vqa_test

import (
	"context"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/config"
	"github.com/katalvlaran/lvqa/hamiltonian"
	"github.com/katalvlaran/lvqa/metrics"
	"github.com/katalvlaran/lvqa/multistart"
	"github.com/katalvlaran/lvqa/optimizer"
	"github.com/katalvlaran/lvqa/topology"
	"github.com/katalvlaran/lvqa/vqa"
)

func metatronHamiltonian(t *testing.T) *hamiltonian.Hamiltonian {
	t.Helper()
	g, err := topology.Metatron()
	require.NoError(t, err)
	h, err := hamiltonian.FromLaplacian(g)
	require.NoError(t, err)
	return h
}

// TestEigensolver_MetatronGroundEnergy verifies the multi-start loop reaches
// E₀ = −13 within 0.01 with a depth-1 ring circuit and 100 iterations.
func TestEigensolver_MetatronGroundEnergy(t *testing.T) {
	h := metatronHamiltonian(t)
	es, err := vqa.NewEigensolver(h,
		vqa.WithRunOptions(optimizer.WithMaxIterations(100)),
		vqa.WithWorkers(2),
	)
	require.NoError(t, err)
	assert.Equal(t, 26, es.Objective().NumParameters())

	rep, err := es.Solve(context.Background())
	require.NoError(t, err)
	require.True(t, rep.Selection.Valid, "selection: %v", rep.Selection.Err)
	assert.Len(t, rep.Runs, vqa.DefaultStarts)
	assert.InDelta(t, -13, rep.GroundEnergy, 1e-9)
	assert.True(t, rep.Selection.Converged)
	assert.Less(t, math.Abs(rep.Energy-rep.GroundEnergy), 0.01)
	assert.True(t, rep.Verified)
	assert.InDelta(t, 1, rep.State.Norm(), 1e-9)

	e, err := h.Expectation(rep.State)
	require.NoError(t, err)
	assert.InDelta(t, rep.Energy, e, 1e-9)

	rec := rep.Record
	assert.Equal(t, "hardware_efficient", rec.AnsatzType)
	assert.Equal(t, 1, rec.AnsatzDepth)
	assert.Equal(t, "lbfgs", rec.Optimizer)
	assert.InDelta(t, -13.0, rec.ReferenceValue, 1e-9)
	assert.Equal(t, rep.Energy, rec.ObjectiveValue)
	assert.True(t, rec.Converged)
	assert.NotEmpty(t, rec.RunID)
	assert.Greater(t, rec.QualityScore, 0.9)
}

// TestEigensolver_InitialStates verifies each reference state strategy.
func TestEigensolver_InitialStates(t *testing.T) {
	g, _ := topology.Cycle(5)
	h, err := hamiltonian.FromLaplacian(g)
	require.NoError(t, err)

	basis, err := vqa.NewEigensolver(h)
	require.NoError(t, err)
	assert.InDelta(t, 1, basis.Circuit().Reference().Probability(0), 1e-12)

	uniform, err := vqa.NewEigensolver(h, vqa.WithInitialState(vqa.UniformState))
	require.NoError(t, err)
	for _, p := range uniform.Circuit().Reference().Probabilities() {
		assert.InDelta(t, 0.2, p, 1e-12)
	}

	a, err := vqa.NewEigensolver(h, vqa.WithInitialState(vqa.RandomState), vqa.WithSeed(3))
	require.NoError(t, err)
	b, err := vqa.NewEigensolver(h, vqa.WithInitialState(vqa.RandomState), vqa.WithSeed(3))
	require.NoError(t, err)
	assert.Equal(t, a.Circuit().Reference().Amplitudes(), b.Circuit().Reference().Amplitudes())

	assert.Equal(t, "uniform", vqa.UniformState.String())
	assert.Panics(t, func() { vqa.WithInitialState(0) })
}

// TestEigensolver_ProblemSpecificPartners verifies partners come from the operator.
func TestEigensolver_ProblemSpecificPartners(t *testing.T) {
	g, _ := topology.Star(4)
	h, err := hamiltonian.FromLaplacian(g)
	require.NoError(t, err)

	es, err := vqa.NewEigensolver(h, vqa.WithAnsatz(ansatz.Spec{Kind: ansatz.ProblemSpecific, Depth: 1, Entanglement: ansatz.Ring}))
	require.NoError(t, err)
	assert.Equal(t, ansatz.PartnersFromOperator(h.Operator()), es.Circuit().Partners())
}

// TestEigensolver_Fallback verifies an unconverged session is reported, not returned as an error.
func TestEigensolver_Fallback(t *testing.T) {
	h := metatronHamiltonian(t)
	es, err := vqa.NewEigensolver(h,
		vqa.WithStarts(2),
		vqa.WithRunOptions(optimizer.WithMaxIterations(1)),
	)
	require.NoError(t, err)

	rep, err := es.Solve(context.Background())
	require.NoError(t, err)
	assert.False(t, rep.Selection.Valid)
	assert.ErrorIs(t, rep.Selection.Err, multistart.ErrNoValidRun)
	assert.Zero(t, rep.Selection.Quality)
	assert.True(t, math.IsNaN(rep.Energy))
	assert.False(t, rep.Verified)
	assert.True(t, math.IsNaN(rep.Record.ObjectiveValue))
	assert.Empty(t, rep.Record.RunID)
	assert.Equal(t, "hardware_efficient", rep.Record.AnsatzType)
	assert.Equal(t, 1, rep.Record.AnsatzDepth)
	assert.Equal(t, "lbfgs", rep.Record.Optimizer)
	assert.Len(t, rep.Runs, 2)
}

// TestEigensolver_Observer verifies a metrics collector sees every attempt.
func TestEigensolver_Observer(t *testing.T) {
	reg := prometheus.NewRegistry()
	es, err := vqa.NewEigensolver(metatronHamiltonian(t),
		vqa.WithStarts(2),
		vqa.WithRunOptions(optimizer.WithMaxIterations(1)),
		vqa.WithObserver(metrics.NewCollector(reg)),
	)
	require.NoError(t, err)
	_, err = es.Solve(context.Background())
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				counts[mf.GetName()] += c.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, counts["lvqa_multistart_runs_total"])
	assert.Equal(t, 1.0, counts["lvqa_multistart_selections_total"])
	assert.Equal(t, 2.0, counts["lvqa_multistart_invalid_runs_total"])
}

// TestEigensolver_CanceledContext verifies a canceled solve reports ctx.Err().
func TestEigensolver_CanceledContext(t *testing.T) {
	h := metatronHamiltonian(t)
	es, err := vqa.NewEigensolver(h, vqa.WithStarts(3))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := es.Solve(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rep)
	assert.False(t, rep.Selection.Valid)
	for _, r := range rep.Runs {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

// TestEigensolver_Errors covers constructor validation.
func TestEigensolver_Errors(t *testing.T) {
	_, err := vqa.NewEigensolver(nil)
	assert.ErrorIs(t, err, vqa.ErrNilInput)

	h := metatronHamiltonian(t)
	_, err = vqa.NewEigensolver(h, vqa.WithAnsatz(ansatz.Spec{Kind: ansatz.Structured, Depth: 0, Entanglement: ansatz.Ring}))
	assert.ErrorIs(t, err, ansatz.ErrInvalidSpec)

	_, err = vqa.NewEigensolver(h, vqa.WithCriteria(multistart.Criteria{}))
	assert.ErrorIs(t, err, multistart.ErrInvalidCriteria)

	assert.Panics(t, func() { vqa.WithStarts(0) })
	assert.Panics(t, func() { vqa.WithWorkers(0) })
	assert.Panics(t, func() { vqa.WithInitScale(math.Inf(1)) })
}

// TestEigensolverOptions_FromConfig verifies a validated Config builds a solver.
func TestEigensolverOptions_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Ansatz = ansatz.Spec{Kind: ansatz.Structured, Depth: 2, Entanglement: ansatz.Full}
	cfg.Multistart.Workers = 2
	require.NoError(t, cfg.Validate())

	es, err := vqa.NewEigensolver(metatronHamiltonian(t), vqa.EigensolverOptions(cfg)...)
	require.NoError(t, err)
	assert.Equal(t, cfg.Ansatz, es.Circuit().Spec())
	assert.Equal(t, cfg.Ansatz.NumParameters(13), es.Objective().NumParameters())
}
