// SPDX-License-Identifier: MIT
package vqa_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvqa/hamiltonian"
	"github.com/katalvlaran/lvqa/statespace"
	"github.com/katalvlaran/lvqa/topology"
	"github.com/katalvlaran/lvqa/vqa"
)

// TestQAOA_Cycle4 verifies QAOA finds the maximum cut of the 4-cycle.
func TestQAOA_Cycle4(t *testing.T) {
	g, err := topology.Cycle(4)
	require.NoError(t, err)
	q, err := vqa.NewQAOA(g, vqa.WithStarts(6))
	require.NoError(t, err)
	assert.Equal(t, 4, q.NumParameters())

	rep, err := q.Solve(context.Background())
	require.NoError(t, err)
	require.True(t, rep.Selection.Valid, "selection: %v", rep.Selection.Err)
	assert.InDelta(t, -2, rep.GroundEnergy, 1e-9)
	assert.Greater(t, rep.ApproximationRatio, 0.95)
	assert.LessOrEqual(t, rep.ApproximationRatio, 1+1e-9)
	assert.Len(t, rep.Params, 4)

	best, _, err := vqa.OptimalCut(g)
	require.NoError(t, err)
	assert.Equal(t, best, rep.Cut)
	assert.Equal(t, rep.Cut, hamiltonian.CutValue(g, rep.Partition))

	assert.Equal(t, vqa.QAOAType, rep.Record.AnsatzType)
	assert.Equal(t, 2, rep.Record.AnsatzDepth)
	assert.InDelta(t, -2.0, rep.Record.ReferenceValue, 1e-9)
	assert.Equal(t, "lbfgs", rep.Record.Optimizer)
	for _, r := range rep.Runs {
		assert.Equal(t, "qaoa/d2", r.Circuit)
	}

	top := rep.Sample(2)
	require.Len(t, top, 2)
	assert.NotEqual(t, top[0], top[1])
	assert.GreaterOrEqual(t, rep.State.Probability(top[0]), rep.State.Probability(top[1]))
	assert.Len(t, rep.Sample(10), 4)
	assert.Empty(t, rep.Sample(-1))
}

// TestQAOA_UniformEigenvectorMixer verifies a mixer sharing the uniform
// eigenvector leaves the objective flat, while the phase mixer does not.
func TestQAOA_UniformEigenvectorMixer(t *testing.T) {
	g, _ := topology.Cycle(4)
	lap, err := hamiltonian.FromLaplacian(g)
	require.NoError(t, err)

	flat, err := vqa.NewQAOA(g, vqa.WithMixer(lap))
	require.NoError(t, err)
	phase, err := vqa.NewQAOA(g)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(9))
	varied := false
	for trial := 0; trial < 5; trial++ {
		p := []float64{rng.Float64() * math.Pi, rng.Float64(), rng.Float64() * math.Pi, rng.Float64()}
		e, err := flat.Objective().Evaluate(p)
		require.NoError(t, err)
		assert.InDelta(t, 0, e, 1e-12)

		e, err = phase.Objective().Evaluate(p)
		require.NoError(t, err)
		if math.Abs(e) > 1e-3 {
			varied = true
		}
	}
	assert.True(t, varied)

	psi, err := phase.State(make([]float64, 4))
	require.NoError(t, err)
	for _, pr := range psi.Probabilities() {
		assert.InDelta(t, 0.25, pr, 1e-12)
	}
}

// TestQAOA_Errors covers nil graphs, mixer dimension and parameter count.
func TestQAOA_Errors(t *testing.T) {
	_, err := vqa.NewQAOA(nil)
	assert.ErrorIs(t, err, vqa.ErrNilInput)

	g, _ := topology.Cycle(4)
	mixer, err := vqa.PhaseMixer(5)
	require.NoError(t, err)
	_, err = vqa.NewQAOA(g, vqa.WithMixer(mixer))
	assert.ErrorIs(t, err, hamiltonian.ErrDimensionMismatch)

	q, err := vqa.NewQAOA(g, vqa.WithDepth(3))
	require.NoError(t, err)
	assert.Equal(t, 6, q.NumParameters())
	_, err = q.State(make([]float64, 4))
	assert.Error(t, err)

	assert.Panics(t, func() { vqa.WithDepth(0) })
	assert.Panics(t, func() { vqa.WithMixer(nil) })
	assert.Panics(t, func() { vqa.WithGradientStep(0) })
}

// TestOptimalCut verifies exhaustive cuts on small graphs.
func TestOptimalCut(t *testing.T) {
	cases := []struct {
		name string
		make func() (*topology.Graph, error)
		want int
	}{
		{"C4", func() (*topology.Graph, error) { return topology.Cycle(4) }, 4},
		{"C5", func() (*topology.Graph, error) { return topology.Cycle(5) }, 4},
		{"K4", func() (*topology.Graph, error) { return topology.Complete(4) }, 4},
		{"S5", func() (*topology.Graph, error) { return topology.Star(5) }, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := tc.make()
			require.NoError(t, err)
			cut, side, err := vqa.OptimalCut(g)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cut)
			assert.True(t, side[0])
			assert.Equal(t, cut, hamiltonian.CutValue(g, side))
		})
	}

	_, _, err := vqa.OptimalCut(nil)
	assert.ErrorIs(t, err, vqa.ErrNilInput)
	big, _ := topology.Cycle(vqa.MaxExhaustiveOrder + 1)
	_, _, err = vqa.OptimalCut(big)
	assert.ErrorIs(t, err, vqa.ErrGraphTooLarge)
}

// TestPhasePartition verifies the split ignores the global phase.
func TestPhasePartition(t *testing.T) {
	phase := complex(math.Cos(0.7), math.Sin(0.7))
	amps := []complex128{0.6 * phase, -0.5 * phase, 0.4 * phase, -0.48 * phase}
	psi, err := statespace.FromAmplitudes(amps)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, false}, vqa.PhasePartition(psi))
}
