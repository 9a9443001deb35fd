// SPDX-License-Identifier: MIT
// Package cost_test verifies both objective variants.
package cost_test

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/cost"
	"github.com/katalvlaran/lvqa/hamiltonian"
	"github.com/katalvlaran/lvqa/topology"
)

var ringSpec = ansatz.Spec{Kind: ansatz.HardwareEfficient, Depth: 1, Entanglement: ansatz.Ring}

// TestExpectation_MatchesManual verifies E(θ) against Apply + Expectation.
func TestExpectation_MatchesManual(t *testing.T) {
	g, _ := topology.Metatron()
	h, err := hamiltonian.FromLaplacian(g)
	require.NoError(t, err)
	c, err := ansatz.New(ringSpec, 13)
	require.NoError(t, err)

	f, err := cost.NewExpectation(c, h)
	require.NoError(t, err)
	assert.Equal(t, 26, f.NumParameters())

	rng := rand.New(rand.NewSource(2))
	p := make([]float64, f.NumParameters())
	for i := range p {
		p[i] = rng.NormFloat64()
	}
	got, err := f.Evaluate(p)
	require.NoError(t, err)

	psi, err := c.Apply(p)
	require.NoError(t, err)
	want, err := h.Expectation(psi)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.GreaterOrEqual(t, got, -13-1e-9)
	assert.LessOrEqual(t, got, 1e-9)

	_, err = f.Evaluate(p[:3])
	assert.ErrorIs(t, err, ansatz.ErrParameterCount)
}

// TestExpectation_Errors covers nil inputs and dimension mismatch.
func TestExpectation_Errors(t *testing.T) {
	g, _ := topology.Cycle(5)
	h, _ := hamiltonian.FromLaplacian(g)
	c, _ := ansatz.New(ringSpec, 4)

	_, err := cost.NewExpectation(c, h)
	assert.ErrorIs(t, err, cost.ErrDimensionMismatch)
	_, err = cost.NewExpectation(c, nil)
	assert.ErrorIs(t, err, cost.ErrNilInput)
	_, err = cost.NewExpectation(nil, h)
	assert.ErrorIs(t, err, cost.ErrNilInput)

	var typed *ansatz.Circuit
	assert.NotPanics(t, func() {
		_, err = cost.NewExpectation(typed, h)
	})
	assert.ErrorIs(t, err, cost.ErrNilInput)
}

// TestCrossEntropy_Values verifies the clamp and the averaged loss.
func TestCrossEntropy_Values(t *testing.T) {
	c, err := ansatz.New(ringSpec, 5)
	require.NoError(t, err)
	samples := []cost.Sample{
		{Features: []float64{0, 0}, Label: 0},
		{Features: []float64{1, 1}, Label: 1},
	}
	nz, err := ansatz.FitNormalizer([][]float64{samples[0].Features, samples[1].Features})
	require.NoError(t, err)

	ce, err := cost.NewCrossEntropy(c, samples, nz)
	require.NoError(t, err)
	assert.Equal(t, 2, ce.Len())

	p := make([]float64, c.NumParameters())
	probs, err := ce.TrainingProbabilities(p)
	require.NoError(t, err)

	want := 0.0
	for i, pr := range probs {
		pr = math.Min(1-cost.ProbabilityFloor, math.Max(cost.ProbabilityFloor, pr))
		if samples[i].Label == 0 {
			want -= math.Log(pr)
		} else {
			want -= math.Log(1 - pr)
		}
	}
	want /= 2

	got, err := ce.Evaluate(p)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-12)
	assert.False(t, math.IsInf(got, 0))

	p0, err := ce.ClassZeroProbability(p, []float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, probs[0], p0, 1e-12)
}

// TestCrossEntropy_Rejects covers labels, empty data and feature mismatch.
func TestCrossEntropy_Rejects(t *testing.T) {
	c, _ := ansatz.New(ringSpec, 5)
	nz := ansatz.Normalizer{Min: []float64{0}, Max: []float64{1}}

	_, err := cost.NewCrossEntropy(c, nil, nz)
	assert.ErrorIs(t, err, cost.ErrNoSamples)

	_, err = cost.NewCrossEntropy(c, []cost.Sample{{Features: []float64{0.5}, Label: 2}}, nz)
	assert.ErrorIs(t, err, cost.ErrInvalidLabel)

	_, err = cost.NewCrossEntropy(c, []cost.Sample{{Features: []float64{0.5, 1}, Label: 0}}, nz)
	assert.ErrorIs(t, err, ansatz.ErrInvalidFeatures)

	var typed *ansatz.Circuit
	assert.NotPanics(t, func() {
		_, err = cost.NewCrossEntropy(typed, []cost.Sample{{Features: []float64{0.5}, Label: 0}}, nz)
	})
	assert.ErrorIs(t, err, cost.ErrNilInput)
	assert.NotPanics(t, func() {
		_, err = cost.ClassZero(typed, nz, nil, []float64{0.5})
	})
	assert.ErrorIs(t, err, cost.ErrNilInput)
}

// TestFunctions_ConcurrentEvaluate verifies identical results under concurrent calls.
func TestFunctions_ConcurrentEvaluate(t *testing.T) {
	g, _ := topology.Wheel(6)
	h, _ := hamiltonian.FromLaplacian(g)
	c, _ := ansatz.New(ansatz.Spec{Kind: ansatz.Structured, Depth: 2, Entanglement: ansatz.Full}, 6)
	f, err := cost.NewExpectation(c, h)
	require.NoError(t, err)

	p := make([]float64, f.NumParameters())
	for i := range p {
		p[i] = 0.1 * float64(i%7)
	}
	ref, err := f.Evaluate(p)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]float64, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = f.Evaluate(p)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, ref, r)
	}
}
