// SPDX-License-Identifier: MIT
package optimizer_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/cost"
	"github.com/katalvlaran/lvqa/hamiltonian"
	"github.com/katalvlaran/lvqa/optimizer"
	"github.com/katalvlaran/lvqa/topology"
)

// TestLBFGS_MetatronGroundEnergy runs the full variational loop on the
// 13-vertex Laplacian Hamiltonian with a depth-1 ring circuit and checks the
// energy reaches E₀ within 0.01 in at most 100 iterations.
func TestLBFGS_MetatronGroundEnergy(t *testing.T) {
	g, err := topology.Metatron()
	require.NoError(t, err)
	h, err := hamiltonian.FromLaplacian(g)
	require.NoError(t, err)
	e0, err := h.GroundEnergy()
	require.NoError(t, err)

	c, err := ansatz.New(ansatz.Spec{Kind: ansatz.HardwareEfficient, Depth: 1, Entanglement: ansatz.Ring}, g.Order())
	require.NoError(t, err)
	f, err := cost.NewExpectation(c, h)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	x0 := make([]float64, f.NumParameters())
	for i := range x0 {
		x0[i] = 0.2*rng.Float64() - 0.1
	}

	m, err := optimizer.NewLBFGS(f)
	require.NoError(t, err)
	res := optimizer.Run(m, x0,
		optimizer.WithMaxIterations(100),
		optimizer.WithCostTolerance(1e-6),
	)
	require.NoError(t, res.Err)
	assert.True(t, res.Converged)
	assert.Less(t, math.Abs(res.Cost-e0), 0.01)
	assert.GreaterOrEqual(t, res.Cost, e0-1e-9)

	got, err := f.Evaluate(res.Params)
	require.NoError(t, err)
	assert.Equal(t, res.Cost, got)
}
