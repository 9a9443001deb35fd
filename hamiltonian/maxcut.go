// SPDX-License-Identifier: MIT
// Package hamiltonian: combinatorial cost operators.

package hamiltonian

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvqa/topology"
)

// MaxCut returns the cut-weight operator of g in the single-excitation
// encoding: every edge (i,j) contributes −½ to H[i,i] and H[j,j] and +½ to
// H[i,j] and H[j,i]. The result equals −½·L: low energies favour states whose
// amplitude signs alternate across edges, and on bipartite graphs the sign
// pattern of the ground state is a maximum cut.
func MaxCut(g *topology.Graph, opts ...Option) (*Hamiltonian, error) {
	if g == nil {
		return nil, hamErrorf(opMaxCut, ErrNilGraph)
	}
	n := g.Order()
	h := mat.NewSymDense(n, nil)
	for _, e := range g.Edges() {
		h.SetSym(e.U, e.U, h.At(e.U, e.U)-0.5)
		h.SetSym(e.V, e.V, h.At(e.V, e.V)-0.5)
		h.SetSym(e.U, e.V, h.At(e.U, e.V)+0.5)
	}
	return fromSym(h, gatherOptions(opts...), opMaxCut)
}

// CutValue returns the number of edges of g crossing the partition given by
// side (true/false per vertex). It ignores entries beyond g.Order().
func CutValue(g *topology.Graph, side []bool) int {
	cut := 0
	for _, e := range g.Edges() {
		if e.U < len(side) && e.V < len(side) && side[e.U] != side[e.V] {
			cut++
		}
	}
	return cut
}
