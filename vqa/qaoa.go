// SPDX-License-Identifier: MIT
// Package vqa: QAOA for MaxCut in the single-excitation encoding.

package vqa

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/cost"
	"github.com/katalvlaran/lvqa/gradient"
	"github.com/katalvlaran/lvqa/hamiltonian"
	"github.com/katalvlaran/lvqa/multistart"
	"github.com/katalvlaran/lvqa/optimizer"
	"github.com/katalvlaran/lvqa/statespace"
	"github.com/katalvlaran/lvqa/topology"
)

// MaxExhaustiveOrder bounds OptimalCut.
const MaxExhaustiveOrder = 24

// QAOAType is the ansatz name written to benchmark records.
const QAOAType = "qaoa"

// QAOA alternates cost and mixer evolutions from the uniform state:
//
//	|ψ(γ,β)⟩ = Π_l e^{−iβ_l B} e^{−iγ_l C} |+⟩,   params = [γ₁, β₁, …, γ_p, β_p].
//
// C is the MaxCut operator of the graph. Because C annihilates the uniform
// state, B must not share that eigenvector; the default PhaseMixer does not.
type QAOA struct {
	g         *topology.Graph
	s         settings
	circuit   *qaoaCircuit
	objective *cost.Expectation
}

// QAOAReport is the outcome of QAOA.Solve.
type QAOAReport struct {
	Runs         []multistart.Run
	Selection    multistart.Selection
	GroundEnergy float64
	Energy       float64
	// ApproximationRatio is Energy / GroundEnergy, 1 when GroundEnergy is 0.
	ApproximationRatio float64
	Params             []float64
	State              statespace.Vector
	// Partition is the cut read off the phases of State; Cut is its size.
	Partition []bool
	Cut       int
	Record    BenchmarkRecord
}

// PhaseMixer returns diag(0, 1, …, n−1).
func PhaseMixer(n int) (*hamiltonian.Hamiltonian, error) {
	if n < 1 {
		return nil, vqaErrorf(opQAOA, fmt.Errorf("n=%d: %w", n, statespace.ErrInvalidDimension))
	}
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		d.SetSym(i, i, float64(i))
	}
	return hamiltonian.FromMatrix(d)
}

// NewQAOA builds the MaxCut objective of g.
//
// Errors:
//   - ErrNilInput for a nil g.
//   - hamiltonian.ErrDimensionMismatch for a mixer of another dimension.
func NewQAOA(g *topology.Graph, opts ...Option) (*QAOA, error) {
	if g == nil {
		return nil, vqaErrorf(opQAOA, ErrNilInput)
	}
	s := defaultSettings()
	s.runOpts = []optimizer.RunOption{optimizer.WithMaxIterations(200)}
	s.apply(opts)
	if err := s.criteria.Validate(); err != nil {
		return nil, vqaErrorf(opQAOA, err)
	}

	c, err := hamiltonian.MaxCut(g)
	if err != nil {
		return nil, vqaErrorf(opQAOA, err)
	}
	mixer := s.mixer
	if mixer == nil {
		if mixer, err = PhaseMixer(g.Order()); err != nil {
			return nil, err
		}
	}
	if mixer.Dim() != c.Dim() {
		return nil, vqaErrorf(opQAOA, fmt.Errorf("mixer %d vs graph %d: %w", mixer.Dim(), c.Dim(), hamiltonian.ErrDimensionMismatch))
	}
	init, err := statespace.Uniform(g.Order())
	if err != nil {
		return nil, vqaErrorf(opQAOA, err)
	}
	circuit := &qaoaCircuit{cost: c, mixer: mixer, depth: s.depth, init: init}
	f, err := cost.NewExpectation(circuit, c)
	if err != nil {
		return nil, vqaErrorf(opQAOA, err)
	}
	s.logger = s.logger.With().Str("component", "qaoa").Logger()
	return &QAOA{g: g, s: s, circuit: circuit, objective: f}, nil
}

// NumParameters returns 2·depth.
func (q *QAOA) NumParameters() int { return q.circuit.NumParameters() }

// Objective returns ⟨ψ(γ,β)|C|ψ(γ,β)⟩.
func (q *QAOA) Objective() *cost.Expectation { return q.objective }

// State returns |ψ(γ,β)⟩.
func (q *QAOA) State(params []float64) (statespace.Vector, error) {
	return q.circuit.Apply(params)
}

// Solve optimizes the angles from every start and reports the best run.
// Gradients are central differences: the evolution angles are not shift-rule
// parameters.
func (q *QAOA) Solve(ctx context.Context) (*QAOAReport, error) {
	e0, err := q.objective.Hamiltonian().GroundEnergy()
	if err != nil {
		return nil, vqaErrorf(opQAOA, err)
	}
	attempts := q.s.attempts(q.objective, ansatz.Spec{}, fmt.Sprintf("%s/d%d", QAOAType, q.s.depth), angleDraw,
		optimizer.WithEstimator(gradient.Central(q.s.gradStep)))
	runs, sel := q.s.session().RunAndSelect(ctx, attempts, q.s.criteria.WithReference(e0))

	rep := &QAOAReport{
		Runs:               runs,
		Selection:          sel,
		GroundEnergy:       e0,
		Energy:             math.NaN(),
		ApproximationRatio: math.NaN(),
		Record:             NewRecord(QAOAType, q.s.depth, q.s.kind, sel),
	}
	if sel.Valid {
		rep.Energy = sel.Best.Cost
		rep.Params = append([]float64(nil), sel.Best.Params...)
		rep.ApproximationRatio = 1
		if e0 != 0 {
			rep.ApproximationRatio = rep.Energy / e0
		}
		if rep.State, err = q.circuit.Apply(sel.Best.Params); err != nil {
			return rep, vqaErrorf(opQAOA, err)
		}
		rep.Partition = PhasePartition(rep.State)
		rep.Cut = hamiltonian.CutValue(q.g, rep.Partition)
	}

	q.s.logger.Info().
		Int("depth", q.s.depth).
		Str("optimizer", q.s.kind.String()).
		Float64("energy", rep.Energy).
		Float64("ratio", rep.ApproximationRatio).
		Int("cut", rep.Cut).
		Msg("qaoa finished")
	if err := ctx.Err(); err != nil {
		return rep, vqaErrorf(opQAOA, err)
	}
	return rep, nil
}

// Sample returns the k most probable basis indices of the reported state,
// most probable first, lower index first on ties. k is clamped to the dimension.
func (r *QAOAReport) Sample(k int) []int {
	probs := r.State.Probabilities()
	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return probs[idx[a]] > probs[idx[b]] })
	if k > len(idx) {
		k = len(idx)
	}
	if k < 0 {
		k = 0
	}
	return idx[:k]
}

// PhasePartition splits the indices by the sign of Re(ψᵢ·conj(ψₘ)), where m
// is the most probable index. For a real ground state of the MaxCut operator
// this is the sign pattern of the amplitudes.
func PhasePartition(psi statespace.Vector) []bool {
	n := psi.Dim()
	if n == 0 {
		return nil
	}
	m := 0
	for i := 1; i < n; i++ {
		if psi.Probability(i) > psi.Probability(m) {
			m = i
		}
	}
	pivot := cmplx.Conj(psi.At(m))
	side := make([]bool, n)
	for i := range side {
		side[i] = real(psi.At(i)*pivot) >= 0
	}
	return side
}

// OptimalCut returns the maximum cut of g by exhaustive search, with vertex 0
// fixed on the true side.
//
// Errors:
//   - ErrNilInput for a nil g.
//   - ErrGraphTooLarge beyond MaxExhaustiveOrder vertices.
func OptimalCut(g *topology.Graph) (int, []bool, error) {
	if g == nil {
		return 0, nil, vqaErrorf(opOptimalCut, ErrNilInput)
	}
	n := g.Order()
	if n > MaxExhaustiveOrder {
		return 0, nil, vqaErrorf(opOptimalCut, fmt.Errorf("%d vertices: %w", n, ErrGraphTooLarge))
	}
	side := make([]bool, n)
	best, bestMask := -1, uint64(0)
	for mask := uint64(0); mask < 1<<uint(n-1); mask++ {
		side[0] = true
		for v := 1; v < n; v++ {
			side[v] = mask&(1<<uint(v-1)) == 0
		}
		if c := hamiltonian.CutValue(g, side); c > best {
			best, bestMask = c, mask
		}
	}
	side[0] = true
	for v := 1; v < n; v++ {
		side[v] = bestMask&(1<<uint(v-1)) == 0
	}
	return best, side, nil
}

// angleDraw interleaves γ ∈ [0, π) and β ∈ [0, π/2).
func angleDraw(rng *rand.Rand, n int) []float64 {
	p := make([]float64, n)
	for i := range p {
		if i%2 == 0 {
			p[i] = rng.Float64() * math.Pi
		} else {
			p[i] = rng.Float64() * math.Pi / 2
		}
	}
	return p
}

// qaoaCircuit implements cost.Circuit over exact evolutions.
type qaoaCircuit struct {
	cost, mixer *hamiltonian.Hamiltonian
	depth       int
	init        statespace.Vector
}

func (c *qaoaCircuit) Dim() int { return c.init.Dim() }

func (c *qaoaCircuit) NumParameters() int { return 2 * c.depth }

func (c *qaoaCircuit) Apply(params []float64) (statespace.Vector, error) {
	if len(params) != c.NumParameters() {
		return statespace.Vector{}, vqaErrorf(opQAOA, fmt.Errorf("got %d parameters, want %d: %w", len(params), c.NumParameters(), optimizer.ErrParameterCount))
	}
	psi := c.init
	var err error
	for l := 0; l < c.depth; l++ {
		if psi, err = c.cost.Evolve(psi, params[2*l]); err != nil {
			return statespace.Vector{}, err
		}
		if psi, err = c.mixer.Evolve(psi, params[2*l+1]); err != nil {
			return statespace.Vector{}, err
		}
	}
	return psi, nil
}
