// SPDX-License-Identifier: MIT
// Package ansatz: compiled circuits.
//
// Implementation:
//   - Stage 1 (New): validate Spec, dimension and options; expand the layers
//     into a flat []gate with parameter indices assigned in gate order.
//   - Stage 2 (Apply/ApplyTo): copy the input amplitudes into a scratch
//     buffer, run every gate in place, renormalize once at the end.
//
// Complexity:
//   - Each gate touches at most two amplitudes: O(#gates) per evaluation,
//     #gates = depth·(3N) for ring and depth·(2N + N(N−1)/2) for full.

package ansatz

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/lvqa/statespace"
)

type gateKind uint8

const (
	gateMix    gateKind = iota + 1 // exp(−iθ|v⟩⟨v|), v = (|i⟩ + i|j⟩)/√2
	gatePhase                      // exp(−iθ|i⟩⟨i|)
	gateCouple                     // exp(−iθ|w⟩⟨w|), w = (|i⟩ + |j⟩)/√2
)

// gate is one compiled operation. param < 0 marks a fixed gate using angle.
type gate struct {
	kind  gateKind
	i, j  int
	param int
	angle float64
}

// Circuit is a compiled, immutable ansatz.
type Circuit struct {
	spec     Spec
	n        int
	gates    []gate
	nParams  int
	partners []int
	ref      statespace.Vector
}

// New validates spec and compiles the circuit for dimension n.
//
// Errors:
//   - ErrInvalidSpec       malformed spec (fatal; nothing is built).
//   - ErrInvalidDimension  n < MinDimension.
//   - ErrInvalidPartners   bad WithPartners map for ProblemSpecific.
//   - statespace.ErrDimensionMismatch  reference of another dimension.
func New(spec Spec, n int, opts ...Option) (*Circuit, error) {
	if err := spec.Validate(); err != nil {
		return nil, ansatzErrorf(opNew, err)
	}
	if n < MinDimension {
		return nil, ansatzErrorf(opNew, fmt.Errorf("n=%d < %d: %w", n, MinDimension, ErrInvalidDimension))
	}
	cfg := gatherOptions(opts...)

	ref, err := statespace.Basis(n, 0)
	if err != nil {
		return nil, ansatzErrorf(opNew, err)
	}
	if cfg.reference != nil {
		if cfg.reference.Dim() != n {
			return nil, ansatzErrorf(opNew, fmt.Errorf("reference dim %d, n=%d: %w", cfg.reference.Dim(), n, statespace.ErrDimensionMismatch))
		}
		ref = *cfg.reference
	}

	partners, err := partnerMap(spec.Kind, n, cfg.partners)
	if err != nil {
		return nil, ansatzErrorf(opNew, err)
	}

	c := &Circuit{spec: spec, n: n, partners: partners, ref: ref}
	for layer := 0; layer < spec.Depth; layer++ {
		if spec.Kind == Structured {
			c.appendPhases()
			c.appendMixers()
		} else {
			c.appendMixers()
			c.appendPhases()
		}
		c.appendEntangler()
	}

	if c.nParams != spec.NumParameters(n) {
		// compile-time layout and the closed-form count must agree
		panic(fmt.Sprintf("ansatz: compiled %d parameters, spec says %d", c.nParams, spec.NumParameters(n)))
	}
	return c, nil
}

func partnerMap(kind Kind, n int, custom []int) ([]int, error) {
	p := make([]int, n)
	switch {
	case kind == Structured:
		for i := range p {
			p[i] = (i + n/2) % n
		}
	case kind == ProblemSpecific && custom != nil:
		if len(custom) != n {
			return nil, fmt.Errorf("len=%d, n=%d: %w", len(custom), n, ErrInvalidPartners)
		}
		for i, j := range custom {
			if j < 0 || j >= n || j == i {
				return nil, fmt.Errorf("partner[%d]=%d: %w", i, j, ErrInvalidPartners)
			}
		}
		copy(p, custom)
	default:
		for i := range p {
			p[i] = (i + 1) % n
		}
	}
	return p, nil
}

func (c *Circuit) nextParam() int {
	k := c.nParams
	c.nParams++
	return k
}

func (c *Circuit) appendMixers() {
	for i := 0; i < c.n; i++ {
		c.gates = append(c.gates, gate{kind: gateMix, i: i, j: c.partners[i], param: c.nextParam()})
	}
}

func (c *Circuit) appendPhases() {
	for i := 0; i < c.n; i++ {
		c.gates = append(c.gates, gate{kind: gatePhase, i: i, param: c.nextParam()})
	}
}

func (c *Circuit) appendEntangler() {
	switch c.spec.Entanglement {
	case Ring:
		for i := 0; i < c.n; i++ {
			c.gates = append(c.gates, gate{kind: gateCouple, i: i, j: (i + 1) % c.n, param: -1, angle: RingCouplingAngle})
		}
	case Full:
		for i := 0; i < c.n; i++ {
			for j := i + 1; j < c.n; j++ {
				c.gates = append(c.gates, gate{kind: gateCouple, i: i, j: j, param: c.nextParam()})
			}
		}
	}
}

// Spec returns the spec the circuit was compiled from.
func (c *Circuit) Spec() Spec { return c.spec }

// Dim returns the Hilbert-space dimension N.
func (c *Circuit) Dim() int { return c.n }

// NumParameters returns the trainable parameter count.
func (c *Circuit) NumParameters() int { return c.nParams }

// Partners returns a copy of the mixing partner map.
func (c *Circuit) Partners() []int {
	out := make([]int, len(c.partners))
	copy(out, c.partners)
	return out
}

// Reference returns the reference state Apply starts from.
func (c *Circuit) Reference() statespace.Vector { return c.ref }

// Apply returns U(θ)|ref⟩.
func (c *Circuit) Apply(params []float64) (statespace.Vector, error) {
	return c.ApplyTo(c.ref, params)
}

// ApplyTo returns U(θ)|in⟩ for an arbitrary input state of dimension N.
//
// Errors:
//   - ErrParameterCount, ErrInvalidParameters for bad θ.
//   - statespace.ErrDimensionMismatch for an input of another dimension.
func (c *Circuit) ApplyTo(in statespace.Vector, params []float64) (statespace.Vector, error) {
	if len(params) != c.nParams {
		return statespace.Vector{}, ansatzErrorf(opApply, fmt.Errorf("got %d, want %d: %w", len(params), c.nParams, ErrParameterCount))
	}
	for k, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return statespace.Vector{}, ansatzErrorf(opApply, fmt.Errorf("param %d = %v: %w", k, p, ErrInvalidParameters))
		}
	}
	if in.Dim() != c.n {
		return statespace.Vector{}, ansatzErrorf(opApply, fmt.Errorf("input dim %d, n=%d: %w", in.Dim(), c.n, statespace.ErrDimensionMismatch))
	}

	amps := in.Amplitudes()
	for _, g := range c.gates {
		theta := g.angle
		if g.param >= 0 {
			theta = params[g.param]
		}
		applyGate(amps, g, theta)
	}
	out, err := statespace.FromAmplitudes(amps)
	if err != nil {
		return statespace.Vector{}, ansatzErrorf(opApply, err)
	}
	return out, nil
}

// applyGate runs ψ ← ψ + (e^{−iθ} − 1)·P·ψ in place.
func applyGate(amps []complex128, g gate, theta float64) {
	k := (cmplx.Exp(complex(0, -theta)) - 1) / 2
	switch g.kind {
	case gatePhase:
		amps[g.i] *= cmplx.Exp(complex(0, -theta))
	case gateMix:
		// P = |v⟩⟨v|, v = (|i⟩ + i|j⟩)/√2, ⟨v|ψ⟩·√2 = ψᵢ − iψⱼ
		ov := amps[g.i] - 1i*amps[g.j]
		amps[g.i] += k * ov
		amps[g.j] += 1i * k * ov
	case gateCouple:
		// P = |w⟩⟨w|, w = (|i⟩ + |j⟩)/√2, ⟨w|ψ⟩·√2 = ψᵢ + ψⱼ
		ow := amps[g.i] + amps[g.j]
		amps[g.i] += k * ow
		amps[g.j] += k * ow
	}
}
