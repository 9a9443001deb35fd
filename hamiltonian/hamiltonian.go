// SPDX-License-Identifier: MIT
// Package hamiltonian: construction and expectation values.

package hamiltonian

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvqa/statespace"
	"github.com/katalvlaran/lvqa/topology"
)

// Hamiltonian is an immutable Hermitian operator with a memoized spectrum.
type Hamiltonian struct {
	op     statespace.Operator
	isReal bool
	cfg    config

	once     sync.Once
	spec     spectrum
	specErr  error
	factored int // number of factorizations performed; 0 or 1
}

// FromLaplacian builds H = −J·L + diag(V) from the graph Laplacian L.
// With default options H = −L and its ground energy is −λ_max(L).
//
// Errors:
//   - ErrNilGraph if g is nil.
//   - ErrDimensionMismatch if WithPotential length differs from g.Order().
func FromLaplacian(g *topology.Graph, opts ...Option) (*Hamiltonian, error) {
	if g == nil {
		return nil, hamErrorf(opFromLaplacian, ErrNilGraph)
	}
	cfg := gatherOptions(opts...)
	n := g.Order()
	if cfg.potential != nil && len(cfg.potential) != n {
		return nil, hamErrorf(opFromLaplacian, fmt.Errorf("potential len=%d, n=%d: %w", len(cfg.potential), n, ErrDimensionMismatch))
	}

	l := g.Laplacian()
	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			h.SetSym(i, j, -cfg.coupling*l.At(i, j))
		}
		if cfg.potential != nil {
			h.SetSym(i, i, h.At(i, i)+cfg.potential[i])
		}
	}
	return fromSym(h, cfg, opFromLaplacian)
}

// FromMatrix builds a Hamiltonian from a square real matrix that must be
// symmetric within HermitianTolerance.
func FromMatrix(m mat.Matrix, opts ...Option) (*Hamiltonian, error) {
	r, c := m.Dims()
	if r != c {
		return nil, hamErrorf(opFromMatrix, fmt.Errorf("%dx%d: %w", r, c, ErrDimensionMismatch))
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > HermitianTolerance {
				return nil, hamErrorf(opFromMatrix, fmt.Errorf("entry (%d,%d): %w", i, j, ErrNonHermitian))
			}
		}
	}
	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			sym.SetSym(i, j, m.At(i, j))
		}
	}
	return fromSym(sym, gatherOptions(opts...), opFromMatrix)
}

// FromOperator builds a Hamiltonian from a complex operator that must be
// Hermitian within HermitianTolerance. Operators with a negligible imaginary
// part take the real symmetric eigensolver path.
func FromOperator(op statespace.Operator, opts ...Option) (*Hamiltonian, error) {
	if !op.IsHermitian(HermitianTolerance) {
		return nil, hamErrorf(opFromOperator, ErrNonHermitian)
	}
	return &Hamiltonian{
		op:     op,
		isReal: op.IsReal(HermitianTolerance),
		cfg:    gatherOptions(opts...),
	}, nil
}

func fromSym(sym *mat.SymDense, cfg config, tag string) (*Hamiltonian, error) {
	op, err := statespace.OperatorFromReal(sym)
	if err != nil {
		return nil, hamErrorf(tag, err)
	}
	return &Hamiltonian{op: op, isReal: true, cfg: cfg}, nil
}

// Dim returns the Hilbert-space dimension.
func (h *Hamiltonian) Dim() int { return h.op.Dim() }

// Operator returns the underlying operator (a value; safe to keep).
func (h *Hamiltonian) Operator() statespace.Operator { return h.op }

// IsReal reports whether the operator is real symmetric.
func (h *Hamiltonian) IsReal() bool { return h.isReal }

// Expectation returns ⟨ψ|H|ψ⟩. It never touches the spectrum.
//
// Errors:
//   - ErrDimensionMismatch if ψ.Dim() != h.Dim().
//   - ErrNonHermitian if |Im⟨ψ|H|ψ⟩| > ImagTolerance.
func (h *Hamiltonian) Expectation(psi statespace.Vector) (float64, error) {
	z, err := h.op.Sandwich(psi)
	if err != nil {
		return 0, hamErrorf(opExpectation, err)
	}
	if math.Abs(imag(z)) > ImagTolerance {
		return 0, hamErrorf(opExpectation, fmt.Errorf("imaginary residual %g: %w", imag(z), ErrNonHermitian))
	}
	return real(z), nil
}

// Variance returns ⟨H²⟩ − ⟨H⟩², zero exactly for eigenstates.
func (h *Hamiltonian) Variance(psi statespace.Vector) (float64, error) {
	amps := psi.Amplitudes()
	hv, err := h.op.MulVec(amps)
	if err != nil {
		return 0, hamErrorf(opExpectation, err)
	}
	var mean, sq float64
	for i, a := range amps {
		z := complexConjMul(a, hv[i])
		mean += real(z)
		sq += real(hv[i])*real(hv[i]) + imag(hv[i])*imag(hv[i])
	}
	v := sq - mean*mean
	if v < 0 {
		v = 0
	}
	return v, nil
}

func complexConjMul(a, b complex128) complex128 {
	return complex(real(a), -imag(a)) * b
}
