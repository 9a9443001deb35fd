// SPDX-License-Identifier: MIT
// Package vqa: variational eigensolver.

package vqa

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/cost"
	"github.com/katalvlaran/lvqa/hamiltonian"
	"github.com/katalvlaran/lvqa/multistart"
	"github.com/katalvlaran/lvqa/statespace"
)

// VerificationTolerance is how far below the exact ground energy a reported
// energy may fall before the result is rejected as unphysical.
const VerificationTolerance = 1e-6

// Eigensolver approximates the ground energy of a Hamiltonian with a
// multi-start variational search.
type Eigensolver struct {
	h         *hamiltonian.Hamiltonian
	s         settings
	circuit   *ansatz.Circuit
	objective *cost.Expectation
}

// Report is the outcome of Solve.
type Report struct {
	Runs      []multistart.Run
	Selection multistart.Selection
	// GroundEnergy is the exact E₀ used as the selection reference.
	GroundEnergy float64
	// Energy and State belong to the selected run; NaN and zero on fallback.
	Energy   float64
	State    statespace.Vector
	Verified bool
	Record   BenchmarkRecord
}

// NewEigensolver builds the circuit and objective for h.
//
// Errors:
//   - ErrNilInput for a nil h.
//   - ansatz.ErrInvalidSpec, ansatz.ErrInvalidDimension from circuit construction.
func NewEigensolver(h *hamiltonian.Hamiltonian, opts ...Option) (*Eigensolver, error) {
	if h == nil {
		return nil, vqaErrorf(opEigensolver, ErrNilInput)
	}
	s := defaultSettings()
	s.apply(opts)
	if err := s.criteria.Validate(); err != nil {
		return nil, vqaErrorf(opEigensolver, err)
	}

	ref, err := s.reference(h.Dim())
	if err != nil {
		return nil, vqaErrorf(opEigensolver, err)
	}
	copts := []ansatz.Option{ansatz.WithReference(ref)}
	if s.spec.Kind == ansatz.ProblemSpecific {
		copts = append(copts, ansatz.WithPartners(ansatz.PartnersFromOperator(h.Operator())))
	}
	c, err := ansatz.New(s.spec, h.Dim(), copts...)
	if err != nil {
		return nil, vqaErrorf(opEigensolver, err)
	}
	f, err := cost.NewExpectation(c, h)
	if err != nil {
		return nil, vqaErrorf(opEigensolver, err)
	}
	s.logger = s.logger.With().Str("component", "eigensolver").Logger()
	return &Eigensolver{h: h, s: s, circuit: c, objective: f}, nil
}

// reference prepares the circuit's starting state.
func (s settings) reference(n int) (statespace.Vector, error) {
	switch s.initial {
	case UniformState:
		return statespace.Uniform(n)
	case RandomState:
		return statespace.Random(n, rand.New(rand.NewSource(s.seed)))
	default:
		return statespace.Basis(n, 0)
	}
}

// Circuit returns the ansatz circuit.
func (e *Eigensolver) Circuit() *ansatz.Circuit { return e.circuit }

// Objective returns E(θ).
func (e *Eigensolver) Objective() *cost.Expectation { return e.objective }

// Solve runs every attempt and selects the run closest to E₀.
// A fallback selection is reported in Report.Selection, not as an error.
//
// Errors:
//   - hamiltonian errors if E₀ cannot be computed.
//   - ctx.Err() when ctx ended before every attempt ran.
//   - ErrVerificationFailed when the selected run violates E ≥ E₀ − 1e-6 or ‖ψ‖ = 1.
func (e *Eigensolver) Solve(ctx context.Context) (*Report, error) {
	e0, err := e.h.GroundEnergy()
	if err != nil {
		return nil, vqaErrorf(opEigensolver, err)
	}
	attempts := e.s.attempts(e.objective, e.s.spec, e.s.spec.String(), uniformDraw(e.s.initScale))
	runs, sel := e.s.session().RunAndSelect(ctx, attempts, e.s.criteria.WithReference(e0))

	rep := &Report{Runs: runs, Selection: sel, GroundEnergy: e0, Energy: math.NaN(), Record: NewRecord(e.s.spec.Kind.String(), e.s.spec.Depth, e.s.kind, sel)}
	if sel.Valid {
		rep.Energy = sel.Best.Cost
		if rep.State, err = e.circuit.Apply(sel.Best.Params); err != nil {
			return rep, vqaErrorf(opEigensolver, err)
		}
		if err = verify(rep.Energy, e0, rep.State); err != nil {
			return rep, vqaErrorf(opEigensolver, err)
		}
		rep.Verified = true
	}

	e.s.logger.Info().
		Str("ansatz", e.s.spec.String()).
		Str("optimizer", e.s.kind.String()).
		Float64("energy", rep.Energy).
		Float64("ground_energy", e0).
		Float64("quality", sel.Quality).
		Bool("converged", sel.Converged).
		Msg("eigensolver finished")
	if err := ctx.Err(); err != nil {
		return rep, vqaErrorf(opEigensolver, err)
	}
	return rep, nil
}

// verify checks E ≥ E₀ − VerificationTolerance and ‖ψ‖ = 1.
func verify(energy, e0 float64, psi statespace.Vector) error {
	if energy < e0-VerificationTolerance {
		return fmt.Errorf("energy %v below ground energy %v: %w", energy, e0, ErrVerificationFailed)
	}
	if math.Abs(psi.Norm()-1) > statespace.NormTolerance {
		return fmt.Errorf("state norm %v: %w", psi.Norm(), ErrVerificationFailed)
	}
	return nil
}
