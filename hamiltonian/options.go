// SPDX-License-Identifier: MIT
// Package hamiltonian: functional options for Laplacian-derived operators and
// the eigensolver numeric policy.
//
// Option constructors panic on meaningless values (programmer error); runtime
// data problems surface as errors from the constructors that consume them.

package hamiltonian

import "math"

const (
	// DefaultCoupling is J in H = −J·L + diag(V).
	DefaultCoupling = 1.0

	// HermitianTolerance bounds |H[i,j] − conj(H[j,i])| for accepted input.
	HermitianTolerance = 1e-9

	// ImagTolerance bounds |Im⟨ψ|H|ψ⟩| for a real expectation value.
	ImagTolerance = 1e-9

	// DefaultJacobiTolerance is the relative off-diagonal threshold of the
	// complex Jacobi solver.
	DefaultJacobiTolerance = 1e-13

	// DefaultJacobiSweeps bounds the number of cyclic sweeps.
	DefaultJacobiSweeps = 100
)

const (
	panicCouplingInvalid = "hamiltonian: WithCoupling requires a finite non-zero value"
	panicPotentialNaN    = "hamiltonian: WithPotential requires finite values"
	panicJacobiTol       = "hamiltonian: WithJacobiTolerance requires a finite positive value"
	panicJacobiSweeps    = "hamiltonian: WithJacobiSweeps requires sweeps >= 1"
)

// Option configures a Hamiltonian constructor.
type Option func(*config)

type config struct {
	coupling     float64
	potential    []float64
	jacobiTol    float64
	jacobiSweeps int
}

func defaultConfig() config {
	return config{
		coupling:     DefaultCoupling,
		jacobiTol:    DefaultJacobiTolerance,
		jacobiSweeps: DefaultJacobiSweeps,
	}
}

func gatherOptions(opts ...Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithCoupling sets J in H = −J·L + diag(V).
func WithCoupling(j float64) Option {
	if math.IsNaN(j) || math.IsInf(j, 0) || j == 0 {
		panic(panicCouplingInvalid)
	}
	return func(c *config) { c.coupling = j }
}

// WithPotential adds an on-site potential diag(V). Its length is checked
// against the graph order by FromLaplacian.
func WithPotential(v []float64) Option {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			panic(panicPotentialNaN)
		}
	}
	cp := make([]float64, len(v))
	copy(cp, v)
	return func(c *config) { c.potential = cp }
}

// WithJacobiTolerance sets the relative convergence threshold of the complex solver.
func WithJacobiTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicJacobiTol)
	}
	return func(c *config) { c.jacobiTol = tol }
}

// WithJacobiSweeps bounds the number of cyclic Jacobi sweeps.
func WithJacobiSweeps(sweeps int) Option {
	if sweeps < 1 {
		panic(panicJacobiSweeps)
	}
	return func(c *config) { c.jacobiSweeps = sweeps }
}
