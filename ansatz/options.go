// SPDX-License-Identifier: MIT
// Package ansatz: functional options for New.

package ansatz

import (
	"math"

	"github.com/katalvlaran/lvqa/statespace"
)

const (
	// MinDimension is the smallest Hilbert space with a pair to rotate in.
	MinDimension = 2

	// RingCouplingAngle is the fixed angle of the non-trainable ring couplings.
	RingCouplingAngle = math.Pi / 2
)

const (
	panicPartnersNil = "ansatz: WithPartners requires a non-empty partner map"
	panicRefInvalid  = "ansatz: WithReference requires a constructed state"
)

// Option configures New.
type Option func(*config)

type config struct {
	reference *statespace.Vector
	partners  []int
}

func gatherOptions(opts ...Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithReference replaces the default reference state |0⟩. Its dimension is
// checked by New.
func WithReference(v statespace.Vector) Option {
	if v.Dim() == 0 {
		panic(panicRefInvalid)
	}
	return func(c *config) {
		ref := v
		c.reference = &ref
	}
}

// WithPartners sets the mixing partner pᵢ of every dimension i. It is used by
// ProblemSpecific circuits and ignored by the other kinds. The map is
// validated by New (length N, pᵢ ∈ [0,N), pᵢ ≠ i).
func WithPartners(p []int) Option {
	if len(p) == 0 {
		panic(panicPartnersNil)
	}
	cp := make([]int, len(p))
	copy(cp, p)
	return func(c *config) { c.partners = cp }
}

// PartnersFromOperator pairs every index i with the j ≠ i of largest |O[i,j]|
// (smallest j on ties). Rows without off-diagonal weight fall back to i+1 mod N.
func PartnersFromOperator(op statespace.Operator) []int {
	n := op.Dim()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		best, bestAbs := (i+1)%n, 0.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			z := op.At(i, j)
			if a := math.Hypot(real(z), imag(z)); a > bestAbs {
				best, bestAbs = j, a
			}
		}
		out[i] = best
	}
	return out
}
