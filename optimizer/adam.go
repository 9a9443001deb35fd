// SPDX-License-Identifier: MIT
// Package optimizer: adaptive-moment estimation.

package optimizer

import (
	"math"

	"github.com/katalvlaran/lvqa/cost"
)

// Adam moment constants.
const (
	AdamBeta1   = 0.9
	AdamBeta2   = 0.999
	AdamEpsilon = 1e-8
)

// AdamMethod keeps the first and second raw moments of the gradient.
type AdamMethod struct {
	f   cost.Function
	cfg methodConfig

	m, v []float64
	t    int
}

// NewAdam builds an Adam optimizer for f.
func NewAdam(f cost.Function, opts ...Option) (*AdamMethod, error) {
	if f == nil {
		return nil, optimizerErrorf(opNew, ErrNilFunction)
	}
	return &AdamMethod{f: f, cfg: gatherOptions(opts...)}, nil
}

// Kind returns Adam.
func (a *AdamMethod) Kind() Kind { return Adam }

// Reset clears both moments and the step counter.
func (a *AdamMethod) Reset() { a.m, a.v, a.t = nil, nil, 0 }

// Step applies θ ← θ − η·m̂/(√v̂ + ε) with bias-corrected moments m̂ and v̂.
func (a *AdamMethod) Step(params []float64) ([]float64, Diagnostic, error) {
	if err := checkParams(a.f, params); err != nil {
		return nil, Diagnostic{}, err
	}
	c, g, evals, err := valueAndGradient(a.f, a.cfg, params)
	if err != nil {
		return nil, Diagnostic{Evaluations: evals}, err
	}
	if g == nil {
		return clone(params), divergedAt(c, evals), nil
	}
	if len(a.m) != len(params) {
		a.m = make([]float64, len(params))
		a.v = make([]float64, len(params))
		a.t = 0
	}
	a.t++
	c1 := 1 - math.Pow(AdamBeta1, float64(a.t))
	c2 := 1 - math.Pow(AdamBeta2, float64(a.t))

	next := clone(params)
	for i, gi := range g {
		a.m[i] = AdamBeta1*a.m[i] + (1-AdamBeta1)*gi
		a.v[i] = AdamBeta2*a.v[i] + (1-AdamBeta2)*gi*gi
		mHat := a.m[i] / c1
		vHat := a.v[i] / c2
		next[i] -= a.cfg.learningRate * mHat / (math.Sqrt(vHat) + AdamEpsilon)
	}
	return next, Diagnostic{Cost: c, GradNorm: norm(g), Evaluations: evals}, nil
}
