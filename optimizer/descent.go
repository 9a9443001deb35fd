// SPDX-License-Identifier: MIT
// Package optimizer: plain gradient descent.

package optimizer

import (
	"github.com/katalvlaran/lvqa/cost"
)

// GradientDescentMethod updates v ← μ·v − η·∇f, θ ← θ + v. With μ = 0 this is
// steepest descent with a fixed step.
type GradientDescentMethod struct {
	f        cost.Function
	cfg      methodConfig
	velocity []float64
}

// NewGradientDescent builds a gradient-descent optimizer for f.
func NewGradientDescent(f cost.Function, opts ...Option) (*GradientDescentMethod, error) {
	if f == nil {
		return nil, optimizerErrorf(opNew, ErrNilFunction)
	}
	return &GradientDescentMethod{f: f, cfg: gatherOptions(opts...)}, nil
}

// Kind returns GradientDescent.
func (d *GradientDescentMethod) Kind() Kind { return GradientDescent }

// Reset clears the momentum buffer.
func (d *GradientDescentMethod) Reset() { d.velocity = nil }

// Step performs one (momentum) gradient update.
func (d *GradientDescentMethod) Step(params []float64) ([]float64, Diagnostic, error) {
	if err := checkParams(d.f, params); err != nil {
		return nil, Diagnostic{}, err
	}
	c, g, evals, err := valueAndGradient(d.f, d.cfg, params)
	if err != nil {
		return nil, Diagnostic{Evaluations: evals}, err
	}
	if g == nil {
		return clone(params), divergedAt(c, evals), nil
	}
	if len(d.velocity) != len(params) {
		d.velocity = make([]float64, len(params))
	}
	next := clone(params)
	for i, gi := range g {
		d.velocity[i] = d.cfg.momentum*d.velocity[i] - d.cfg.learningRate*gi
		next[i] += d.velocity[i]
	}
	return next, Diagnostic{Cost: c, GradNorm: norm(g), Evaluations: evals}, nil
}
