// SPDX-License-Identifier: MIT
// Package optimizer: the Method contract and its factory.

package optimizer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvqa/cost"
)

// Diagnostic describes the point passed to Step.
type Diagnostic struct {
	// Cost is f at the incoming parameters.
	Cost float64
	// GradNorm is ‖∇f‖ at the incoming parameters, NaN for derivative-free methods.
	GradNorm float64
	// Evaluations counts objective evaluations spent by the Step, gradient
	// evaluations included.
	Evaluations int
}

// Method is one optimization strategy.
//
// Contract:
//   - Step never modifies params and returns a freshly allocated vector.
//   - Reset discards all internal state (moments, curvature pairs, simplex).
type Method interface {
	Kind() Kind
	Step(params []float64) ([]float64, Diagnostic, error)
	Reset()
}

// New builds the method identified by kind.
func New(kind Kind, f cost.Function, opts ...Option) (Method, error) {
	switch kind {
	case Adam:
		return NewAdam(f, opts...)
	case LBFGS:
		return NewLBFGS(f, opts...)
	case NelderMead:
		return NewNelderMead(f, opts...)
	case GradientDescent:
		return NewGradientDescent(f, opts...)
	default:
		return nil, optimizerErrorf(opNew, fmt.Errorf("%v: %w", kind, ErrUnknownKind))
	}
}

// valueAndGradient evaluates f and its gradient at x.
// The evaluation count includes the 2·P gradient evaluations. A non-finite
// value is returned with a nil gradient so Run can report the divergence.
func valueAndGradient(f cost.Function, cfg methodConfig, x []float64) (float64, []float64, int, error) {
	v, err := f.Evaluate(x)
	if err != nil {
		return 0, nil, 1, optimizerErrorf(opStep, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, nil, 1, nil
	}
	g, err := cfg.estimator(f, x)
	if err != nil {
		return v, nil, 1, optimizerErrorf(opStep, err)
	}
	return v, g, 1 + 2*len(x), nil
}

// divergedAt is the Diagnostic of a point whose value is not finite.
func divergedAt(v float64, evals int) Diagnostic {
	return Diagnostic{Cost: v, GradNorm: math.NaN(), Evaluations: evals}
}

func checkParams(f cost.Function, x []float64) error {
	if len(x) != f.NumParameters() {
		return optimizerErrorf(opStep, fmt.Errorf("got %d, want %d: %w", len(x), f.NumParameters(), ErrParameterCount))
	}
	return nil
}

func clone(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}

func norm(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, 2)
}
