// SPDX-License-Identifier: MIT
// Package optimizer: derivative-free simplex search.

package optimizer

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/lvqa/cost"
)

// MaxSimplexTransforms bounds the simplex transformations of one Step.
const MaxSimplexTransforms = 50

// NelderMeadMethod runs gonum's optimize.NelderMead from the incoming point
// once per Step.
//
// Implementation:
//   - Every Step builds the simplex {x, x + δ·e₁, …, x + δ·e_P} with
//     δ = WithSimplexStep and gonum's dimension-adaptive coefficients.
//   - The search stops at the first major iteration whose best vertex
//     improves on f(x), or after MaxSimplexTransforms major iterations.
//   - NaN values are ranked as +Inf.
//   - No gradient is ever requested; Diagnostic.GradNorm is NaN.
type NelderMeadMethod struct {
	f   cost.Function
	cfg methodConfig
	nm  optimize.NelderMead

	x  []float64
	fx float64
}

// NewNelderMead builds a Nelder–Mead optimizer for f.
func NewNelderMead(f cost.Function, opts ...Option) (*NelderMeadMethod, error) {
	if f == nil {
		return nil, optimizerErrorf(opNew, ErrNilFunction)
	}
	cfg := gatherOptions(opts...)
	return &NelderMeadMethod{f: f, cfg: cfg, nm: optimize.NelderMead{SimplexSize: cfg.simplexStep}}, nil
}

// Kind returns NelderMead.
func (m *NelderMeadMethod) Kind() Kind { return NelderMead }

// Reset forgets the cached value of the last returned point.
func (m *NelderMeadMethod) Reset() { m.x, m.fx = nil, 0 }

// Step searches the simplex around params and returns its best vertex, or
// params itself when no vertex improved on it.
func (m *NelderMeadMethod) Step(params []float64) ([]float64, Diagnostic, error) {
	if err := checkParams(m.f, params); err != nil {
		return nil, Diagnostic{}, err
	}
	diag := Diagnostic{GradNorm: math.NaN()}
	if m.x == nil || !floats.Equal(m.x, params) {
		fx, err := m.f.Evaluate(params)
		diag.Evaluations++
		if err != nil {
			return nil, diag, optimizerErrorf(opStep, err)
		}
		m.x, m.fx = clone(params), fx
	}
	diag.Cost = m.fx
	if math.IsNaN(m.fx) || math.IsInf(m.fx, 0) || len(params) == 0 {
		return clone(params), diag, nil
	}

	var evalErr error
	problem := optimize.Problem{Func: func(x []float64) float64 {
		if evalErr != nil {
			return math.Inf(1)
		}
		v, err := m.f.Evaluate(x)
		if err != nil {
			evalErr = err
			return math.Inf(1)
		}
		if math.IsNaN(v) {
			return math.Inf(1)
		}
		return v
	}}
	settings := &optimize.Settings{
		InitValues:      &optimize.Location{F: m.fx},
		Converger:       improvement{below: m.fx},
		MajorIterations: MaxSimplexTransforms + 2,
	}
	res, err := optimize.Minimize(problem, params, settings, &m.nm)
	if res != nil {
		diag.Evaluations += res.Stats.FuncEvaluations
	}
	if evalErr != nil {
		return nil, diag, optimizerErrorf(opStep, evalErr)
	}
	if res == nil {
		return nil, diag, optimizerErrorf(opStep, err)
	}
	if !(res.F < m.fx) {
		return clone(params), diag, nil
	}
	m.x, m.fx = clone(res.X), res.F
	return clone(res.X), diag, nil
}

// improvement stops a search at the first major iteration below a value.
type improvement struct{ below float64 }

func (improvement) Init(int) {}

func (c improvement) Converged(loc *optimize.Location) optimize.Status {
	if loc.F < c.below {
		return optimize.FunctionConvergence
	}
	return optimize.NotTerminated
}
