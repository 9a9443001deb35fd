// SPDX-License-Identifier: MIT
// Package optimizer: limited-memory BFGS with backtracking line search.

package optimizer

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/lvqa/cost"
)

// minCurvature is the smallest sᵀy accepted into the curvature history.
const minCurvature = 1e-10

// LBFGSMethod drives gonum's optimize.LBFGS direction updates and an
// optimize.Backtracking line search one iteration per Step.
//
// Implementation:
//   - The point, value, gradient and next search direction of the last
//     accepted iterate are cached, so consecutive Steps along one trajectory
//     evaluate the gradient once.
//   - A Step on any other point resets the history.
//   - The first trial step of a steepest-descent direction is min(1, 1/‖g‖);
//     quasi-Newton directions start from 1.
//   - An accepted pair with sᵀy ≤ minCurvature restarts the history from
//     steepest descent at the new point.
//   - A failed line search retries once from steepest descent. If that also
//     fails the point is numerically stationary and is returned unchanged.
type LBFGSMethod struct {
	f   cost.Function
	cfg methodConfig
	qn  optimize.LBFGS
	ls  optimize.Backtracking

	x, g, d []float64
	fx      float64
	step    float64
	pairs   int
}

// NewLBFGS builds an L-BFGS optimizer for f.
func NewLBFGS(f cost.Function, opts ...Option) (*LBFGSMethod, error) {
	if f == nil {
		return nil, optimizerErrorf(opNew, ErrNilFunction)
	}
	cfg := gatherOptions(opts...)
	return &LBFGSMethod{f: f, cfg: cfg, qn: optimize.LBFGS{Store: cfg.memory}}, nil
}

// Kind returns LBFGS.
func (l *LBFGSMethod) Kind() Kind { return LBFGS }

// Reset drops the cached iterate and the curvature history.
func (l *LBFGSMethod) Reset() {
	l.x, l.g, l.d, l.fx, l.step, l.pairs = nil, nil, nil, 0, 0, 0
}

// Step performs one quasi-Newton iteration.
func (l *LBFGSMethod) Step(params []float64) ([]float64, Diagnostic, error) {
	if err := checkParams(l.f, params); err != nil {
		return nil, Diagnostic{}, err
	}
	var evals int
	if l.x == nil || !floats.Equal(l.x, params) {
		fx, g, n, err := valueAndGradient(l.f, l.cfg, params)
		evals += n
		if err != nil {
			return nil, Diagnostic{Evaluations: evals}, err
		}
		l.Reset()
		l.x, l.fx, l.g = clone(params), fx, g
		if g != nil {
			l.restart()
		}
	}
	if l.g == nil {
		return clone(params), divergedAt(l.fx, evals), nil
	}
	diag := Diagnostic{Cost: l.fx, GradNorm: norm(l.g)}
	if !(diag.GradNorm > 0) {
		diag.Evaluations = evals
		return clone(params), diag, nil
	}

	xn, fn, n, ok, err := l.search()
	evals += n
	if err == nil && !ok && l.pairs > 0 {
		l.restart()
		xn, fn, n, ok, err = l.search()
		evals += n
	}
	diag.Evaluations = evals
	if err != nil {
		return nil, diag, err
	}
	if !ok {
		return clone(params), diag, nil
	}

	gn, err := l.cfg.estimator(l.f, xn)
	diag.Evaluations += 2 * len(xn)
	if err != nil {
		return nil, diag, optimizerErrorf(opStep, err)
	}
	l.advance(xn, fn, gn)
	return clone(xn), diag, nil
}

// restart seeds the history at the cached iterate with the steepest-descent
// direction.
func (l *LBFGSMethod) restart() {
	l.d = make([]float64, len(l.x))
	step := l.qn.InitDirection(&optimize.Location{X: l.x, F: l.fx, Gradient: l.g}, l.d)
	l.step = math.Min(1, step)
	l.pairs = 0
}

// advance moves the cached iterate to xn and computes the next direction.
func (l *LBFGSMethod) advance(xn []float64, fn float64, gn []float64) {
	s := make([]float64, len(xn))
	y := make([]float64, len(gn))
	floats.SubTo(s, xn, l.x)
	floats.SubTo(y, gn, l.g)
	l.x, l.fx, l.g = xn, fn, gn
	if !(floats.Dot(s, y) > minCurvature) {
		l.restart()
		return
	}
	l.step = l.qn.NextDirection(&optimize.Location{X: xn, F: fn, Gradient: gn}, l.d)
	if l.pairs < l.cfg.memory {
		l.pairs++
	}
}

// search runs one Armijo backtracking line search along the cached
// direction. ok is false when the searcher gives up or the direction is not
// a descent direction.
func (l *LBFGSMethod) search() (xn []float64, fn float64, evals int, ok bool, err error) {
	gd := floats.Dot(l.g, l.d)
	if !(gd < 0) {
		return nil, 0, 0, false, nil
	}
	step := l.step
	l.ls.Init(l.fx, gd, step)

	xn = make([]float64, len(l.x))
	for {
		floats.AddScaledTo(xn, l.x, step, l.d)
		fn, err = l.f.Evaluate(xn)
		evals++
		if err != nil {
			return nil, 0, evals, false, optimizerErrorf(opStep, err)
		}
		trial := fn
		if math.IsNaN(trial) {
			trial = math.Inf(1)
		}
		var op optimize.Operation
		op, step, err = l.ls.Iterate(trial, 0)
		if err != nil {
			return nil, 0, evals, false, nil
		}
		if op == optimize.MajorIteration {
			return xn, fn, evals, true, nil
		}
	}
}
