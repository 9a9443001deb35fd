// SPDX-License-Identifier: MIT
// Package gradient: shift-rule and central-difference estimators.

package gradient

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvqa/cost"
)

const (
	// ShiftAngle is the parameter-shift offset s in (f(θ+s) − f(θ−s))/2.
	ShiftAngle = math.Pi / 2

	// DefaultStep is the central-difference step used by Central when h ≤ 0.
	DefaultStep = 1e-4
)

const panicWorkers = "gradient: WithWorkers requires n ≥ 1"

// Estimator returns the gradient of f at params.
type Estimator func(f cost.Function, params []float64) ([]float64, error)

// Option configures an estimator call.
type Option func(*config)

type config struct {
	workers int
}

func gatherOptions(opts ...Option) config {
	cfg := config{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithWorkers bounds the number of concurrent evaluations. Default GOMAXPROCS.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}
	return func(c *config) { c.workers = n }
}

// ParameterShift computes gᵢ = (f(θ+π/2·eᵢ) − f(θ−π/2·eᵢ)) / 2 for every i.
// For a cost.Decomposable f the rule is applied to every component cₛ and
// combined as gᵢ = Σₛ ∂f/∂cₛ · (cₛ(θ+π/2·eᵢ) − cₛ(θ−π/2·eᵢ)) / 2, which stays
// exact when f itself is not a shift-rule function (e.g. cross-entropy).
//
// Errors:
//   - ErrNilFunction, ErrParameterCount.
//   - ErrNonFiniteValue, or the first error returned by f.
func ParameterShift(f cost.Function, params []float64, opts ...Option) ([]float64, error) {
	if d, ok := f.(cost.Decomposable); ok {
		return estimateChained(d, params, gatherOptions(opts...))
	}
	return estimate(opParameterShift, f, params, ShiftAngle, 0.5, gatherOptions(opts...))
}

// FiniteDifference computes gᵢ = (f(θ+h·eᵢ) − f(θ−h·eᵢ)) / 2h.
// A non-positive or non-finite h is replaced by DefaultStep.
func FiniteDifference(f cost.Function, params []float64, h float64, opts ...Option) ([]float64, error) {
	if !(h > 0) || math.IsInf(h, 0) {
		h = DefaultStep
	}
	return estimate(opFiniteDifference, f, params, h, 1/(2*h), gatherOptions(opts...))
}

// Shift returns ParameterShift bound to opts as an Estimator.
func Shift(opts ...Option) Estimator {
	return func(f cost.Function, params []float64) ([]float64, error) {
		return ParameterShift(f, params, opts...)
	}
}

// Central returns FiniteDifference with step h bound to opts as an Estimator.
func Central(h float64, opts ...Option) Estimator {
	return func(f cost.Function, params []float64) ([]float64, error) {
		return FiniteDifference(f, params, h, opts...)
	}
}

// Norm returns the Euclidean norm ‖g‖₂.
func Norm(g []float64) float64 {
	if len(g) == 0 {
		return 0
	}
	return floats.Norm(g, 2)
}

// estimate fans the 2·P shifted evaluations out over cfg.workers goroutines.
// Each goroutine writes only its own component, so grad needs no lock.
func estimate(tag string, f cost.Function, params []float64, shift, scale float64, cfg config) ([]float64, error) {
	if f == nil {
		return nil, gradientErrorf(tag, ErrNilFunction)
	}
	if len(params) != f.NumParameters() {
		return nil, gradientErrorf(tag, fmt.Errorf("got %d, want %d: %w", len(params), f.NumParameters(), ErrParameterCount))
	}

	grad := make([]float64, len(params))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.workers)
	for i := range params {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plus, err := evaluateShifted(f, params, i, shift)
			if err != nil {
				return err
			}
			minus, err := evaluateShifted(f, params, i, -shift)
			if err != nil {
				return err
			}
			grad[i] = (plus - minus) * scale
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, gradientErrorf(tag, err)
	}
	return grad, nil
}

// estimateChained is the component-wise shift rule for Decomposable costs.
func estimateChained(f cost.Decomposable, params []float64, cfg config) ([]float64, error) {
	if len(params) != f.NumParameters() {
		return nil, gradientErrorf(opParameterShift, fmt.Errorf("got %d, want %d: %w", len(params), f.NumParameters(), ErrParameterCount))
	}
	c0, err := f.Components(params)
	if err != nil {
		return nil, gradientErrorf(opParameterShift, err)
	}
	w := f.Sensitivities(c0)

	grad := make([]float64, len(params))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.workers)
	for i := range params {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plus, err := componentsShifted(f, params, i, ShiftAngle)
			if err != nil {
				return err
			}
			minus, err := componentsShifted(f, params, i, -ShiftAngle)
			if err != nil {
				return err
			}
			floats.Sub(plus, minus)
			grad[i] = floats.Dot(w, plus) / 2
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, gradientErrorf(opParameterShift, err)
	}
	return grad, nil
}

func componentsShifted(f cost.Decomposable, params []float64, i int, d float64) ([]float64, error) {
	p := make([]float64, len(params))
	copy(p, params)
	p[i] += d
	c, err := f.Components(p)
	if err != nil {
		return nil, fmt.Errorf("component %d: %w", i, err)
	}
	return c, nil
}

// evaluateShifted returns f(θ + d·eᵢ) on a private copy of params.
func evaluateShifted(f cost.Function, params []float64, i int, d float64) (float64, error) {
	p := make([]float64, len(params))
	copy(p, params)
	p[i] += d
	v, err := f.Evaluate(p)
	if err != nil {
		return 0, fmt.Errorf("component %d: %w", i, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("component %d = %v: %w", i, v, ErrNonFiniteValue)
	}
	return v, nil
}
