// SPDX-License-Identifier: MIT
// Package optimizer: method and run options.

package optimizer

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvqa/gradient"
)

const (
	// DefaultLearningRate is η for Adam and GradientDescent.
	DefaultLearningRate = 0.01

	// DefaultMemory is the number of curvature pairs LBFGS keeps.
	DefaultMemory = 10

	// DefaultSimplexStep is the initial perturbation of each Nelder–Mead vertex.
	DefaultSimplexStep = 0.1

	// DefaultMaxIterations bounds every Run.
	DefaultMaxIterations = 1000

	// DefaultGradientTolerance is the ‖∇f‖ convergence threshold.
	DefaultGradientTolerance = 1e-6

	// DefaultCostTolerance is the |c_k − c_{k−1}| convergence threshold.
	DefaultCostTolerance = 1e-3
)

const (
	panicLearningRate = "optimizer: WithLearningRate requires a finite rate > 0"
	panicMomentum     = "optimizer: WithMomentum requires μ ∈ [0, 1)"
	panicEstimator    = "optimizer: WithEstimator requires a non-nil estimator"
	panicMemory       = "optimizer: WithMemory requires m ≥ 1"
	panicSimplexStep  = "optimizer: WithSimplexStep requires a finite step > 0"
	panicMaxIter      = "optimizer: WithMaxIterations requires n ≥ 1"
	panicTolerance    = "optimizer: tolerances must be finite and ≥ 0"
)

// Option configures a Method constructor. Options irrelevant to a method are ignored.
type Option func(*methodConfig)

type methodConfig struct {
	learningRate float64
	momentum     float64
	estimator    gradient.Estimator
	memory       int
	simplexStep  float64
}

func gatherOptions(opts ...Option) methodConfig {
	cfg := methodConfig{
		learningRate: DefaultLearningRate,
		estimator:    gradient.Shift(),
		memory:       DefaultMemory,
		simplexStep:  DefaultSimplexStep,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithLearningRate sets η for Adam and GradientDescent.
func WithLearningRate(lr float64) Option {
	if !(lr > 0) || math.IsInf(lr, 0) {
		panic(panicLearningRate)
	}
	return func(c *methodConfig) { c.learningRate = lr }
}

// WithMomentum sets the heavy-ball coefficient μ of GradientDescent (default 0).
func WithMomentum(mu float64) Option {
	if !(mu >= 0 && mu < 1) {
		panic(panicMomentum)
	}
	return func(c *methodConfig) { c.momentum = mu }
}

// WithEstimator replaces the default parameter-shift gradient.
func WithEstimator(e gradient.Estimator) Option {
	if e == nil {
		panic(panicEstimator)
	}
	return func(c *methodConfig) { c.estimator = e }
}

// WithMemory sets the LBFGS history length.
func WithMemory(m int) Option {
	if m < 1 {
		panic(panicMemory)
	}
	return func(c *methodConfig) { c.memory = m }
}

// WithSimplexStep sets the Nelder–Mead initial vertex offset.
func WithSimplexStep(s float64) Option {
	if !(s > 0) || math.IsInf(s, 0) {
		panic(panicSimplexStep)
	}
	return func(c *methodConfig) { c.simplexStep = s }
}

// Tolerances holds the two convergence thresholds.
type Tolerances struct {
	Gradient float64 `yaml:"gradient" json:"gradient"`
	Cost     float64 `yaml:"cost" json:"cost"`
}

// DefaultTolerances returns {1e-6, 1e-3}.
func DefaultTolerances() Tolerances {
	return Tolerances{Gradient: DefaultGradientTolerance, Cost: DefaultCostTolerance}
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	maxIterations int
	tol           Tolerances
	logger        zerolog.Logger
}

func gatherRunOptions(opts ...RunOption) runConfig {
	cfg := runConfig{
		maxIterations: DefaultMaxIterations,
		tol:           DefaultTolerances(),
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMaxIterations bounds the number of Steps.
func WithMaxIterations(n int) RunOption {
	if n < 1 {
		panic(panicMaxIter)
	}
	return func(c *runConfig) { c.maxIterations = n }
}

// WithTolerances replaces both convergence thresholds.
func WithTolerances(t Tolerances) RunOption {
	checkTolerance(t.Gradient)
	checkTolerance(t.Cost)
	return func(c *runConfig) { c.tol = t }
}

// WithGradientTolerance sets the ‖∇f‖ threshold.
func WithGradientTolerance(tol float64) RunOption {
	checkTolerance(tol)
	return func(c *runConfig) { c.tol.Gradient = tol }
}

// WithCostTolerance sets the plateau threshold.
func WithCostTolerance(tol float64) RunOption {
	checkTolerance(tol)
	return func(c *runConfig) { c.tol.Cost = tol }
}

// WithLogger attaches a structured logger. Default is zerolog.Nop().
func WithLogger(l zerolog.Logger) RunOption {
	return func(c *runConfig) { c.logger = l }
}

func checkTolerance(t float64) {
	if !(t >= 0) || math.IsInf(t, 0) {
		panic(panicTolerance)
	}
}
