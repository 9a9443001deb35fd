// SPDX-License-Identifier: MIT
// Package vqa: options shared by the algorithm facades.

package vqa

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/config"
	"github.com/katalvlaran/lvqa/cost"
	"github.com/katalvlaran/lvqa/gradient"
	"github.com/katalvlaran/lvqa/hamiltonian"
	"github.com/katalvlaran/lvqa/multistart"
	"github.com/katalvlaran/lvqa/optimizer"
)

const (
	// DefaultStarts is the number of independent attempts per solve.
	DefaultStarts = 5

	// DefaultSeed seeds attempt i with DefaultSeed + i.
	DefaultSeed = 42

	// DefaultInitScale is s in the initial draw θ ∈ [−s, s].
	DefaultInitScale = 0.1
)

const (
	panicStarts    = "vqa: WithStarts requires n ≥ 1"
	panicWorkers   = "vqa: WithWorkers requires n ≥ 1"
	panicInitScale = "vqa: WithInitScale requires a finite scale > 0"
	panicDimension = "vqa: WithDimension requires n ≥ 2"
	panicDepth     = "vqa: WithDepth requires p ≥ 1"
	panicStep      = "vqa: WithGradientStep requires a finite step > 0"
	panicMixer     = "vqa: WithMixer requires a non-nil Hamiltonian"
	panicInitial   = "vqa: WithInitialState requires a known strategy"
)

// InitialState selects the reference state of the eigensolver circuit.
type InitialState int

const (
	// BasisState is |0⟩.
	BasisState InitialState = iota + 1
	// UniformState is the equal superposition of every basis state.
	UniformState
	// RandomState is a normalized complex Gaussian vector drawn from the seed.
	RandomState
)

// String returns the strategy name.
func (s InitialState) String() string {
	switch s {
	case BasisState:
		return "basis"
	case UniformState:
		return "uniform"
	case RandomState:
		return "random"
	}
	return fmt.Sprintf("InitialState(%d)", int(s))
}

// Option configures a facade.
type Option func(*settings)

type settings struct {
	spec       ansatz.Spec
	kind       optimizer.Kind
	methodOpts []optimizer.Option
	runOpts    []optimizer.RunOption
	starts     int
	seed       int64
	initScale  float64
	initial    InitialState
	criteria   multistart.Criteria
	workers    int
	logger     zerolog.Logger
	observer   multistart.Observer

	dimension int
	depth     int
	gradStep  float64
	mixer     *hamiltonian.Hamiltonian
}

func defaultSettings() settings {
	return settings{
		spec:      ansatz.Spec{Kind: ansatz.HardwareEfficient, Depth: 1, Entanglement: ansatz.Ring},
		kind:      optimizer.LBFGS,
		starts:    DefaultStarts,
		seed:      DefaultSeed,
		initScale: DefaultInitScale,
		initial:   BasisState,
		criteria:  multistart.DefaultCriteria(),
		logger:    zerolog.Nop(),
		dimension: 13,
		depth:     2,
		gradStep:  gradient.DefaultStep,
	}
}

func (s *settings) apply(opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
}

// WithAnsatz sets the circuit family. It is validated by the constructor.
func WithAnsatz(spec ansatz.Spec) Option {
	return func(s *settings) { s.spec = spec }
}

// WithOptimizer selects the method and its options.
func WithOptimizer(kind optimizer.Kind, opts ...optimizer.Option) Option {
	return func(s *settings) {
		s.kind = kind
		s.methodOpts = append([]optimizer.Option(nil), opts...)
	}
}

// WithRunOptions appends optimizer.Run options (iterations, tolerances).
func WithRunOptions(opts ...optimizer.RunOption) Option {
	return func(s *settings) { s.runOpts = append(s.runOpts, opts...) }
}

// WithStarts sets the number of independent attempts.
func WithStarts(n int) Option {
	if n < 1 {
		panic(panicStarts)
	}
	return func(s *settings) { s.starts = n }
}

// WithSeed sets the base seed; attempt i uses seed + i.
func WithSeed(seed int64) Option {
	return func(s *settings) { s.seed = seed }
}

// WithInitScale sets the half-width of the initial parameter draw.
func WithInitScale(scale float64) Option {
	if !(scale > 0) || math.IsInf(scale, 0) {
		panic(panicInitScale)
	}
	return func(s *settings) { s.initScale = scale }
}

// WithInitialState selects the eigensolver reference state. Default BasisState.
func WithInitialState(st InitialState) Option {
	if st < BasisState || st > RandomState {
		panic(panicInitial)
	}
	return func(s *settings) { s.initial = st }
}

// WithCriteria replaces the selection thresholds. The reference value is
// supplied by the facade when it knows one.
func WithCriteria(c multistart.Criteria) Option {
	return func(s *settings) { s.criteria = c }
}

// WithWorkers bounds concurrent attempts. Default GOMAXPROCS.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}
	return func(s *settings) { s.workers = n }
}

// WithLogger attaches a structured logger. Default is zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithObserver attaches a run observer such as *metrics.Collector.
func WithObserver(o multistart.Observer) Option {
	return func(s *settings) { s.observer = o }
}

// WithDimension sets the classifier Hilbert-space dimension. Default 13.
func WithDimension(n int) Option {
	if n < ansatz.MinDimension {
		panic(panicDimension)
	}
	return func(s *settings) { s.dimension = n }
}

// WithDepth sets the number of QAOA layers p. Default 2.
func WithDepth(p int) Option {
	if p < 1 {
		panic(panicDepth)
	}
	return func(s *settings) { s.depth = p }
}

// WithGradientStep sets the central-difference step of QAOA gradients.
func WithGradientStep(h float64) Option {
	if !(h > 0) || math.IsInf(h, 0) {
		panic(panicStep)
	}
	return func(s *settings) { s.gradStep = h }
}

// WithMixer replaces the default QAOA mixer (PhaseMixer).
func WithMixer(h *hamiltonian.Hamiltonian) Option {
	if h == nil {
		panic(panicMixer)
	}
	return func(s *settings) { s.mixer = h }
}

// commonOptions maps the sections every facade shares.
func commonOptions(cfg config.Config, kind optimizer.Kind, maxIter int) []Option {
	opts := []Option{
		WithOptimizer(kind, cfg.Optimizer.MethodOptions()...),
		WithRunOptions(
			optimizer.WithMaxIterations(maxIter),
			optimizer.WithTolerances(cfg.Optimizer.Tolerances()),
		),
		WithStarts(cfg.Multistart.Starts),
		WithSeed(cfg.Multistart.Seed),
		WithInitScale(cfg.Multistart.InitScale),
		WithCriteria(cfg.Criteria()),
	}
	if cfg.Multistart.Workers > 0 {
		opts = append(opts, WithWorkers(cfg.Multistart.Workers))
	}
	return opts
}

// EigensolverOptions returns the options of a validated Config for NewEigensolver.
func EigensolverOptions(cfg config.Config) []Option {
	opts := commonOptions(cfg, cfg.Optimizer.Kind, cfg.Optimizer.MaxIterations)
	return append(opts, WithAnsatz(cfg.Ansatz))
}

// QAOAOptions returns the options of a validated Config for NewQAOA.
func QAOAOptions(cfg config.Config) []Option {
	opts := commonOptions(cfg, cfg.Optimizer.Kind, cfg.QAOA.MaxIterations)
	return append(opts, WithDepth(cfg.QAOA.Depth), WithGradientStep(cfg.QAOA.GradientStep))
}

// ClassifierOptions returns the options of a validated Config for NewClassifier.
func ClassifierOptions(cfg config.Config) []Option {
	opts := commonOptions(cfg, cfg.Classifier.Optimizer, cfg.Classifier.MaxIterations)
	return append(opts, WithAnsatz(cfg.Classifier.Ansatz), WithDimension(cfg.Classifier.Dimension))
}

func (s settings) session() *multistart.Session {
	opts := []multistart.Option{multistart.WithLogger(s.logger)}
	if s.workers > 0 {
		opts = append(opts, multistart.WithWorkers(s.workers))
	}
	if s.observer != nil {
		opts = append(opts, multistart.WithObserver(s.observer))
	}
	return multistart.NewSession(opts...)
}

// drawFunc returns n initial parameters from rng.
type drawFunc func(rng *rand.Rand, n int) []float64

// uniformDraw draws θᵢ uniformly in [−scale, scale].
func uniformDraw(scale float64) drawFunc {
	return func(rng *rand.Rand, n int) []float64 {
		p := make([]float64, n)
		for i := range p {
			p[i] = (2*rng.Float64() - 1) * scale
		}
		return p
	}
}

// attempts builds one Attempt per start. Every attempt owns its Method and RNG.
// circuit labels the runs in logs.
func (s settings) attempts(f cost.Function, spec ansatz.Spec, circuit string, draw drawFunc, extra ...optimizer.Option) []multistart.Attempt {
	methodOpts := append(append([]optimizer.Option(nil), s.methodOpts...), extra...)
	runOpts := append(append([]optimizer.RunOption(nil), s.runOpts...), optimizer.WithLogger(s.logger))

	out := make([]multistart.Attempt, s.starts)
	for i := range out {
		seed := s.seed + int64(i)
		out[i] = func(context.Context) multistart.Run {
			m, err := optimizer.New(s.kind, f, methodOpts...)
			if err != nil {
				return multistart.Run{Seed: seed, Spec: spec, Circuit: circuit, Optimizer: s.kind, Cost: math.NaN(), Err: err}
			}
			x0 := draw(rand.New(rand.NewSource(seed)), f.NumParameters())
			r := multistart.FromResult(spec, seed, optimizer.Run(m, x0, runOpts...))
			r.Circuit = circuit
			return r
		}
	}
	return out
}
