// SPDX-License-Identifier: MIT
// Package config: document model, defaults and validation.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/gradient"
	"github.com/katalvlaran/lvqa/multistart"
	"github.com/katalvlaran/lvqa/optimizer"
)

// Config is the root document.
type Config struct {
	Optimizer  OptimizerConfig  `yaml:"optimizer" json:"optimizer"`
	Ansatz     ansatz.Spec      `yaml:"ansatz" json:"ansatz"`
	Selection  SelectionConfig  `yaml:"selection" json:"selection"`
	Multistart MultistartConfig `yaml:"multistart" json:"multistart"`
	Classifier ClassifierConfig `yaml:"classifier" json:"classifier"`
	QAOA       QAOAConfig       `yaml:"qaoa" json:"qaoa"`
}

// OptimizerConfig selects the method and its convergence thresholds.
type OptimizerConfig struct {
	Kind              optimizer.Kind `yaml:"kind" json:"kind"`
	MaxIterations     int            `yaml:"max_iterations" json:"max_iterations"`
	LearningRate      float64        `yaml:"learning_rate" json:"learning_rate"`
	Momentum          float64        `yaml:"momentum" json:"momentum"`
	Memory            int            `yaml:"memory" json:"memory"`
	SimplexStep       float64        `yaml:"simplex_step" json:"simplex_step"`
	GradientTolerance float64        `yaml:"gradient_tolerance" json:"gradient_tolerance"`
	CostTolerance     float64        `yaml:"cost_tolerance" json:"cost_tolerance"`
	// GradientWorkers bounds concurrent cost evaluations per gradient; 0 means GOMAXPROCS.
	GradientWorkers int `yaml:"gradient_workers" json:"gradient_workers"`
}

// SelectionConfig holds the run filtering thresholds.
type SelectionConfig struct {
	MaxAbsError float64 `yaml:"max_abs_error" json:"max_abs_error"`
	MaxRelError float64 `yaml:"max_rel_error" json:"max_rel_error"`
}

// MultistartConfig controls independent restarts.
type MultistartConfig struct {
	Starts int `yaml:"starts" json:"starts"`
	// Workers bounds concurrent attempts; 0 means GOMAXPROCS.
	Workers int   `yaml:"workers" json:"workers"`
	Seed    int64 `yaml:"seed" json:"seed"`
	// InitScale is s in the uniform initial parameter draw θ ∈ [−s, s].
	InitScale float64 `yaml:"init_scale" json:"init_scale"`
}

// ClassifierConfig holds the classifier circuit and training budget.
type ClassifierConfig struct {
	Dimension     int            `yaml:"dimension" json:"dimension"`
	Ansatz        ansatz.Spec    `yaml:"ansatz" json:"ansatz"`
	Optimizer     optimizer.Kind `yaml:"optimizer" json:"optimizer"`
	MaxIterations int            `yaml:"max_iterations" json:"max_iterations"`
}

// QAOAConfig holds the QAOA depth and gradient step.
type QAOAConfig struct {
	Depth         int     `yaml:"depth" json:"depth"`
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"`
	GradientStep  float64 `yaml:"gradient_step" json:"gradient_step"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Optimizer: OptimizerConfig{
			Kind:              optimizer.LBFGS,
			MaxIterations:     optimizer.DefaultMaxIterations,
			LearningRate:      optimizer.DefaultLearningRate,
			Memory:            optimizer.DefaultMemory,
			SimplexStep:       optimizer.DefaultSimplexStep,
			GradientTolerance: optimizer.DefaultGradientTolerance,
			CostTolerance:     optimizer.DefaultCostTolerance,
		},
		Ansatz: ansatz.Spec{Kind: ansatz.HardwareEfficient, Depth: 1, Entanglement: ansatz.Ring},
		Selection: SelectionConfig{
			MaxAbsError: multistart.DefaultMaxAbsError,
			MaxRelError: multistart.DefaultMaxRelError,
		},
		Multistart: MultistartConfig{Starts: 5, Seed: 42, InitScale: 0.1},
		Classifier: ClassifierConfig{
			Dimension:     13,
			Ansatz:        ansatz.Spec{Kind: ansatz.HardwareEfficient, Depth: 3, Entanglement: ansatz.Ring},
			Optimizer:     optimizer.LBFGS,
			MaxIterations: 300,
		},
		QAOA: QAOAConfig{Depth: 2, MaxIterations: 200, GradientStep: gradient.DefaultStep},
	}
}

// LookupFunc resolves an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads the YAML file at path and applies the process environment.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, configErrorf(opLoad, err)
	}
	return Parse(data)
}

// Parse decodes data over Default() and applies the process environment.
func Parse(data []byte) (Config, error) {
	return ParseWithLookup(data, os.LookupEnv)
}

// ParseWithLookup is Parse with an explicit environment. A nil lookup skips
// environment overrides. The result is validated.
func ParseWithLookup(data []byte, lookup LookupFunc) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, configErrorf(opParse, fmt.Errorf("%v: %w", err, ErrDecode))
	}
	if lookup != nil {
		if err := applyEnv(&cfg, lookup); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports the first field outside its range.
func (c Config) Validate() error {
	if err := c.Optimizer.validate(); err != nil {
		return err
	}
	if err := c.Ansatz.Validate(); err != nil {
		return configErrorf(opValidate, fmt.Errorf("ansatz: %w: %w", err, ErrInvalidConfig))
	}
	if err := c.Criteria().Validate(); err != nil {
		return configErrorf(opValidate, fmt.Errorf("selection: %w: %w", err, ErrInvalidConfig))
	}
	m := c.Multistart
	switch {
	case m.Starts < 1:
		return invalid("multistart.starts", m.Starts)
	case m.Workers < 0:
		return invalid("multistart.workers", m.Workers)
	case !positive(m.InitScale):
		return invalid("multistart.init_scale", m.InitScale)
	}
	cl := c.Classifier
	if cl.Dimension < ansatz.MinDimension {
		return invalid("classifier.dimension", cl.Dimension)
	}
	if err := cl.Ansatz.Validate(); err != nil {
		return configErrorf(opValidate, fmt.Errorf("classifier.ansatz: %w: %w", err, ErrInvalidConfig))
	}
	if !knownKind(cl.Optimizer) {
		return invalid("classifier.optimizer", cl.Optimizer)
	}
	if cl.MaxIterations < 1 {
		return invalid("classifier.max_iterations", cl.MaxIterations)
	}
	q := c.QAOA
	switch {
	case q.Depth < 1:
		return invalid("qaoa.depth", q.Depth)
	case q.MaxIterations < 1:
		return invalid("qaoa.max_iterations", q.MaxIterations)
	case !positive(q.GradientStep):
		return invalid("qaoa.gradient_step", q.GradientStep)
	}
	return nil
}

func (o OptimizerConfig) validate() error {
	switch {
	case !knownKind(o.Kind):
		return invalid("optimizer.kind", o.Kind)
	case o.MaxIterations < 1:
		return invalid("optimizer.max_iterations", o.MaxIterations)
	case !positive(o.LearningRate):
		return invalid("optimizer.learning_rate", o.LearningRate)
	case !(o.Momentum >= 0 && o.Momentum < 1):
		return invalid("optimizer.momentum", o.Momentum)
	case o.Memory < 1:
		return invalid("optimizer.memory", o.Memory)
	case !positive(o.SimplexStep):
		return invalid("optimizer.simplex_step", o.SimplexStep)
	case !nonNegative(o.GradientTolerance):
		return invalid("optimizer.gradient_tolerance", o.GradientTolerance)
	case !nonNegative(o.CostTolerance):
		return invalid("optimizer.cost_tolerance", o.CostTolerance)
	case o.GradientWorkers < 0:
		return invalid("optimizer.gradient_workers", o.GradientWorkers)
	}
	return nil
}

// MethodOptions returns the optimizer.New options of the section.
func (o OptimizerConfig) MethodOptions() []optimizer.Option {
	var gopts []gradient.Option
	if o.GradientWorkers > 0 {
		gopts = append(gopts, gradient.WithWorkers(o.GradientWorkers))
	}
	opts := []optimizer.Option{
		optimizer.WithLearningRate(o.LearningRate),
		optimizer.WithMemory(o.Memory),
		optimizer.WithSimplexStep(o.SimplexStep),
		optimizer.WithEstimator(gradient.Shift(gopts...)),
	}
	if o.Momentum > 0 {
		opts = append(opts, optimizer.WithMomentum(o.Momentum))
	}
	return opts
}

// Tolerances returns the convergence thresholds of the section.
func (o OptimizerConfig) Tolerances() optimizer.Tolerances {
	return optimizer.Tolerances{Gradient: o.GradientTolerance, Cost: o.CostTolerance}
}

// RunOptions returns the optimizer.Run options of the section.
func (o OptimizerConfig) RunOptions() []optimizer.RunOption {
	return []optimizer.RunOption{
		optimizer.WithMaxIterations(o.MaxIterations),
		optimizer.WithTolerances(o.Tolerances()),
	}
}

// Criteria returns the selection thresholds without a reference value.
func (c Config) Criteria() multistart.Criteria {
	return multistart.Criteria{
		MaxAbsError: c.Selection.MaxAbsError,
		MaxRelError: c.Selection.MaxRelError,
	}
}

func knownKind(k optimizer.Kind) bool {
	_, err := k.MarshalText()
	return err == nil
}

func positive(x float64) bool { return x > 0 && !math.IsInf(x, 0) }

func nonNegative(x float64) bool { return x >= 0 && !math.IsInf(x, 0) }
