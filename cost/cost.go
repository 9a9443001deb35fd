// SPDX-License-Identifier: MIT
// Package cost: objective variants.

package cost

import (
	"fmt"
	"math"
	"reflect"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/hamiltonian"
	"github.com/katalvlaran/lvqa/statespace"
)

// ProbabilityFloor is ε in the clamp p ∈ [ε, 1−ε] before taking logarithms.
const ProbabilityFloor = 1e-10

// Function is a scalar objective of a parameter vector.
type Function interface {
	NumParameters() int
	Evaluate(params []float64) (float64, error)
}

// Circuit prepares a state from parameters. *ansatz.Circuit implements it,
// and so does any other parametrized state preparation (e.g. QAOA).
type Circuit interface {
	Dim() int
	NumParameters() int
	Apply(params []float64) (statespace.Vector, error)
}

// Decomposable is a Function that is a smooth combination of components
// which each depend on the parameters through the shift rule. Gradient
// estimators use it to apply the shift rule to the components and the chain
// rule to the combination.
type Decomposable interface {
	Function
	// Components returns the component values at params.
	Components(params []float64) ([]float64, error)
	// Sensitivities returns ∂f/∂cₛ at the given component values.
	Sensitivities(components []float64) []float64
}

// Trainable is a Circuit that can also start from an arbitrary input state.
type Trainable interface {
	Circuit
	ApplyTo(in statespace.Vector, params []float64) (statespace.Vector, error)
}

// Expectation is E(θ) = ⟨ψ(θ)|H|ψ(θ)⟩.
type Expectation struct {
	circuit Circuit
	h       *hamiltonian.Hamiltonian
}

// NewExpectation binds a circuit to a Hamiltonian of the same dimension.
func NewExpectation(c Circuit, h *hamiltonian.Hamiltonian) (*Expectation, error) {
	if isNil(c) || h == nil {
		return nil, costErrorf(opNewExpectation, ErrNilInput)
	}
	if c.Dim() != h.Dim() {
		return nil, costErrorf(opNewExpectation, fmt.Errorf("circuit %d vs hamiltonian %d: %w", c.Dim(), h.Dim(), ErrDimensionMismatch))
	}
	return &Expectation{circuit: c, h: h}, nil
}

// NumParameters returns the circuit parameter count.
func (e *Expectation) NumParameters() int { return e.circuit.NumParameters() }

// Hamiltonian returns the bound operator.
func (e *Expectation) Hamiltonian() *hamiltonian.Hamiltonian { return e.h }

// State returns ψ(θ).
func (e *Expectation) State(params []float64) (statespace.Vector, error) {
	return e.circuit.Apply(params)
}

// Evaluate returns ⟨ψ(θ)|H|ψ(θ)⟩.
func (e *Expectation) Evaluate(params []float64) (float64, error) {
	psi, err := e.circuit.Apply(params)
	if err != nil {
		return 0, costErrorf(opEvaluate, err)
	}
	v, err := e.h.Expectation(psi)
	if err != nil {
		return 0, costErrorf(opEvaluate, err)
	}
	return v, nil
}

// Sample is one labeled training example. Label 0 is the "class-0" outcome.
type Sample struct {
	Features []float64 `json:"features" msgpack:"features"`
	Label    int       `json:"label" msgpack:"label"`
}

// CrossEntropy is the mean binary cross-entropy of the class-0 probability.
type CrossEntropy struct {
	circuit    Trainable
	normalizer ansatz.Normalizer
	inputs     []statespace.Vector
	targets    []float64 // y = 1 for label 0, y = 0 for label 1
}

// NewCrossEntropy normalizes and encodes every sample once.
//
// Errors:
//   - ErrNoSamples, ErrInvalidLabel, ErrNilInput.
//   - ansatz.ErrInvalidFeatures for features the normalizer or encoder reject.
func NewCrossEntropy(c Trainable, samples []Sample, nz ansatz.Normalizer) (*CrossEntropy, error) {
	if isNil(c) {
		return nil, costErrorf(opNewCrossEntropy, ErrNilInput)
	}
	if len(samples) == 0 {
		return nil, costErrorf(opNewCrossEntropy, ErrNoSamples)
	}
	ce := &CrossEntropy{
		circuit:    c,
		normalizer: nz,
		inputs:     make([]statespace.Vector, len(samples)),
		targets:    make([]float64, len(samples)),
	}
	for i, s := range samples {
		switch s.Label {
		case 0:
			ce.targets[i] = 1
		case 1:
			ce.targets[i] = 0
		default:
			return nil, costErrorf(opNewCrossEntropy, fmt.Errorf("sample %d label %d: %w", i, s.Label, ErrInvalidLabel))
		}
		in, err := ce.encode(s.Features)
		if err != nil {
			return nil, costErrorf(opNewCrossEntropy, fmt.Errorf("sample %d: %w", i, err))
		}
		ce.inputs[i] = in
	}
	return ce, nil
}

func (ce *CrossEntropy) encode(features []float64) (statespace.Vector, error) {
	x, err := ce.normalizer.Transform(features)
	if err != nil {
		return statespace.Vector{}, err
	}
	return ansatz.Encode(x, ce.circuit.Dim())
}

// NumParameters returns the circuit parameter count.
func (ce *CrossEntropy) NumParameters() int { return ce.circuit.NumParameters() }

// Len returns the number of training samples.
func (ce *CrossEntropy) Len() int { return len(ce.inputs) }

// Evaluate returns mean(−y·ln p − (1−y)·ln(1−p)) over the training set.
func (ce *CrossEntropy) Evaluate(params []float64) (float64, error) {
	var total float64
	for i, in := range ce.inputs {
		out, err := ce.circuit.ApplyTo(in, params)
		if err != nil {
			return 0, costErrorf(opEvaluate, err)
		}
		p := clampProbability(out.Probability(0))
		y := ce.targets[i]
		total += -y*math.Log(p) - (1-y)*math.Log(1-p)
	}
	return total / float64(len(ce.inputs)), nil
}

// TrainingProbabilities returns the class-0 probability of every training sample.
func (ce *CrossEntropy) TrainingProbabilities(params []float64) ([]float64, error) {
	out := make([]float64, len(ce.inputs))
	for i, in := range ce.inputs {
		psi, err := ce.circuit.ApplyTo(in, params)
		if err != nil {
			return nil, costErrorf(opEvaluate, err)
		}
		out[i] = psi.Probability(0)
	}
	return out, nil
}

// Components returns the class-0 probability of every training sample.
func (ce *CrossEntropy) Components(params []float64) ([]float64, error) {
	return ce.TrainingProbabilities(params)
}

// Sensitivities returns ∂loss/∂pₛ = (−yₛ/pₛ + (1−yₛ)/(1−pₛ))/S on clamped pₛ.
func (ce *CrossEntropy) Sensitivities(probs []float64) []float64 {
	w := make([]float64, len(probs))
	n := float64(len(probs))
	for i, p := range probs {
		p = clampProbability(p)
		y := ce.targets[i]
		w[i] = (-y/p + (1-y)/(1-p)) / n
	}
	return w
}

// ClassZeroProbability normalizes, encodes and evaluates one unseen example.
func (ce *CrossEntropy) ClassZeroProbability(params, features []float64) (float64, error) {
	return ClassZero(ce.circuit, ce.normalizer, params, features)
}

// ClassZero returns the class-0 probability of raw features under c with
// params, normalizing with nz and encoding into c's dimension.
//
// Errors:
//   - ErrNilInput for a nil circuit.
//   - ansatz.ErrInvalidFeatures for features nz or the encoder reject.
//   - circuit errors for a wrong parameter count.
func ClassZero(c Trainable, nz ansatz.Normalizer, params, features []float64) (float64, error) {
	if isNil(c) {
		return 0, costErrorf(opPredict, ErrNilInput)
	}
	x, err := nz.Transform(features)
	if err != nil {
		return 0, costErrorf(opPredict, err)
	}
	in, err := ansatz.Encode(x, c.Dim())
	if err != nil {
		return 0, costErrorf(opPredict, err)
	}
	psi, err := c.ApplyTo(in, params)
	if err != nil {
		return 0, costErrorf(opPredict, err)
	}
	return psi.Probability(0), nil
}

// isNil reports whether v is nil or holds a nil pointer, map, slice or func.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func clampProbability(p float64) float64 {
	return math.Min(1-ProbabilityFloor, math.Max(ProbabilityFloor, p))
}

// funcObjective adapts a closure to Function.
type funcObjective struct {
	n int
	f func([]float64) (float64, error)
}

func (o funcObjective) NumParameters() int { return o.n }

func (o funcObjective) Evaluate(p []float64) (float64, error) { return o.f(p) }

// FromFunc wraps f as an n-parameter Function. f must be safe for concurrent use.
func FromFunc(n int, f func([]float64) (float64, error)) Function {
	return funcObjective{n: n, f: f}
}
