// SPDX-License-Identifier: MIT
// Package vqa: variational binary classifier.

package vqa

import (
	"context"
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/cost"
	"github.com/katalvlaran/lvqa/multistart"
	"github.com/katalvlaran/lvqa/optimizer"
)

// DecisionThreshold is the class-0 probability above which Predict returns 0.
const DecisionThreshold = 0.5

// Classifier trains Models on labeled samples.
type Classifier struct {
	s settings
}

// TrainReport is the outcome of Classifier.Train.
type TrainReport struct {
	Runs      []multistart.Run
	Selection multistart.Selection
	Loss      float64
	Converged bool
	// Accuracy is measured on the training samples.
	Accuracy float64
	// FeatureMean and FeatureStdDev describe the raw training features.
	FeatureMean   []float64
	FeatureStdDev []float64
	Record        BenchmarkRecord
}

// Model is a trained classifier, built by Classifier.Train or UnmarshalModel.
// It is immutable and safe for concurrent prediction.
type Model struct {
	Spec       ansatz.Spec       `msgpack:"spec" json:"spec"`
	Dim        int               `msgpack:"dim" json:"dim"`
	Params     []float64         `msgpack:"params" json:"params"`
	Normalizer ansatz.Normalizer `msgpack:"normalizer" json:"normalizer"`

	circuit *ansatz.Circuit
}

// modelWire is the encoded form of Model without its methods.
type modelWire Model

// NewClassifier returns a classifier with a depth-3 ring hardware-efficient
// circuit in dimension 13 and a 300-iteration budget unless overridden.
func NewClassifier(opts ...Option) (*Classifier, error) {
	s := defaultSettings()
	s.spec.Depth = 3
	s.runOpts = []optimizer.RunOption{optimizer.WithMaxIterations(300)}
	s.apply(opts)
	if err := s.spec.Validate(); err != nil {
		return nil, vqaErrorf(opClassifier, err)
	}
	if err := s.criteria.Validate(); err != nil {
		return nil, vqaErrorf(opClassifier, err)
	}
	s.logger = s.logger.With().Str("component", "classifier").Logger()
	return &Classifier{s: s}, nil
}

// Train fits the normalizer on samples, minimizes the cross-entropy from every
// start and returns the model of the selected run. When no run passes the
// selection filter the lowest finite loss is used and TrainReport.Converged
// is false.
//
// Errors:
//   - cost.ErrNoSamples, cost.ErrInvalidLabel, ansatz.ErrInvalidFeatures.
//   - ErrNoModel when every attempt failed.
//   - ctx.Err() when ctx ended before every attempt ran.
func (c *Classifier) Train(ctx context.Context, samples []cost.Sample) (*Model, *TrainReport, error) {
	if len(samples) == 0 {
		return nil, nil, vqaErrorf(opClassifier, cost.ErrNoSamples)
	}
	features := make([][]float64, len(samples))
	for i, smp := range samples {
		features[i] = smp.Features
	}
	nz, err := ansatz.FitNormalizer(features)
	if err != nil {
		return nil, nil, vqaErrorf(opClassifier, err)
	}
	circuit, err := ansatz.New(c.s.spec, c.s.dimension)
	if err != nil {
		return nil, nil, vqaErrorf(opClassifier, err)
	}
	loss, err := cost.NewCrossEntropy(circuit, samples, nz)
	if err != nil {
		return nil, nil, vqaErrorf(opClassifier, err)
	}

	attempts := c.s.attempts(loss, c.s.spec, c.s.spec.String(), uniformDraw(c.s.initScale))
	runs, sel := c.s.session().RunAndSelect(ctx, attempts, c.s.criteria)

	rep := &TrainReport{Runs: runs, Selection: sel, Record: NewRecord(c.s.spec.Kind.String(), c.s.spec.Depth, c.s.kind, sel)}
	rep.FeatureMean, rep.FeatureStdDev = featureStats(features)
	best, ok := sel.Best, sel.Valid
	if !ok {
		best, ok = lowestLoss(runs)
	}
	if !ok {
		return nil, rep, vqaErrorf(opClassifier, fmt.Errorf("%d attempts: %w", len(runs), ErrNoModel))
	}
	rep.Loss, rep.Converged = best.Cost, sel.Valid

	m := &Model{
		Spec:       c.s.spec,
		Dim:        c.s.dimension,
		Params:     append([]float64(nil), best.Params...),
		Normalizer: nz,
		circuit:    circuit,
	}
	if rep.Accuracy, err = m.Evaluate(samples); err != nil {
		return nil, rep, vqaErrorf(opClassifier, err)
	}

	c.s.logger.Info().
		Str("ansatz", c.s.spec.String()).
		Str("optimizer", c.s.kind.String()).
		Float64("loss", rep.Loss).
		Float64("accuracy", rep.Accuracy).
		Bool("converged", rep.Converged).
		Msg("classifier trained")
	if err := ctx.Err(); err != nil {
		return m, rep, vqaErrorf(opClassifier, err)
	}
	return m, rep, nil
}

// lowestLoss returns the error-free run with the smallest finite cost.
func lowestLoss(runs []multistart.Run) (multistart.Run, bool) {
	var best multistart.Run
	found := false
	for _, r := range runs {
		if r.Err != nil || len(r.Params) == 0 || math.IsNaN(r.Cost) || math.IsInf(r.Cost, 0) {
			continue
		}
		if !found || r.Cost < best.Cost {
			best, found = r, true
		}
	}
	return best, found
}

// featureStats returns the per-feature mean and sample standard deviation.
func featureStats(rows [][]float64) (mean, std []float64) {
	d := len(rows[0])
	mean, std = make([]float64, d), make([]float64, d)
	col := make([]float64, len(rows))
	for f := 0; f < d; f++ {
		for i, r := range rows {
			col[i] = r[f]
		}
		if len(col) < 2 {
			mean[f] = col[0]
			continue
		}
		mean[f], std[f] = stat.MeanStdDev(col, nil)
	}
	return mean, std
}

// PredictProba returns the class-0 probability of raw features x. A Model
// built as a struct literal gets its circuit from Spec and Dim.
func (m *Model) PredictProba(x []float64) (float64, error) {
	c := m.circuit
	if c == nil {
		built, err := ansatz.New(m.Spec, m.Dim)
		if err != nil {
			return 0, vqaErrorf(opModel, err)
		}
		c = built
	}
	p, err := cost.ClassZero(c, m.Normalizer, m.Params, x)
	if err != nil {
		return 0, vqaErrorf(opModel, err)
	}
	return p, nil
}

// Predict returns 0 when the class-0 probability exceeds DecisionThreshold, else 1.
func (m *Model) Predict(x []float64) (int, error) {
	p, err := m.PredictProba(x)
	if err != nil {
		return 0, err
	}
	if p > DecisionThreshold {
		return 0, nil
	}
	return 1, nil
}

// Evaluate returns the fraction of samples predicted correctly.
func (m *Model) Evaluate(samples []cost.Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, vqaErrorf(opModel, cost.ErrNoSamples)
	}
	correct := 0
	for i, smp := range samples {
		y, err := m.Predict(smp.Features)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		if y == smp.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(samples)), nil
}

// MarshalBinary encodes the model with MessagePack.
func (m *Model) MarshalBinary() ([]byte, error) {
	b, err := msgpack.Marshal((*modelWire)(m))
	if err != nil {
		return nil, vqaErrorf(opModel, err)
	}
	return b, nil
}

// UnmarshalModel decodes a model and rebuilds its circuit.
//
// Errors:
//   - ansatz.ErrInvalidSpec, ansatz.ErrInvalidDimension for a bad circuit.
//   - ErrInvalidModel when the parameter or feature counts do not fit.
func UnmarshalModel(b []byte) (*Model, error) {
	var w modelWire
	if err := msgpack.Unmarshal(b, &w); err != nil {
		return nil, vqaErrorf(opModel, err)
	}
	c, err := ansatz.New(w.Spec, w.Dim)
	if err != nil {
		return nil, vqaErrorf(opModel, err)
	}
	if len(w.Params) != c.NumParameters() {
		return nil, vqaErrorf(opModel, fmt.Errorf("%d parameters for %s in dimension %d: %w", len(w.Params), w.Spec, w.Dim, ErrInvalidModel))
	}
	if len(w.Normalizer.Min) != len(w.Normalizer.Max) || w.Normalizer.Features() > w.Dim {
		return nil, vqaErrorf(opModel, fmt.Errorf("normalizer with %d features: %w", w.Normalizer.Features(), ErrInvalidModel))
	}
	m := Model(w)
	m.circuit = c
	return &m, nil
}
