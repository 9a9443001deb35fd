// SPDX-License-Identifier: MIT
package vqa_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/config"
	"github.com/katalvlaran/lvqa/cost"
	"github.com/katalvlaran/lvqa/vqa"
)

// clusters returns two well separated groups of four 4-feature samples.
func clusters() []cost.Sample {
	return []cost.Sample{
		{Features: []float64{0.10, 0.20, 0.15, 0.10}, Label: 0},
		{Features: []float64{0.15, 0.10, 0.20, 0.05}, Label: 0},
		{Features: []float64{0.05, 0.15, 0.10, 0.20}, Label: 0},
		{Features: []float64{0.20, 0.05, 0.05, 0.15}, Label: 0},
		{Features: []float64{0.90, 0.80, 0.85, 0.95}, Label: 1},
		{Features: []float64{0.85, 0.95, 0.80, 0.90}, Label: 1},
		{Features: []float64{0.95, 0.85, 0.90, 0.80}, Label: 1},
		{Features: []float64{0.80, 0.90, 0.95, 0.85}, Label: 1},
	}
}

// TestClassifier_SeparableClusters verifies a depth-3 circuit reaches full
// training accuracy within 300 iterations and converges.
func TestClassifier_SeparableClusters(t *testing.T) {
	clf, err := vqa.NewClassifier(vqa.WithStarts(2))
	require.NoError(t, err)

	samples := clusters()
	model, rep, err := clf.Train(context.Background(), samples)
	require.NoError(t, err)
	require.NotNil(t, model)

	assert.True(t, rep.Converged)
	assert.Equal(t, 1.0, rep.Accuracy)
	assert.Less(t, rep.Loss, math.Ln2)
	for _, r := range rep.Runs {
		assert.LessOrEqual(t, r.Iterations, 300)
	}
	assert.Equal(t, 3, model.Spec.Depth)
	assert.Equal(t, 13, model.Dim)
	assert.Len(t, model.Params, 78)
	assert.Equal(t, 3, rep.Record.AnsatzDepth)
	assert.True(t, math.IsNaN(rep.Record.ReferenceValue))

	require.Len(t, rep.FeatureMean, 4)
	assert.InDelta(t, 0.5, rep.FeatureMean[0], 1e-12)
	assert.Greater(t, rep.FeatureStdDev[0], 0.0)

	acc, err := model.Evaluate(samples)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)
	for _, s := range samples {
		y, err := model.Predict(s.Features)
		require.NoError(t, err)
		assert.Equal(t, s.Label, y)
	}

	b, err := model.MarshalBinary()
	require.NoError(t, err)
	restored, err := vqa.UnmarshalModel(b)
	require.NoError(t, err)
	assert.Equal(t, model.Spec, restored.Spec)
	assert.Equal(t, model.Params, restored.Params)
	assert.Equal(t, model.Normalizer, restored.Normalizer)
	for _, s := range samples {
		want, err := model.PredictProba(s.Features)
		require.NoError(t, err)
		got, err := restored.PredictProba(s.Features)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12)
	}
}

// TestClassifier_Rejects covers bad samples and bad specs.
func TestClassifier_Rejects(t *testing.T) {
	clf, err := vqa.NewClassifier(vqa.WithStarts(1), vqa.WithDimension(5))
	require.NoError(t, err)

	_, _, err = clf.Train(context.Background(), nil)
	assert.ErrorIs(t, err, cost.ErrNoSamples)

	_, _, err = clf.Train(context.Background(), []cost.Sample{
		{Features: []float64{0, 1}, Label: 0},
		{Features: []float64{1, 0}, Label: 3},
	})
	assert.ErrorIs(t, err, cost.ErrInvalidLabel)

	_, _, err = clf.Train(context.Background(), []cost.Sample{
		{Features: []float64{0, 1, 2, 3, 4, 5}, Label: 0},
		{Features: []float64{1, 0, 2, 3, 4, 5}, Label: 1},
	})
	assert.ErrorIs(t, err, ansatz.ErrInvalidFeatures)

	_, err = vqa.NewClassifier(vqa.WithAnsatz(ansatz.Spec{Kind: ansatz.HardwareEfficient, Depth: 0, Entanglement: ansatz.Ring}))
	assert.ErrorIs(t, err, ansatz.ErrInvalidSpec)
	assert.Panics(t, func() { vqa.WithDimension(1) })
}

// TestUnmarshalModel_Rejects covers undecodable input and inconsistent models.
func TestUnmarshalModel_Rejects(t *testing.T) {
	_, err := vqa.UnmarshalModel([]byte{0xc1})
	assert.Error(t, err)

	spec := ansatz.Spec{Kind: ansatz.HardwareEfficient, Depth: 1, Entanglement: ansatz.Ring}
	bad := &vqa.Model{Spec: spec, Dim: 5, Params: []float64{1, 2}}
	b, err := bad.MarshalBinary()
	require.NoError(t, err)
	_, err = vqa.UnmarshalModel(b)
	assert.ErrorIs(t, err, vqa.ErrInvalidModel)

	wide := &vqa.Model{
		Spec:       spec,
		Dim:        2,
		Params:     make([]float64, spec.NumParameters(2)),
		Normalizer: ansatz.Normalizer{Min: []float64{0, 0, 0}, Max: []float64{1, 1, 1}},
	}
	b, err = wide.MarshalBinary()
	require.NoError(t, err)
	_, err = vqa.UnmarshalModel(b)
	assert.ErrorIs(t, err, vqa.ErrInvalidModel)
}

// TestModel_StructLiteral verifies a Model built without Train or
// UnmarshalModel predicts like its decoded copy.
func TestModel_StructLiteral(t *testing.T) {
	spec := ansatz.Spec{Kind: ansatz.HardwareEfficient, Depth: 1, Entanglement: ansatz.Ring}
	params := make([]float64, spec.NumParameters(5))
	for i := range params {
		params[i] = 0.1 * float64(i+1)
	}
	m := &vqa.Model{
		Spec:       spec,
		Dim:        5,
		Params:     params,
		Normalizer: ansatz.Normalizer{Min: []float64{0, 0}, Max: []float64{1, 1}},
	}

	var p float64
	var err error
	require.NotPanics(t, func() { p, err = m.PredictProba([]float64{0.3, 0.7}) })
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)

	b, err := m.MarshalBinary()
	require.NoError(t, err)
	decoded, err := vqa.UnmarshalModel(b)
	require.NoError(t, err)
	want, err := decoded.PredictProba([]float64{0.3, 0.7})
	require.NoError(t, err)
	assert.InDelta(t, want, p, 1e-12)

	bad := &vqa.Model{Spec: ansatz.Spec{Kind: ansatz.HardwareEfficient, Depth: 0, Entanglement: ansatz.Ring}, Dim: 5}
	require.NotPanics(t, func() { _, err = bad.PredictProba([]float64{0.3}) })
	assert.ErrorIs(t, err, ansatz.ErrInvalidSpec)
}

// TestClassifierOptions_FromConfig verifies the classifier section is honored.
func TestClassifierOptions_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Classifier.Dimension = 6
	cfg.Classifier.Ansatz.Depth = 1
	cfg.Classifier.MaxIterations = 50
	cfg.Multistart.Starts = 1
	require.NoError(t, cfg.Validate())

	clf, err := vqa.NewClassifier(vqa.ClassifierOptions(cfg)...)
	require.NoError(t, err)
	model, _, err := clf.Train(context.Background(), clusters())
	require.NoError(t, err)
	assert.Equal(t, 6, model.Dim)
	assert.Len(t, model.Params, cfg.Classifier.Ansatz.NumParameters(6))
}
