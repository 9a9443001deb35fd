// SPDX-License-Identifier: MIT
// Package config_test verifies layering, validation and option helpers.
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/config"
	"github.com/katalvlaran/lvqa/optimizer"
)

// env returns a LookupFunc over a fixed map.
func env(m map[string]string) config.LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

// TestDefault_Valid verifies the defaults pass validation and match the packages.
func TestDefault_Valid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, optimizer.LBFGS, cfg.Optimizer.Kind)
	assert.Equal(t, optimizer.DefaultTolerances(), cfg.Optimizer.Tolerances())
	assert.Equal(t, 0.5, cfg.Selection.MaxAbsError)
	assert.Equal(t, 0.10, cfg.Selection.MaxRelError)
	assert.Equal(t, 13, cfg.Classifier.Dimension)
	assert.Equal(t, 3, cfg.Classifier.Ansatz.Depth)

	empty, err := config.ParseWithLookup(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, empty)
}

// TestParse_YAMLOverDefaults verifies partial documents keep unset defaults.
func TestParse_YAMLOverDefaults(t *testing.T) {
	doc := []byte(`
optimizer:
  kind: adam
  learning_rate: 0.05
  cost_tolerance: 1e-6
ansatz:
  kind: structured
  depth: 2
  entanglement: full
multistart:
  starts: 8
`)
	cfg, err := config.ParseWithLookup(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, optimizer.Adam, cfg.Optimizer.Kind)
	assert.Equal(t, 0.05, cfg.Optimizer.LearningRate)
	assert.Equal(t, 1e-6, cfg.Optimizer.CostTolerance)
	assert.Equal(t, optimizer.DefaultMaxIterations, cfg.Optimizer.MaxIterations)
	assert.Equal(t, ansatz.Spec{Kind: ansatz.Structured, Depth: 2, Entanglement: ansatz.Full}, cfg.Ansatz)
	assert.Equal(t, 8, cfg.Multistart.Starts)
	assert.Equal(t, int64(42), cfg.Multistart.Seed)
}

// TestParse_EnvOverridesYAML verifies the environment is the last layer.
func TestParse_EnvOverridesYAML(t *testing.T) {
	doc := []byte("optimizer:\n  kind: adam\nmultistart:\n  starts: 8\n")
	cfg, err := config.ParseWithLookup(doc, env(map[string]string{
		"LVQA_OPTIMIZER_KIND":          "nelder-mead",
		"LVQA_MULTISTART_STARTS":       "3",
		"LVQA_MULTISTART_SEED":         "-7",
		"LVQA_ANSATZ_ENTANGLEMENT":     "full",
		"LVQA_SELECTION_MAX_REL_ERROR": " 0.2 ",
		"LVQA_QAOA_DEPTH":              "",
	}))
	require.NoError(t, err)
	assert.Equal(t, optimizer.NelderMead, cfg.Optimizer.Kind)
	assert.Equal(t, 3, cfg.Multistart.Starts)
	assert.Equal(t, int64(-7), cfg.Multistart.Seed)
	assert.Equal(t, ansatz.Full, cfg.Ansatz.Entanglement)
	assert.Equal(t, 0.2, cfg.Selection.MaxRelError)
	assert.Equal(t, 2, cfg.QAOA.Depth)

	assert.Contains(t, config.EnvKeys(), "LVQA_OPTIMIZER_KIND")
}

// TestParse_Rejects covers malformed YAML, unknown keys, bad env values and ranges.
func TestParse_Rejects(t *testing.T) {
	_, err := config.ParseWithLookup([]byte("optimizer: [1, 2"), nil)
	assert.ErrorIs(t, err, config.ErrDecode)

	_, err = config.ParseWithLookup([]byte("optimiser:\n  kind: adam\n"), nil)
	assert.ErrorIs(t, err, config.ErrDecode)

	_, err = config.ParseWithLookup([]byte("optimizer:\n  kind: newton\n"), nil)
	assert.ErrorIs(t, err, config.ErrDecode)

	_, err = config.ParseWithLookup(nil, env(map[string]string{"LVQA_MULTISTART_STARTS": "many"}))
	assert.ErrorIs(t, err, config.ErrInvalidEnv)

	_, err = config.ParseWithLookup(nil, env(map[string]string{"LVQA_ANSATZ_KIND": "qaoa"}))
	assert.ErrorIs(t, err, config.ErrInvalidEnv)

	_, err = config.ParseWithLookup([]byte("multistart:\n  starts: 0\n"), nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

// TestValidate_Fields verifies each range check.
func TestValidate_Fields(t *testing.T) {
	cases := map[string]func(*config.Config){
		"kind":           func(c *config.Config) { c.Optimizer.Kind = 0 },
		"max_iterations": func(c *config.Config) { c.Optimizer.MaxIterations = 0 },
		"learning_rate":  func(c *config.Config) { c.Optimizer.LearningRate = -1 },
		"momentum":       func(c *config.Config) { c.Optimizer.Momentum = 1 },
		"cost_tolerance": func(c *config.Config) { c.Optimizer.CostTolerance = -1e-3 },
		"ansatz":         func(c *config.Config) { c.Ansatz.Depth = 0 },
		"selection":      func(c *config.Config) { c.Selection.MaxRelError = 0 },
		"init_scale":     func(c *config.Config) { c.Multistart.InitScale = 0 },
		"dimension":      func(c *config.Config) { c.Classifier.Dimension = 1 },
		"qaoa_depth":     func(c *config.Config) { c.QAOA.Depth = 0 },
		"gradient_step":  func(c *config.Config) { c.QAOA.GradientStep = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}

// TestHelpers verifies the helpers build working options.
func TestHelpers(t *testing.T) {
	cfg := config.Default()
	cfg.Optimizer.Momentum = 0.5
	cfg.Optimizer.GradientWorkers = 2
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Optimizer.MethodOptions(), 5)
	assert.Len(t, cfg.Optimizer.RunOptions(), 2)

	c := cfg.Criteria()
	assert.False(t, c.HasReference)
	require.NoError(t, c.WithReference(-13).Validate())
}

// TestLoad_RoundTrip verifies Marshal output loads back to the same Config.
func TestLoad_RoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Optimizer.Kind = optimizer.GradientDescent
	cfg.Ansatz.Kind = ansatz.ProblemSpecific
	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "gradient_descent")

	path := filepath.Join(t.TempDir(), "lvqa.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
