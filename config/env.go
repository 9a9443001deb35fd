// SPDX-License-Identifier: MIT
// Package config: LVQA_* environment overrides.

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/optimizer"
)

// EnvPrefix starts every recognized variable.
const EnvPrefix = "LVQA_"

type envBinding struct {
	key   string
	apply func(c *Config, v string) error
}

var envBindings = []envBinding{
	{"OPTIMIZER_KIND", func(c *Config, v string) (err error) {
		c.Optimizer.Kind, err = optimizer.ParseKind(v)
		return err
	}},
	{"OPTIMIZER_MAX_ITERATIONS", intField(func(c *Config) *int { return &c.Optimizer.MaxIterations })},
	{"OPTIMIZER_LEARNING_RATE", floatField(func(c *Config) *float64 { return &c.Optimizer.LearningRate })},
	{"OPTIMIZER_MOMENTUM", floatField(func(c *Config) *float64 { return &c.Optimizer.Momentum })},
	{"OPTIMIZER_MEMORY", intField(func(c *Config) *int { return &c.Optimizer.Memory })},
	{"OPTIMIZER_GRADIENT_TOLERANCE", floatField(func(c *Config) *float64 { return &c.Optimizer.GradientTolerance })},
	{"OPTIMIZER_COST_TOLERANCE", floatField(func(c *Config) *float64 { return &c.Optimizer.CostTolerance })},
	{"OPTIMIZER_GRADIENT_WORKERS", intField(func(c *Config) *int { return &c.Optimizer.GradientWorkers })},
	{"ANSATZ_KIND", func(c *Config, v string) (err error) {
		c.Ansatz.Kind, err = ansatz.ParseKind(v)
		return err
	}},
	{"ANSATZ_DEPTH", intField(func(c *Config) *int { return &c.Ansatz.Depth })},
	{"ANSATZ_ENTANGLEMENT", func(c *Config, v string) (err error) {
		c.Ansatz.Entanglement, err = ansatz.ParseEntanglement(v)
		return err
	}},
	{"SELECTION_MAX_ABS_ERROR", floatField(func(c *Config) *float64 { return &c.Selection.MaxAbsError })},
	{"SELECTION_MAX_REL_ERROR", floatField(func(c *Config) *float64 { return &c.Selection.MaxRelError })},
	{"MULTISTART_STARTS", intField(func(c *Config) *int { return &c.Multistart.Starts })},
	{"MULTISTART_WORKERS", intField(func(c *Config) *int { return &c.Multistart.Workers })},
	{"MULTISTART_SEED", func(c *Config, v string) (err error) {
		c.Multistart.Seed, err = strconv.ParseInt(v, 10, 64)
		return err
	}},
	{"MULTISTART_INIT_SCALE", floatField(func(c *Config) *float64 { return &c.Multistart.InitScale })},
	{"CLASSIFIER_MAX_ITERATIONS", intField(func(c *Config) *int { return &c.Classifier.MaxIterations })},
	{"QAOA_DEPTH", intField(func(c *Config) *int { return &c.QAOA.Depth })},
	{"QAOA_MAX_ITERATIONS", intField(func(c *Config) *int { return &c.QAOA.MaxIterations })},
}

// EnvKeys lists the recognized variables in application order.
func EnvKeys() []string {
	keys := make([]string, len(envBindings))
	for i, b := range envBindings {
		keys[i] = EnvPrefix + b.key
	}
	return keys
}

// applyEnv overrides cfg with every variable lookup resolves. Empty values are skipped.
func applyEnv(cfg *Config, lookup LookupFunc) error {
	for _, b := range envBindings {
		key := EnvPrefix + b.key
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			continue
		}
		if err := b.apply(cfg, v); err != nil {
			return configErrorf(opEnv, fmt.Errorf("%s=%q: %v: %w", key, v, err, ErrInvalidEnv))
		}
	}
	return nil
}

func intField(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func floatField(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = x
		return nil
	}
}
