// SPDX-License-Identifier: MIT
// Package cost: sentinel error set.

package cost

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvqa/statespace"
)

var (
	// ErrNoSamples indicates an empty training set.
	ErrNoSamples = errors.New("cost: no samples")

	// ErrInvalidLabel indicates a label outside {0, 1}.
	ErrInvalidLabel = errors.New("cost: label must be 0 or 1")

	// ErrNilInput indicates a nil circuit, Hamiltonian or function.
	ErrNilInput = errors.New("cost: nil input")

	// ErrDimensionMismatch aliases statespace.ErrDimensionMismatch.
	ErrDimensionMismatch = statespace.ErrDimensionMismatch
)

const (
	opNewExpectation  = "NewExpectation"
	opNewCrossEntropy = "NewCrossEntropy"
	opEvaluate        = "Evaluate"
	opPredict         = "ClassZero"
)

func costErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
