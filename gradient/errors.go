// SPDX-License-Identifier: MIT
// Package gradient: sentinel error set.

package gradient

import (
	"errors"
	"fmt"
)

var (
	// ErrNilFunction indicates a nil objective.
	ErrNilFunction = errors.New("gradient: nil function")

	// ErrParameterCount indicates len(params) != f.NumParameters().
	ErrParameterCount = errors.New("gradient: wrong parameter count")

	// ErrNonFiniteValue indicates an evaluation returned NaN or ±Inf.
	ErrNonFiniteValue = errors.New("gradient: non-finite evaluation")
)

const (
	opParameterShift   = "ParameterShift"
	opFiniteDifference = "FiniteDifference"
)

// gradientErrorf wraps err with an operation tag.
func gradientErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
