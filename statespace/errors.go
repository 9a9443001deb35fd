// SPDX-License-Identifier: MIT
// Package statespace: sentinel error set.
// Every message is prefixed with "statespace: ..."; callers match with errors.Is
// and operations add context through stateErrorf(op, err).

package statespace

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned when amplitudes contain NaN/Inf or their norm is zero.
	ErrInvalidState = errors.New("statespace: invalid state")

	// ErrDimensionMismatch indicates operands of incompatible dimension.
	ErrDimensionMismatch = errors.New("statespace: dimension mismatch")

	// ErrInvalidDimension indicates a requested dimension below 1.
	ErrInvalidDimension = errors.New("statespace: dimension must be > 0")

	// ErrIndexOutOfRange indicates a basis index outside [0,n).
	ErrIndexOutOfRange = errors.New("statespace: index out of range")

	// ErrInvalidOperator indicates malformed operator data (wrong length or non-finite entries).
	ErrInvalidOperator = errors.New("statespace: invalid operator")
)

// Operation tags used for uniform error wrapping.
const (
	opBasis          = "Basis"
	opUniform        = "Uniform"
	opFromAmplitudes = "FromAmplitudes"
	opRandom         = "Random"
	opInner          = "Inner"
	opNewOperator    = "NewOperator"
	opFromReal       = "OperatorFromReal"
	opApply          = "Apply"
	opMulVec         = "MulVec"
)

// stateErrorf wraps err with an operation tag, preserving it for errors.Is.
func stateErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
