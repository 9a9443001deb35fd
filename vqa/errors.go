// SPDX-License-Identifier: MIT
// Package vqa: sentinel error set.

package vqa

import (
	"errors"
	"fmt"
)

var (
	// ErrNilInput indicates a nil Hamiltonian or graph.
	ErrNilInput = errors.New("vqa: nil input")

	// ErrVerificationFailed indicates a best run whose state or energy is
	// physically impossible (below the ground energy or not normalized).
	ErrVerificationFailed = errors.New("vqa: verification failed")

	// ErrNoModel indicates training produced no usable parameters.
	ErrNoModel = errors.New("vqa: no trained model")

	// ErrInvalidModel indicates a decoded model whose parameters do not fit its circuit.
	ErrInvalidModel = errors.New("vqa: invalid model")

	// ErrGraphTooLarge indicates an exhaustive cut search beyond MaxExhaustiveOrder.
	ErrGraphTooLarge = errors.New("vqa: graph too large for exhaustive search")
)

const (
	opEigensolver = "Eigensolver"
	opQAOA        = "QAOA"
	opClassifier  = "Classifier"
	opModel       = "Model"
	opRecord      = "Record"
	opOptimalCut  = "OptimalCut"
)

// vqaErrorf wraps err with an operation tag.
func vqaErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
