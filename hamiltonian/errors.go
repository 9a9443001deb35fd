// SPDX-License-Identifier: MIT
// Package hamiltonian: sentinel error set.
// Dimension mismatches reuse statespace.ErrDimensionMismatch (re-exported
// below) so a single errors.Is check covers both packages.

package hamiltonian

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvqa/statespace"
)

var (
	// ErrNonHermitian is returned when an input operator is not Hermitian within
	// tolerance, or when an expectation value carries an imaginary residual
	// above ImagTolerance.
	ErrNonHermitian = errors.New("hamiltonian: operator is not Hermitian")

	// ErrEigenFailed indicates the eigensolver did not converge.
	ErrEigenFailed = errors.New("hamiltonian: eigen decomposition failed")

	// ErrNilGraph indicates a nil adjacency description.
	ErrNilGraph = errors.New("hamiltonian: graph is nil")

	// ErrDimensionMismatch aliases statespace.ErrDimensionMismatch.
	ErrDimensionMismatch = statespace.ErrDimensionMismatch
)

const (
	opFromLaplacian = "FromLaplacian"
	opFromMatrix    = "FromMatrix"
	opFromOperator  = "FromOperator"
	opMaxCut        = "MaxCut"
	opEigen         = "Eigen"
	opExpectation   = "Expectation"
	opEvolve        = "Evolve"
)

// hamErrorf wraps err with an operation tag.
func hamErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
