// SPDX-License-Identifier: MIT

// Package statespace implements the fixed-dimension complex Hilbert space the
// simulator works in: normalized state vectors and dense operators.
//
// What is inside:
//
//   - Vector: N complex amplitudes with Σ|aᵢ|² = 1 (tolerance NormTolerance).
//     Constructors Basis, Uniform, FromAmplitudes, FromReal and Random always
//     return normalized vectors or fail with ErrInvalidState.
//   - Operator: dense N×N complex matrix, row-major and immutable.
//   - Inner products, probabilities and operator application.
//
// Value semantics:
//
//	Vectors and Operators never expose their backing slices. Every accessor
//	returns a copy and every transformation allocates a fresh result, so a
//	value may be shared between goroutines without synchronization.
//
// Errors (match with errors.Is):
//
//	ErrInvalidState       non-finite or zero-norm amplitudes
//	ErrDimensionMismatch  operands of different dimension
//	ErrInvalidDimension   n < 1
//	ErrIndexOutOfRange    basis index outside [0,n)
//	ErrInvalidOperator    malformed or non-finite operator data
package statespace
