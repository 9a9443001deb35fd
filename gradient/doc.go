// SPDX-License-Identifier: MIT

// Package gradient estimates ∂f/∂θ for variational cost functions.
//
// Two estimators share the Estimator signature:
//
//   - ParameterShift evaluates f(θ ± π/2·eᵢ) and returns (f⁺ − f⁻)/2 per
//     component. The result is exact for circuits whose parameters enter
//     through a single generator with eigenvalues ±1/2 (every ansatz.Circuit
//     gate qualifies).
//   - For a cost.Decomposable objective (cross-entropy) ParameterShift
//     shifts every component and applies the chain rule, which keeps the
//     gradient exact for losses that are non-linear in the state.
//   - FiniteDifference evaluates the central difference (f(θ+h·eᵢ) −
//     f(θ−h·eᵢ))/2h. It serves as a reference and as the estimator for
//     parametrizations without the shift property.
//
// Both spread the 2·P evaluations over a bounded group of goroutines
// (golang.org/x/sync/errgroup). Components are independent, so completion
// order does not matter; the first failing evaluation cancels the rest.
// The objective must therefore be safe for concurrent use, which
// cost.Expectation and cost.CrossEntropy are.
//
// Complexity: 2·P objective evaluations per call, P = len(params).
package gradient
