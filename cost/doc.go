// SPDX-License-Identifier: MIT

// Package cost maps (parameters, fixed problem data) to the scalar objective
// the optimizers minimize.
//
// Two variants share the Function interface:
//
//   - Expectation: E(θ) = ⟨ψ(θ)|H|ψ(θ)⟩ for eigensolver and combinatorial
//     problems (H encodes the objective, e.g. a cut-weight operator).
//   - CrossEntropy: mean binary cross-entropy of the class-0 probability
//     p = |⟨0|U(θ)|x⟩|² over labeled samples, with p clamped to
//     [ProbabilityFloor, 1−ProbabilityFloor].
//
// Both are pure: problem data is captured at construction (features are
// normalized and encoded once), Evaluate allocates its own scratch state, and
// a Function may be evaluated from many goroutines at once. FromFunc adapts
// an arbitrary closure for tests and derivative-free experiments.
package cost
