// SPDX-License-Identifier: MIT

// Package optimizer drives a cost.Function to a minimum through interchangeable
// update strategies that share one convergence contract.
//
// A Method performs one update per Step:
//
//	m, _ := optimizer.NewLBFGS(f)
//	res := optimizer.Run(m, x0, optimizer.WithMaxIterations(100))
//	if res.Converged { ... }
//
// Variants:
//
//   - Adam: per-parameter running mean and variance of the gradient
//     (β₁ = 0.9, β₂ = 0.999, ε = 1e-8, default learning rate 0.01).
//   - LBFGS: gonum optimize.LBFGS directions (two-loop recursion) with an
//     Armijo backtracking line search (optimize.Backtracking). A pair with
//     sᵀy ≤ 0 or a non-descent direction restarts from steepest descent.
//   - NelderMead: gonum optimize.NelderMead restarted around the incoming
//     point. One Step runs until its best vertex improves or
//     MaxSimplexTransforms major iterations elapse.
//   - GradientDescent: θ ← θ − η·∇f with optional heavy-ball momentum.
//
// Convergence is evaluated after every Step. Either criterion is sufficient:
//
//  1. ‖∇f‖ < GradientTolerance (default 1e-6); skipped when the method
//     reports no gradient (NaN).
//  2. |c_k − c_{k−1}| < CostTolerance (default 1e-3).
//
// Every Run stops at MaxIterations (default 1000). Exhausting the budget is
// not an error: the Result reports Converged == false with
// ReasonMaxIterations. A non-finite cost ends the run with ErrDiverged in
// Result.Err.
//
// Methods are stateful and not safe for concurrent use; build one per run.
// Gradient-based methods obtain gradients from a gradient.Estimator
// (parameter shift by default), which itself evaluates in parallel.
package optimizer
