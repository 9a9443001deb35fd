// SPDX-License-Identifier: MIT

// Package multistart runs independent optimization attempts and reduces them
// to one reportable result.
//
// A Session fans attempts out over a bounded goroutine pool
// (github.com/sourcegraph/conc/pool) and joins them before returning the runs
// in attempt order. Attempts never share mutable state; a panicking attempt is
// recovered into Run.Err and only that attempt is lost.
//
// Select filters and ranks the runs:
//
//   - valid ⇔ Converged ∧ finite cost ∧ deviation < MaxAbsError ∧ Err == nil,
//     where deviation = |cost − reference| with a known reference, |cost|
//     otherwise;
//   - best = minimum deviation, ties by fewer iterations, then lower Index;
//   - quality = clamp(1 − relative error / MaxRelError, 0, 1).
//
// When no run is valid Select returns a fallback Selection with Quality 0,
// Converged false and Err = ErrNoValidRun. This is informational: the session
// itself never fails.
//
// Ranking depends only on run contents and Index, so Select gives the same
// result for any permutation of its input.
package multistart
