// SPDX-License-Identifier: MIT
// Package multistart: one finished optimization attempt.

package multistart

import (
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/optimizer"
)

// Run is the immutable record of one attempt.
type Run struct {
	Index       int
	ID          uuid.UUID
	Seed        int64
	Spec        ansatz.Spec
	// Circuit names the prepared circuit in logs. FromResult sets it to Spec.String().
	Circuit     string
	Optimizer   optimizer.Kind
	Params      []float64
	Cost        float64
	Converged   bool
	Iterations  int
	Evaluations int
	Elapsed     time.Duration
	Err         error
}

// FromResult records an optimizer result produced with the given circuit spec.
func FromResult(spec ansatz.Spec, seed int64, res optimizer.Result) Run {
	return Run{
		Seed:        seed,
		Spec:        spec,
		Circuit:     spec.String(),
		Optimizer:   res.Method,
		Params:      res.Params,
		Cost:        res.Cost,
		Converged:   res.Converged,
		Iterations:  res.Iterations,
		Evaluations: res.Evaluations,
		Elapsed:     res.Elapsed,
		Err:         res.Err,
	}
}
