// SPDX-License-Identifier: MIT
// Package optimizer: the bounded optimization loop and its convergence test.

package optimizer

import (
	"fmt"
	"math"
	"time"
)

// Reason records why a Run stopped.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonGradientNorm
	ReasonCostPlateau
	ReasonMaxIterations
	ReasonDiverged
	ReasonFailed
)

var reasonNames = [...]string{
	ReasonNone:          "none",
	ReasonGradientNorm:  "gradient_norm",
	ReasonCostPlateau:   "cost_plateau",
	ReasonMaxIterations: "max_iterations",
	ReasonDiverged:      "diverged",
	ReasonFailed:        "failed",
}

// String returns a snake_case name.
func (r Reason) String() string {
	if r >= 0 && int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Record is one history entry: the diagnostic of the point entering Step k.
type Record struct {
	Iteration int           `json:"iteration" msgpack:"iteration"`
	Cost      float64       `json:"cost" msgpack:"cost"`
	GradNorm  float64       `json:"grad_norm" msgpack:"grad_norm"`
	Elapsed   time.Duration `json:"elapsed" msgpack:"elapsed"`
}

// Result is the immutable outcome of one Run.
type Result struct {
	Method      Kind
	Params      []float64
	Cost        float64
	Converged   bool
	Reason      Reason
	Iterations  int
	Evaluations int
	History     []Record
	Elapsed     time.Duration
	Err         error
}

// Trajectory returns the recorded cost of every iteration.
func (r Result) Trajectory() []float64 {
	out := make([]float64, len(r.History))
	for i, h := range r.History {
		out[i] = h.Cost
	}
	return out
}

// Converged applies both criteria to the last history entry:
// ‖∇f‖ < tol.Gradient (skipped when GradNorm is NaN), or
// |c_k − c_{k−1}| < tol.Cost (needs two entries).
func Converged(history []Record, tol Tolerances) (bool, Reason) {
	k := len(history) - 1
	if k < 0 {
		return false, ReasonNone
	}
	last := history[k]
	if !math.IsNaN(last.GradNorm) && last.GradNorm < tol.Gradient {
		return true, ReasonGradientNorm
	}
	if k > 0 && math.Abs(last.Cost-history[k-1].Cost) < tol.Cost {
		return true, ReasonCostPlateau
	}
	return false, ReasonNone
}

// Run iterates m from x0 until convergence, divergence, a Step error or
// MaxIterations. Result.Params and Result.Cost are the best point recorded.
//
// Contract:
//   - x0 is never modified.
//   - m.Reset is called before the first Step.
//   - Reaching MaxIterations is reported as Converged == false, Err == nil.
//   - A NaN or ±Inf cost stops the run with Err wrapping ErrDiverged.
func Run(m Method, x0 []float64, opts ...RunOption) Result {
	cfg := gatherRunOptions(opts...)
	if m == nil {
		return Result{Cost: math.NaN(), Reason: ReasonFailed, Err: optimizerErrorf(opRun, ErrNilMethod)}
	}
	log := cfg.logger.With().Str("component", "optimizer").Str("optimizer", m.Kind().String()).Logger()
	log.Debug().Int("parameters", len(x0)).Int("max_iterations", cfg.maxIterations).Msg("run started")

	start := time.Now()
	m.Reset()
	res := Result{Method: m.Kind(), Params: clone(x0), Cost: math.Inf(1), Reason: ReasonMaxIterations}
	x := clone(x0)

	for it := 0; it < cfg.maxIterations; it++ {
		next, d, err := m.Step(x)
		res.Evaluations += d.Evaluations
		if err != nil {
			res.Reason, res.Err = ReasonFailed, err
			break
		}
		if math.IsNaN(d.Cost) || math.IsInf(d.Cost, 0) {
			res.Reason = ReasonDiverged
			res.Err = optimizerErrorf(opRun, fmt.Errorf("iteration %d cost %v: %w", it, d.Cost, ErrDiverged))
			break
		}
		res.History = append(res.History, Record{
			Iteration: it,
			Cost:      d.Cost,
			GradNorm:  d.GradNorm,
			Elapsed:   time.Since(start),
		})
		res.Iterations = it + 1
		if d.Cost < res.Cost {
			res.Cost = d.Cost
			res.Params = clone(x)
		}
		if ok, reason := Converged(res.History, cfg.tol); ok {
			res.Converged, res.Reason = true, reason
			break
		}
		x = next
	}
	if len(res.History) == 0 {
		res.Cost = math.NaN()
	}
	res.Elapsed = time.Since(start)

	ev := log.Debug()
	if res.Converged {
		ev = log.Info()
	}
	ev.Bool("converged", res.Converged).
		Str("reason", res.Reason.String()).
		Int("iterations", res.Iterations).
		Int("evaluations", res.Evaluations).
		Float64("cost", res.Cost).
		Dur("elapsed", res.Elapsed).
		Err(res.Err).
		Msg("run finished")
	return res
}
