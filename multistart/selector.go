// SPDX-License-Identifier: MIT
// Package multistart: run filtering, ranking and quality scoring.

package multistart

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultMaxAbsError rejects runs whose deviation is catastrophically large.
	DefaultMaxAbsError = 0.5

	// DefaultMaxRelError is the relative error mapped to quality 0.
	DefaultMaxRelError = 0.10

	// ReferenceFloor is the smallest |reference| used as a divisor.
	ReferenceFloor = 1e-10
)

// Criteria holds the reference value and the filtering thresholds.
type Criteria struct {
	Reference    float64 `yaml:"reference" json:"reference"`
	HasReference bool    `yaml:"has_reference" json:"has_reference"`
	MaxAbsError  float64 `yaml:"max_abs_error" json:"max_abs_error"`
	MaxRelError  float64 `yaml:"max_rel_error" json:"max_rel_error"`
}

// DefaultCriteria returns thresholds {0.5, 0.10} without a reference.
func DefaultCriteria() Criteria {
	return Criteria{MaxAbsError: DefaultMaxAbsError, MaxRelError: DefaultMaxRelError}
}

// WithReference returns a copy of c with a known reference value.
func (c Criteria) WithReference(ref float64) Criteria {
	c.Reference, c.HasReference = ref, true
	return c
}

// Validate reports non-positive or NaN thresholds and a non-finite reference.
func (c Criteria) Validate() error {
	if !(c.MaxAbsError > 0) || !(c.MaxRelError > 0) {
		return multistartErrorf(opValidate, fmt.Errorf("max_abs_error=%v max_rel_error=%v: %w", c.MaxAbsError, c.MaxRelError, ErrInvalidCriteria))
	}
	if c.HasReference && (math.IsNaN(c.Reference) || math.IsInf(c.Reference, 0)) {
		return multistartErrorf(opValidate, fmt.Errorf("reference=%v: %w", c.Reference, ErrInvalidCriteria))
	}
	return nil
}

// Deviation returns |cost − reference|, or |cost| without a reference.
func (c Criteria) Deviation(cost float64) float64 {
	if c.HasReference {
		return math.Abs(cost - c.Reference)
	}
	return math.Abs(cost)
}

// IsValid applies the validity filter to one run.
func (c Criteria) IsValid(r Run) bool {
	if r.Err != nil || !r.Converged || math.IsNaN(r.Cost) || math.IsInf(r.Cost, 0) {
		return false
	}
	return c.Deviation(r.Cost) < c.MaxAbsError
}

// RelativeError returns dev/|ref| when |ref| > ReferenceFloor, dev otherwise.
// Pass NaN for an unknown reference.
func RelativeError(dev, ref float64) float64 {
	if math.Abs(ref) > ReferenceFloor {
		return dev / math.Abs(ref)
	}
	return dev
}

// QualityScore maps a relative error to clamp(1 − rel/maxRel, 0, 1).
// A non-positive maxRel uses DefaultMaxRelError; NaN scores 0.
func QualityScore(rel, maxRel float64) float64 {
	if !(maxRel > 0) {
		maxRel = DefaultMaxRelError
	}
	if math.IsNaN(rel) {
		return 0
	}
	return math.Max(0, math.Min(1, 1-rel/maxRel))
}

// SpeedScore maps an iteration count to 1/(1 + iterations/100).
func SpeedScore(iterations int) float64 {
	return 1 / (1 + float64(iterations)/100)
}

// Stats summarizes a session.
type Stats struct {
	Total           int
	Valid           int
	Converged       int
	ConvergenceRate float64
	// Cost statistics over valid runs; NaN when there are none.
	BestCost   float64
	WorstCost  float64
	MeanCost   float64
	StdDevCost float64
}

// Selection is the reduced outcome of a session.
type Selection struct {
	Best          Run
	Valid         bool
	Converged     bool
	Reference     float64
	HasReference  bool
	Deviation     float64
	RelativeError float64
	Quality       float64
	Speed         float64
	Stats         Stats
	Err           error
}

// Select filters runs with c and returns the best one.
//
// Contract:
//   - runs is not modified.
//   - The result does not depend on the order of runs with distinct Index.
//   - No valid run yields the fallback {Valid: false, Quality: 0,
//     Converged: false, Err: ErrNoValidRun}.
func Select(runs []Run, c Criteria) Selection {
	valid := make([]Run, 0, len(runs))
	st := Stats{Total: len(runs)}
	for _, r := range runs {
		if r.Converged {
			st.Converged++
		}
		if c.IsValid(r) {
			valid = append(valid, r)
		}
	}
	st.Valid = len(valid)
	if st.Total > 0 {
		st.ConvergenceRate = float64(st.Converged) / float64(st.Total)
	}
	st.BestCost, st.WorstCost, st.MeanCost, st.StdDevCost = costStats(valid)

	sel := Selection{Reference: c.Reference, HasReference: c.HasReference, Stats: st}
	if len(valid) == 0 {
		sel.Deviation, sel.RelativeError = math.NaN(), math.NaN()
		sel.Err = multistartErrorf(opSelect, fmt.Errorf("%d runs: %w", len(runs), ErrNoValidRun))
		return sel
	}

	sort.SliceStable(valid, func(a, b int) bool {
		da, db := c.Deviation(valid[a].Cost), c.Deviation(valid[b].Cost)
		if da != db {
			return da < db
		}
		if valid[a].Iterations != valid[b].Iterations {
			return valid[a].Iterations < valid[b].Iterations
		}
		return valid[a].Index < valid[b].Index
	})

	ref := math.NaN()
	if c.HasReference {
		ref = c.Reference
	}
	best := valid[0]
	sel.Best = best
	sel.Valid, sel.Converged = true, true
	sel.Deviation = c.Deviation(best.Cost)
	sel.RelativeError = RelativeError(sel.Deviation, ref)
	sel.Quality = QualityScore(sel.RelativeError, c.MaxRelError)
	sel.Speed = SpeedScore(best.Iterations)
	return sel
}

// costStats returns best, worst, mean and sample standard deviation.
func costStats(runs []Run) (best, worst, mean, std float64) {
	if len(runs) == 0 {
		nan := math.NaN()
		return nan, nan, nan, nan
	}
	costs := make([]float64, len(runs))
	for i, r := range runs {
		costs[i] = r.Cost
	}
	// sorted input keeps the floating-point sums independent of run order
	sort.Float64s(costs)
	best, worst = floats.Min(costs), floats.Max(costs)
	if len(costs) < 2 {
		return best, worst, costs[0], 0
	}
	mean, std = stat.MeanStdDev(costs, nil)
	return best, worst, mean, std
}
