// SPDX-License-Identifier: MIT
// Package vqa: benchmark records.

package vqa

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/lvqa/multistart"
	"github.com/katalvlaran/lvqa/optimizer"
)

// BenchmarkRecord is the flat, serializable summary of one solve.
type BenchmarkRecord struct {
	AnsatzType         string  `msgpack:"ansatz_type" json:"ansatz_type"`
	AnsatzDepth        int     `msgpack:"ansatz_depth" json:"ansatz_depth"`
	Optimizer          string  `msgpack:"optimizer" json:"optimizer"`
	ObjectiveValue     float64 `msgpack:"objective_value" json:"objective_value"`
	ReferenceValue     float64 `msgpack:"reference_value" json:"reference_value"`
	ApproximationError float64 `msgpack:"approximation_error" json:"approximation_error"`
	RelativeError      float64 `msgpack:"relative_error" json:"relative_error"`
	QualityScore       float64 `msgpack:"quality_score" json:"quality_score"`
	Converged          bool    `msgpack:"converged" json:"converged"`
	Iterations         int     `msgpack:"iterations" json:"iterations"`
	Evaluations        int     `msgpack:"evaluations" json:"evaluations"`
	ExecutionTimeMs    float64 `msgpack:"execution_time_ms" json:"execution_time_ms"`
	RunID              string  `msgpack:"run_id" json:"run_id"`
}

// NewRecord summarizes a selection made over circuits of the named family and
// depth, optimized with kind. Without a reference ReferenceValue is NaN;
// a fallback selection has NaN objective and error fields and no run id.
func NewRecord(ansatzType string, depth int, kind optimizer.Kind, sel multistart.Selection) BenchmarkRecord {
	best := sel.Best
	rec := BenchmarkRecord{
		AnsatzType:         ansatzType,
		AnsatzDepth:        depth,
		Optimizer:          kind.String(),
		ObjectiveValue:     best.Cost,
		ReferenceValue:     math.NaN(),
		ApproximationError: sel.Deviation,
		RelativeError:      sel.RelativeError,
		QualityScore:       sel.Quality,
		Converged:          sel.Converged,
		Iterations:         best.Iterations,
		Evaluations:        best.Evaluations,
		ExecutionTimeMs:    float64(best.Elapsed) / float64(time.Millisecond),
	}
	if sel.HasReference {
		rec.ReferenceValue = sel.Reference
	}
	if !sel.Valid {
		rec.ObjectiveValue = math.NaN()
	}
	if best.ID != uuid.Nil {
		rec.RunID = best.ID.String()
	}
	return rec
}

// EncodeRecords serializes records with MessagePack.
func EncodeRecords(records []BenchmarkRecord) ([]byte, error) {
	b, err := msgpack.Marshal(records)
	if err != nil {
		return nil, vqaErrorf(opRecord, err)
	}
	return b, nil
}

// DecodeRecords parses the output of EncodeRecords.
func DecodeRecords(b []byte) ([]BenchmarkRecord, error) {
	var records []BenchmarkRecord
	if err := msgpack.Unmarshal(b, &records); err != nil {
		return nil, vqaErrorf(opRecord, err)
	}
	return records, nil
}
