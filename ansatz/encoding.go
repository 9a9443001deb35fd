// SPDX-License-Identifier: MIT
// Package ansatz: classical feature encoding for the classifier.
//
// Contract:
//   • FitNormalizer learns per-feature min/max on training data only.
//   • Transform reuses the fitted values verbatim and clamps into [0,1];
//     features with range < MinFeatureRange map to 0.5.
//   • Encode prepares (|0⟩+|1⟩)/√2 and then rotates amplitude between i and
//     i+1 mod N by the real angle value·π for feature i.

package ansatz

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvqa/statespace"
)

// MinFeatureRange is the smallest max−min treated as a varying feature.
const MinFeatureRange = 1e-10

// Normalizer maps raw features into [0,1] with statistics fit on training data.
// It is part of a trained model and is serialized with it.
type Normalizer struct {
	Min []float64 `yaml:"min" json:"min" msgpack:"min"`
	Max []float64 `yaml:"max" json:"max" msgpack:"max"`
}

// FitNormalizer computes per-feature min and max over samples.
//
// Errors:
//   - ErrInvalidFeatures for no samples, zero features, ragged rows or NaN/Inf.
func FitNormalizer(samples [][]float64) (Normalizer, error) {
	if len(samples) == 0 || len(samples[0]) == 0 {
		return Normalizer{}, ansatzErrorf(opFit, fmt.Errorf("empty data: %w", ErrInvalidFeatures))
	}
	d := len(samples[0])
	cols := make([][]float64, d)
	for f := range cols {
		cols[f] = make([]float64, len(samples))
	}
	for s, row := range samples {
		if len(row) != d {
			return Normalizer{}, ansatzErrorf(opFit, fmt.Errorf("sample %d has %d features, want %d: %w", s, len(row), d, ErrInvalidFeatures))
		}
		for f, x := range row {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return Normalizer{}, ansatzErrorf(opFit, fmt.Errorf("sample %d feature %d = %v: %w", s, f, x, ErrInvalidFeatures))
			}
			cols[f][s] = x
		}
	}

	nz := Normalizer{Min: make([]float64, d), Max: make([]float64, d)}
	for f, col := range cols {
		nz.Min[f] = floats.Min(col)
		nz.Max[f] = floats.Max(col)
	}
	return nz, nil
}

// Features returns the number of features the normalizer was fit on.
func (nz Normalizer) Features() int { return len(nz.Min) }

// Transform maps x into [0,1]^d.
func (nz Normalizer) Transform(x []float64) ([]float64, error) {
	if len(x) != len(nz.Min) || len(nz.Min) != len(nz.Max) {
		return nil, ansatzErrorf(opTransform, fmt.Errorf("got %d features, want %d: %w", len(x), len(nz.Min), ErrInvalidFeatures))
	}
	out := make([]float64, len(x))
	for f, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ansatzErrorf(opTransform, fmt.Errorf("feature %d = %v: %w", f, v, ErrInvalidFeatures))
		}
		rng := nz.Max[f] - nz.Min[f]
		if rng < MinFeatureRange {
			out[f] = 0.5
			continue
		}
		out[f] = math.Min(1, math.Max(0, (v-nz.Min[f])/rng))
	}
	return out, nil
}

// Encode prepares the input state for normalized features in dimension n.
// At most n features can be encoded.
func Encode(features []float64, n int) (statespace.Vector, error) {
	if n < MinDimension {
		return statespace.Vector{}, ansatzErrorf(opEncode, fmt.Errorf("n=%d: %w", n, ErrInvalidDimension))
	}
	if len(features) > n {
		return statespace.Vector{}, ansatzErrorf(opEncode, fmt.Errorf("%d features in dimension %d: %w", len(features), n, ErrInvalidFeatures))
	}
	amps := make([]complex128, n)
	amps[0] = 1
	rotateReal(amps, 0, 1, math.Pi/2)
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return statespace.Vector{}, ansatzErrorf(opEncode, fmt.Errorf("feature %d = %v: %w", i, v, ErrInvalidFeatures))
		}
		rotateReal(amps, i, (i+1)%n, v*math.Pi)
	}
	out, err := statespace.FromAmplitudes(amps)
	if err != nil {
		return statespace.Vector{}, ansatzErrorf(opEncode, err)
	}
	return out, nil
}

// rotateReal applies the real plane rotation [[c, −s], [s, c]] with
// c = cos(α/2), s = sin(α/2) to amplitudes i and j.
func rotateReal(amps []complex128, i, j int, alpha float64) {
	s, c := math.Sincos(alpha / 2)
	ai, aj := amps[i], amps[j]
	amps[i] = complex(c, 0)*ai - complex(s, 0)*aj
	amps[j] = complex(s, 0)*ai + complex(c, 0)*aj
}
