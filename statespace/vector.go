// SPDX-License-Identifier: MIT
// Package statespace: normalized state vectors.

package statespace

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"gonum.org/v1/gonum/cmplxs"
)

// NormTolerance bounds |Σ|aᵢ|² − 1| for every constructed Vector.
const NormTolerance = 1e-10

// Vector is a normalized state in an N-dimensional complex Hilbert space.
// The zero value is not a valid state; use one of the constructors.
type Vector struct {
	amps []complex128
}

// Basis returns |k⟩ in dimension n.
func Basis(n, k int) (Vector, error) {
	if n < 1 {
		return Vector{}, stateErrorf(opBasis, ErrInvalidDimension)
	}
	if k < 0 || k >= n {
		return Vector{}, stateErrorf(opBasis, fmt.Errorf("k=%d, n=%d: %w", k, n, ErrIndexOutOfRange))
	}
	amps := make([]complex128, n)
	amps[k] = 1
	return Vector{amps: amps}, nil
}

// Uniform returns the equal superposition Σ|i⟩/√n.
func Uniform(n int) (Vector, error) {
	if n < 1 {
		return Vector{}, stateErrorf(opUniform, ErrInvalidDimension)
	}
	amps := make([]complex128, n)
	a := complex(1/math.Sqrt(float64(n)), 0)
	for i := range amps {
		amps[i] = a
	}
	return Vector{amps: amps}, nil
}

// FromAmplitudes copies and normalizes raw amplitudes.
//
// Errors:
//   - ErrInvalidDimension if amps is empty.
//   - ErrInvalidState if any entry is NaN/±Inf or the norm is zero.
func FromAmplitudes(amps []complex128) (Vector, error) {
	if len(amps) == 0 {
		return Vector{}, stateErrorf(opFromAmplitudes, ErrInvalidDimension)
	}
	for i, a := range amps {
		if cmplx.IsNaN(a) || cmplx.IsInf(a) {
			return Vector{}, stateErrorf(opFromAmplitudes, fmt.Errorf("amplitude %d = %v: %w", i, a, ErrInvalidState))
		}
	}
	peak := 0.0
	for _, a := range amps {
		peak = math.Max(peak, math.Max(math.Abs(real(a)), math.Abs(imag(a))))
	}
	if peak == 0 {
		return Vector{}, stateErrorf(opFromAmplitudes, fmt.Errorf("norm 0: %w", ErrInvalidState))
	}
	// Dividing by the peak first keeps the norm representable for subnormal
	// and near-overflow inputs.
	out := make([]complex128, len(amps))
	divideReal(out, amps, peak)
	divideReal(out, out, cmplxs.Norm(out, 2))
	if n := cmplxs.Norm(out, 2); math.IsNaN(n) || math.Abs(n*n-1) > NormTolerance {
		return Vector{}, stateErrorf(opFromAmplitudes, fmt.Errorf("norm %v after normalization: %w", n, ErrInvalidState))
	}
	return Vector{amps: out}, nil
}

// divideReal sets dst[i] = src[i]/d componentwise.
func divideReal(dst, src []complex128, d float64) {
	for i, a := range src {
		dst[i] = complex(real(a)/d, imag(a)/d)
	}
}

// FromReal is FromAmplitudes for purely real amplitudes.
func FromReal(values []float64) (Vector, error) {
	amps := make([]complex128, len(values))
	for i, v := range values {
		amps[i] = complex(v, 0)
	}
	return FromAmplitudes(amps)
}

// Random draws a state with independent standard-normal real and imaginary
// parts and normalizes it, which yields the unitarily invariant distribution.
func Random(n int, rng *rand.Rand) (Vector, error) {
	if n < 1 {
		return Vector{}, stateErrorf(opRandom, ErrInvalidDimension)
	}
	amps := make([]complex128, n)
	for i := range amps {
		amps[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	v, err := FromAmplitudes(amps)
	if err != nil {
		return Vector{}, stateErrorf(opRandom, err)
	}
	return v, nil
}

// Dim returns N.
func (v Vector) Dim() int { return len(v.amps) }

// At returns amplitude i; it panics on an out-of-range index like a slice would.
func (v Vector) At(i int) complex128 { return v.amps[i] }

// Amplitudes returns a copy of the amplitudes.
func (v Vector) Amplitudes() []complex128 {
	out := make([]complex128, len(v.amps))
	copy(out, v.amps)
	return out
}

// Norm returns the Euclidean norm (1 within NormTolerance for valid vectors).
func (v Vector) Norm() float64 { return cmplxs.Norm(v.amps, 2) }

// Probabilities returns |aᵢ|² for every index.
func (v Vector) Probabilities() []float64 {
	p := make([]float64, len(v.amps))
	for i, a := range v.amps {
		p[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return p
}

// Probability returns |a_k|²; out-of-range k yields 0.
func (v Vector) Probability(k int) float64 {
	if k < 0 || k >= len(v.amps) {
		return 0
	}
	a := v.amps[k]
	return real(a)*real(a) + imag(a)*imag(a)
}

// Inner returns ⟨a|b⟩ = Σ conj(aᵢ)·bᵢ.
func Inner(a, b Vector) (complex128, error) {
	if len(a.amps) != len(b.amps) {
		return 0, stateErrorf(opInner, fmt.Errorf("%d vs %d: %w", len(a.amps), len(b.amps), ErrDimensionMismatch))
	}
	return cmplxs.Dot(a.amps, b.amps), nil
}

// Fidelity returns |⟨a|b⟩|².
func Fidelity(a, b Vector) (float64, error) {
	ip, err := Inner(a, b)
	if err != nil {
		return 0, err
	}
	r := cmplx.Abs(ip)
	return r * r, nil
}
