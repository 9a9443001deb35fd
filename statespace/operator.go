// SPDX-License-Identifier: MIT
// Package statespace: dense complex operators.
//
// Implementation notes:
//   - Storage is row-major, data[i*n+j] = O[i,j].
//   - Operators are immutable; constructors copy their input.
//   - MulVec is the only kernel; Apply and Sandwich are thin facades over it.

package statespace

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"
)

// Operator is an immutable dense N×N complex matrix.
type Operator struct {
	n    int
	data []complex128
}

// NewOperator copies row-major data of length n*n into an Operator.
//
// Errors:
//   - ErrInvalidDimension if n < 1.
//   - ErrInvalidOperator  if len(data) != n*n or any entry is NaN/Inf.
func NewOperator(n int, data []complex128) (Operator, error) {
	if n < 1 {
		return Operator{}, stateErrorf(opNewOperator, ErrInvalidDimension)
	}
	if len(data) != n*n {
		return Operator{}, stateErrorf(opNewOperator, fmt.Errorf("len=%d, want %d: %w", len(data), n*n, ErrInvalidOperator))
	}
	for k, z := range data {
		if cmplx.IsNaN(z) || cmplx.IsInf(z) {
			return Operator{}, stateErrorf(opNewOperator, fmt.Errorf("entry (%d,%d) = %v: %w", k/n, k%n, z, ErrInvalidOperator))
		}
	}
	out := make([]complex128, len(data))
	copy(out, data)
	return Operator{n: n, data: out}, nil
}

// OperatorFromReal converts a square real gonum matrix.
func OperatorFromReal(m mat.Matrix) (Operator, error) {
	r, c := m.Dims()
	if r != c {
		return Operator{}, stateErrorf(opFromReal, fmt.Errorf("%dx%d: %w", r, c, ErrDimensionMismatch))
	}
	data := make([]complex128, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Operator{}, stateErrorf(opFromReal, fmt.Errorf("entry (%d,%d) = %v: %w", i, j, v, ErrInvalidOperator))
			}
			data[i*c+j] = complex(v, 0)
		}
	}
	return NewOperator(r, data)
}

// Identity returns the n×n identity.
func Identity(n int) (Operator, error) {
	if n < 1 {
		return Operator{}, stateErrorf(opNewOperator, ErrInvalidDimension)
	}
	data := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	return Operator{n: n, data: data}, nil
}

// Dim returns N.
func (o Operator) Dim() int { return o.n }

// At returns O[i,j]; it panics on out-of-range indices.
func (o Operator) At(i, j int) complex128 { return o.data[i*o.n+j] }

// Data returns a row-major copy of the entries.
func (o Operator) Data() []complex128 {
	out := make([]complex128, len(o.data))
	copy(out, o.data)
	return out
}

// IsHermitian reports whether |O[i,j] − conj(O[j,i])| ≤ eps for all i,j.
func (o Operator) IsHermitian(eps float64) bool {
	for i := 0; i < o.n; i++ {
		for j := i; j < o.n; j++ {
			if cmplx.Abs(o.data[i*o.n+j]-cmplx.Conj(o.data[j*o.n+i])) > eps {
				return false
			}
		}
	}
	return true
}

// IsReal reports whether every imaginary part is within eps of zero.
func (o Operator) IsReal(eps float64) bool {
	for _, z := range o.data {
		if math.Abs(imag(z)) > eps {
			return false
		}
	}
	return true
}

// RealSym returns the real part of the upper triangle as a gonum SymDense.
func (o Operator) RealSym() *mat.SymDense {
	s := mat.NewSymDense(o.n, nil)
	for i := 0; i < o.n; i++ {
		for j := i; j < o.n; j++ {
			s.SetSym(i, j, real(o.data[i*o.n+j]))
		}
	}
	return s
}

// MulVec returns O·x for raw amplitudes (no normalization).
func (o Operator) MulVec(x []complex128) ([]complex128, error) {
	if len(x) != o.n {
		return nil, stateErrorf(opMulVec, fmt.Errorf("%d vs %d: %w", o.n, len(x), ErrDimensionMismatch))
	}
	y := make([]complex128, o.n)
	for i := 0; i < o.n; i++ {
		row := o.data[i*o.n : (i+1)*o.n]
		var acc complex128
		for j, z := range row {
			acc += z * x[j]
		}
		y[i] = acc
	}
	return y, nil
}

// Apply maps a state through O and renormalizes the image. For unitary O the
// renormalization only removes rounding drift.
func (o Operator) Apply(v Vector) (Vector, error) {
	y, err := o.MulVec(v.amps)
	if err != nil {
		return Vector{}, stateErrorf(opApply, err)
	}
	out, err := FromAmplitudes(y)
	if err != nil {
		return Vector{}, stateErrorf(opApply, err)
	}
	return out, nil
}

// Sandwich returns ⟨v|O|v⟩ as a complex number.
func (o Operator) Sandwich(v Vector) (complex128, error) {
	y, err := o.MulVec(v.amps)
	if err != nil {
		return 0, err
	}
	return cmplxs.Dot(v.amps, y), nil
}
