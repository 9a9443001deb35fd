// SPDX-License-Identifier: MIT
// Package hamiltonian: memoized eigendecomposition.
//
// Purpose:
//   - Factorize the operator once, sort eigenpairs ascending, and serve every
//     spectral query (ground state, gap, time evolution) from that cache.
//
// Notes:
//   - Real symmetric operators go through gonum mat.EigenSym.
//   - Complex Hermitian operators go through jacobiHermitian below.

package hamiltonian

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvqa/statespace"
)

// DegeneracyTolerance groups eigenvalues closer than this into one level.
const DegeneracyTolerance = 1e-9

// spectrum holds ascending eigenvalues and the matching unit eigenvectors.
type spectrum struct {
	values  []float64
	vectors [][]complex128 // vectors[k] is the eigenvector of values[k]
}

// SpectrumInfo summarizes the low end of the spectrum.
type SpectrumInfo struct {
	GroundEnergy       float64
	FirstExcitedEnergy float64 // first level strictly above the ground level; equals GroundEnergy when none exists
	Gap                float64
	GroundDegeneracy   int
	MinEnergy          float64
	MaxEnergy          float64
}

// ensureSpectrum runs the factorization exactly once.
func (h *Hamiltonian) ensureSpectrum() (spectrum, error) {
	h.once.Do(func() {
		h.factored++
		if h.isReal {
			h.spec, h.specErr = eigenSymmetric(h.op.RealSym())
		} else {
			h.spec, h.specErr = jacobiHermitian(h.op, h.cfg.jacobiTol, h.cfg.jacobiSweeps)
		}
		if h.specErr != nil {
			h.specErr = hamErrorf(opEigen, h.specErr)
		}
	})
	return h.spec, h.specErr
}

// Eigen returns copies of the ascending eigenvalues and their eigenvectors.
func (h *Hamiltonian) Eigen() ([]float64, []statespace.Vector, error) {
	sp, err := h.ensureSpectrum()
	if err != nil {
		return nil, nil, err
	}
	values := make([]float64, len(sp.values))
	copy(values, sp.values)
	vectors := make([]statespace.Vector, len(sp.vectors))
	for k, col := range sp.vectors {
		v, err := statespace.FromAmplitudes(col)
		if err != nil {
			return nil, nil, hamErrorf(opEigen, err)
		}
		vectors[k] = v
	}
	return values, vectors, nil
}

// Eigenvalues returns a copy of the ascending eigenvalues.
func (h *Hamiltonian) Eigenvalues() ([]float64, error) {
	sp, err := h.ensureSpectrum()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(sp.values))
	copy(out, sp.values)
	return out, nil
}

// GroundEnergy returns the lowest eigenvalue E₀.
func (h *Hamiltonian) GroundEnergy() (float64, error) {
	sp, err := h.ensureSpectrum()
	if err != nil {
		return 0, err
	}
	return sp.values[0], nil
}

// GroundState returns the eigenvector of the lowest eigenvalue. Within a
// degenerate ground level it is the first vector of the factorization order.
func (h *Hamiltonian) GroundState() (statespace.Vector, error) {
	sp, err := h.ensureSpectrum()
	if err != nil {
		return statespace.Vector{}, err
	}
	v, err := statespace.FromAmplitudes(sp.vectors[0])
	if err != nil {
		return statespace.Vector{}, hamErrorf(opEigen, err)
	}
	return v, nil
}

// Spectrum reports ground energy, first excited level, gap and degeneracy.
func (h *Hamiltonian) Spectrum() (SpectrumInfo, error) {
	sp, err := h.ensureSpectrum()
	if err != nil {
		return SpectrumInfo{}, err
	}
	vals := sp.values
	info := SpectrumInfo{
		GroundEnergy:       vals[0],
		FirstExcitedEnergy: vals[0],
		GroundDegeneracy:   1,
		MinEnergy:          vals[0],
		MaxEnergy:          vals[len(vals)-1],
	}
	for k := 1; k < len(vals); k++ {
		if vals[k]-vals[0] <= DegeneracyTolerance {
			info.GroundDegeneracy++
			continue
		}
		info.FirstExcitedEnergy = vals[k]
		info.Gap = vals[k] - vals[0]
		break
	}
	return info, nil
}

// Evolve returns exp(−iHt)|ψ⟩ computed in the cached eigenbasis.
func (h *Hamiltonian) Evolve(psi statespace.Vector, t float64) (statespace.Vector, error) {
	if psi.Dim() != h.Dim() {
		return statespace.Vector{}, hamErrorf(opEvolve, fmt.Errorf("%d vs %d: %w", psi.Dim(), h.Dim(), ErrDimensionMismatch))
	}
	sp, err := h.ensureSpectrum()
	if err != nil {
		return statespace.Vector{}, err
	}
	amps := psi.Amplitudes()
	out := make([]complex128, len(amps))
	for k, vec := range sp.vectors {
		var coeff complex128
		for i, a := range amps {
			coeff += cmplx.Conj(vec[i]) * a
		}
		coeff *= cmplx.Exp(complex(0, -sp.values[k]*t))
		for i := range out {
			out[i] += coeff * vec[i]
		}
	}
	v, err := statespace.FromAmplitudes(out)
	if err != nil {
		return statespace.Vector{}, hamErrorf(opEvolve, err)
	}
	return v, nil
}

// eigenSymmetric factorizes a real symmetric matrix with gonum and returns
// eigenpairs sorted ascending (stable on ties).
func eigenSymmetric(a *mat.SymDense) (spectrum, error) {
	var es mat.EigenSym
	if ok := es.Factorize(a, true); !ok {
		return spectrum{}, ErrEigenFailed
	}
	values := es.Values(nil)
	var q mat.Dense
	es.VectorsTo(&q)

	n := len(values)
	cols := make([][]complex128, n)
	for k := 0; k < n; k++ {
		col := make([]complex128, n)
		for i := 0; i < n; i++ {
			col[i] = complex(q.At(i, k), 0)
		}
		cols[k] = col
	}
	return sortSpectrum(values, cols), nil
}

// sortSpectrum orders eigenpairs by ascending eigenvalue keeping the
// factorization order among equal values.
func sortSpectrum(values []float64, vectors [][]complex128) spectrum {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	out := spectrum{
		values:  make([]float64, len(values)),
		vectors: make([][]complex128, len(values)),
	}
	for k, i := range idx {
		out.values[k] = values[i]
		out.vectors[k] = vectors[i]
	}
	return out
}

// jacobiHermitian diagonalizes a complex Hermitian operator by unitary Jacobi
// rotations.
//
// Implementation:
//   - J.1: pick the pivot (p,q) maximizing |A[p,q]|.
//   - J.2: stop once |A[p,q]| < tol·‖A‖_F.
//   - J.3: remove the phase of A[p,q] with D = diag(1, e^{−iφ}), then take the
//     real rotation (c,s) that zeroes the resulting real symmetric 2×2 block.
//   - J.4: A ← U†AU with U = D·G acting on columns/rows p,q.
//   - J.5: accumulate V ← V·U; columns of V are the eigenvectors.
//
// Complexity:
//   - O(n²) pivot search plus O(n) update per rotation; at most
//     sweeps·n(n−1)/2 rotations.
func jacobiHermitian(op statespace.Operator, tol float64, sweeps int) (spectrum, error) {
	n := op.Dim()
	a := op.Data()
	v := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		v[i*n+i] = 1
	}

	var frob float64
	for _, z := range a {
		frob += real(z)*real(z) + imag(z)*imag(z)
	}
	threshold := tol * math.Max(math.Sqrt(frob), 1)

	maxRot := sweeps * n * (n - 1) / 2
	converged := n == 1
	for rot := 0; rot <= maxRot && n > 1; rot++ {
		// J.1
		p, q, maxOff := 0, 1, 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if off := cmplx.Abs(a[i*n+j]); off > maxOff {
					p, q, maxOff = i, j, off
				}
			}
		}
		// J.2
		if maxOff < threshold {
			converged = true
			break
		}
		if rot == maxRot {
			break
		}

		// J.3
		apq := a[p*n+q]
		phase := apq / complex(maxOff, 0) // e^{iφ}
		app, aqq := real(a[p*n+p]), real(a[q*n+q])
		theta := (aqq - app) / (2 * maxOff)
		t := math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c := 1.0 / math.Sqrt(t*t+1)
		s := t * c

		// U = D·G with G = [[c, s], [−s, c]], D = diag(1, conj(phase)).
		upp := complex(c, 0)
		upq := complex(s, 0)
		uqp := complex(-s, 0) * cmplx.Conj(phase)
		uqq := complex(c, 0) * cmplx.Conj(phase)

		// J.4: columns (A·U), then rows (U†·A).
		for i := 0; i < n; i++ {
			aip, aiq := a[i*n+p], a[i*n+q]
			a[i*n+p] = aip*upp + aiq*uqp
			a[i*n+q] = aip*upq + aiq*uqq
		}
		for j := 0; j < n; j++ {
			apj, aqj := a[p*n+j], a[q*n+j]
			a[p*n+j] = cmplx.Conj(upp)*apj + cmplx.Conj(uqp)*aqj
			a[q*n+j] = cmplx.Conj(upq)*apj + cmplx.Conj(uqq)*aqj
		}
		a[p*n+q], a[q*n+p] = 0, 0
		a[p*n+p] = complex(real(a[p*n+p]), 0)
		a[q*n+q] = complex(real(a[q*n+q]), 0)

		// J.5
		for i := 0; i < n; i++ {
			vip, viq := v[i*n+p], v[i*n+q]
			v[i*n+p] = vip*upp + viq*uqp
			v[i*n+q] = vip*upq + viq*uqq
		}
	}
	if !converged {
		return spectrum{}, ErrEigenFailed
	}

	values := make([]float64, n)
	cols := make([][]complex128, n)
	for k := 0; k < n; k++ {
		values[k] = real(a[k*n+k])
		col := make([]complex128, n)
		for i := 0; i < n; i++ {
			col[i] = v[i*n+k]
		}
		cols[k] = col
	}
	return sortSpectrum(values, cols), nil
}
