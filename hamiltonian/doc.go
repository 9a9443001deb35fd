// SPDX-License-Identifier: MIT

// Package hamiltonian holds the problem operator of a variational run and its
// spectral data.
//
// A Hamiltonian is built once per problem instance and never mutated:
//
//	g, _ := topology.Metatron()
//	h, _ := hamiltonian.FromLaplacian(g)      // H = −L
//	e0, _ := h.GroundEnergy()                 // −13
//	e, _ := h.Expectation(psi)                // ⟨ψ|H|ψ⟩
//
// Eigendecomposition:
//
//   - Computed lazily on first use and memoized for the lifetime of the
//     instance; later queries never re-factorize.
//   - Real symmetric operators are factorized with gonum's mat.EigenSym.
//     Complex Hermitian operators use a cyclic complex Jacobi solver.
//   - Eigenpairs are sorted by ascending eigenvalue; ties keep the order
//     produced by the factorization (stable sort).
//   - After the first factorization every accessor only reads, so a
//     *Hamiltonian is safe for unsynchronized concurrent use.
//
// Expectation values are real for Hermitian operators. A residual imaginary
// part above ImagTolerance is reported as ErrNonHermitian.
package hamiltonian
