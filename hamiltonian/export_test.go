// SPDX-License-Identifier: MIT

package hamiltonian

// Test bridge: exposes the factorization counter to hamiltonian_test only.

// FactorizationCount returns how many times h ran its eigensolver.
func FactorizationCount(h *Hamiltonian) int { return h.factored }
