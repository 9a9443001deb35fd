// SPDX-License-Identifier: MIT

// Package ansatz builds the parametrized, layered unitaries of the variational
// engine.
//
// An ansatz is described by a Spec {Kind, Depth, Entanglement}. The Spec alone
// fixes the parameter count, and New compiles it into a flat gate list before
// any evaluation happens:
//
//	ring: depth × 2N parameters
//	full: depth × (2N + N(N−1)/2) parameters
//
// Gate model:
//
//	Every trainable gate is U(θ) = exp(−iθP) with P a rank-1 orthogonal
//	projector. The generator P has eigenvalues {0, 1}, i.e. ±½ around a global
//	phase, so the two-term parameter-shift rule with shifts ±π/2 is exact.
//	Each layer holds
//	  - N mixing rotations, P = |v⟩⟨v|, v = (|i⟩ + i|pᵢ⟩)/√2, a real plane
//	    rotation between i and its partner pᵢ (up to phase),
//	  - N phase rotations, P = |i⟩⟨i|,
//	  - the entangling step: ring uses fixed couplings on the cyclic pairs
//	    (i, i+1 mod N); full uses one trainable coupling per pair i<j.
//
// Kinds only change the partner map and the gate order:
//
//	HardwareEfficient  pᵢ = i+1 mod N, mixing then phase
//	Structured         pᵢ = i+⌊N/2⌋ mod N, phase then mixing
//	ProblemSpecific    pᵢ from WithPartners (see PartnersFromOperator)
//
// Feature encoding for the classifier lives in encoding.go: a Normalizer fit
// on training data and Encode, which prepares the input state that the
// trainable circuit is applied to with ApplyTo.
//
// Circuits are immutable after New and safe for concurrent Apply calls.
package ansatz
