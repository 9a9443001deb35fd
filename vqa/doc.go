// SPDX-License-Identifier: MIT

// Package vqa assembles the variational loop into three algorithms.
//
//   - Eigensolver: minimizes ⟨ψ(θ)|H|ψ(θ)⟩ over an ansatz circuit and compares
//     the best run with the exact ground energy E₀.
//   - QAOA: alternates exact cost and mixer evolutions for MaxCut in the
//     single-excitation encoding and reports the approximation ratio E/E₀.
//   - Classifier: trains a circuit on encoded features against the mean
//     binary cross-entropy of the class-0 probability.
//
// Every facade runs WithStarts independent attempts through a
// multistart.Session. Attempt i draws its initial parameters from a
// math/rand source seeded with WithSeed + i, so results are reproducible for
// a fixed configuration regardless of scheduling. The selection thresholds
// come from WithCriteria; the facade supplies the reference value it knows.
//
// Each solve produces a BenchmarkRecord, the flat summary written by
// EncodeRecords (MessagePack). Trained classifier Models are encoded with
// MarshalBinary and restored with UnmarshalModel.
//
// Options can be derived from a config.Config with EigensolverOptions,
// QAOAOptions and ClassifierOptions.
package vqa
