// SPDX-License-Identifier: MIT

// Package topology provides the static adjacency description that the
// variational engine consumes as input: an immutable, undirected, simple
// graph over vertices 0..n-1 together with its adjacency matrix, degree
// sequence and combinatorial Laplacian L = D − A.
//
// The package is deliberately small. It is not a general graph library; it
// only carries what the Hamiltonian and QAOA layers need:
//
//   - Constructors: Complete, Cycle, Star, Wheel, Metatron, FromEdges.
//   - Views: Edges, Neighbors, Degrees, Adjacency, Laplacian.
//
// Determinism:
//
//   - Edges are stored normalized (u<v) and sorted lexicographically,
//     independent of the order they were supplied in.
//   - Matrices are returned as fresh gonum *mat.SymDense values; callers may
//     mutate them freely.
//
// Errors are package sentinels (ErrTooFewVertices, ErrSelfLoop,
// ErrDuplicateEdge, ErrVertexOutOfRange) wrapped with the constructor name.
//
// Example:
//
//	g, _ := topology.Metatron() // K13: 13 vertices, 78 edges
//	L := g.Laplacian()          // 13I − J
package topology
