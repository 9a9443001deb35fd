// SPDX-License-Identifier: MIT
// Package: lvqa/topology
//
// constructors.go: canonical graph families.
//
// Contract:
//   • Every constructor validates its size parameter first and returns
//     ErrTooFewVertices (wrapped with the method name) on violation.
//   • Pairs are emitted in lexicographic (i,j), i<j order.
//
// Determinism:
//   • No randomness; identical inputs give identical graphs.

package topology

const (
	methodComplete = "Complete"
	methodCycle    = "Cycle"
	methodStar     = "Star"
	methodWheel    = "Wheel"

	minCompleteNodes = 1
	minCycleNodes    = 3
	minStarNodes     = 2
	minWheelNodes    = 4

	// MetatronOrder is the number of nodes of the Metatron cube: one centre,
	// an inner hexagon and an outer hexagon.
	MetatronOrder = 13
)

// Complete returns K_n.
func Complete(n int) (*Graph, error) {
	if n < minCompleteNodes {
		return nil, topologyErrorf(methodComplete, ErrTooFewVertices, "n=%d < min=%d", n, minCompleteNodes)
	}
	edges := make([][2]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return FromEdges(n, edges)
}

// Cycle returns C_n: edges (i, i+1 mod n).
func Cycle(n int) (*Graph, error) {
	if n < minCycleNodes {
		return nil, topologyErrorf(methodCycle, ErrTooFewVertices, "n=%d < min=%d", n, minCycleNodes)
	}
	edges := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, [2]int{i, (i + 1) % n})
	}
	return FromEdges(n, edges)
}

// Star returns the star S_n with centre 0 and n-1 leaves.
func Star(n int) (*Graph, error) {
	if n < minStarNodes {
		return nil, topologyErrorf(methodStar, ErrTooFewVertices, "n=%d < min=%d", n, minStarNodes)
	}
	edges := make([][2]int, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, [2]int{0, i})
	}
	return FromEdges(n, edges)
}

// Wheel returns W_n: hub 0 joined to every vertex of the rim cycle 1..n-1.
func Wheel(n int) (*Graph, error) {
	if n < minWheelNodes {
		return nil, topologyErrorf(methodWheel, ErrTooFewVertices, "n=%d < min=%d", n, minWheelNodes)
	}
	rim := n - 1
	edges := make([][2]int, 0, 2*rim)
	for i := 1; i < n; i++ {
		edges = append(edges, [2]int{0, i})
		next := i%rim + 1
		edges = append(edges, [2]int{i, next})
	}
	return FromEdges(n, edges)
}

// Metatron returns the 13-node Metatron cube as used by the engine: node 0 is
// the centre, 1..6 the inner hexagon, 7..12 the outer hexagon, and every pair
// of nodes is joined by a line of the figure, so the graph is K13 with 78
// edges. Its Laplacian is 13I − J with spectrum {0, 13 (×12)}.
func Metatron() (*Graph, error) {
	return Complete(MetatronOrder)
}
