// SPDX-License-Identifier: MIT
// Package: lvqa/topology
//
// graph.go: immutable simple graph and its matrix views.
//
// Contract:
//   • Vertices are the integers 0..n-1.
//   • Edges are unordered pairs stored as (U,V) with U<V, sorted (U,V) asc.
//   • No self-loops, no parallel edges.
//
// Complexity:
//   • FromEdges: O(m log m) for normalization and sort.
//   • Adjacency/Laplacian: O(n² + m) time and space.

package topology

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

const (
	methodFromEdges = "FromEdges"
	minVertices     = 1
)

// Edge is an undirected pair of vertex indices with U<V.
type Edge struct {
	U, V int
}

// Graph is an immutable undirected simple graph.
type Graph struct {
	n     int
	edges []Edge
}

// FromEdges builds a Graph with n vertices from an edge list.
// Endpoint order inside each pair is irrelevant; the result is normalized.
//
// Errors:
//   - ErrTooFewVertices   if n < 1.
//   - ErrVertexOutOfRange if an endpoint is outside [0,n).
//   - ErrSelfLoop         for (u,u).
//   - ErrDuplicateEdge    if an unordered pair repeats.
func FromEdges(n int, edges [][2]int) (*Graph, error) {
	if n < minVertices {
		return nil, topologyErrorf(methodFromEdges, ErrTooFewVertices, "n=%d < min=%d", n, minVertices)
	}

	seen := make(map[Edge]struct{}, len(edges))
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		u, v := e[0], e[1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, topologyErrorf(methodFromEdges, ErrVertexOutOfRange, "edge (%d,%d) with n=%d", u, v, n)
		}
		if u == v {
			return nil, topologyErrorf(methodFromEdges, ErrSelfLoop, "edge (%d,%d)", u, v)
		}
		if u > v {
			u, v = v, u
		}
		key := Edge{U: u, V: v}
		if _, dup := seen[key]; dup {
			return nil, topologyErrorf(methodFromEdges, ErrDuplicateEdge, "edge (%d,%d)", u, v)
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].U != out[j].U {
			return out[i].U < out[j].U
		}
		return out[i].V < out[j].V
	})

	return &Graph{n: n, edges: out}, nil
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.n }

// Size returns the number of edges.
func (g *Graph) Size() int { return len(g.edges) }

// Edges returns a copy of the normalized, sorted edge list.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// HasEdge reports whether {u,v} is an edge.
func (g *Graph) HasEdge(u, v int) bool {
	if u > v {
		u, v = v, u
	}
	i := sort.Search(len(g.edges), func(k int) bool {
		e := g.edges[k]
		return e.U > u || (e.U == u && e.V >= v)
	})
	return i < len(g.edges) && g.edges[i] == Edge{U: u, V: v}
}

// Neighbors returns the neighbours of vertex u in ascending order.
// An out-of-range u yields nil.
func (g *Graph) Neighbors(u int) []int {
	if u < 0 || u >= g.n {
		return nil
	}
	var out []int
	for _, e := range g.edges {
		switch u {
		case e.U:
			out = append(out, e.V)
		case e.V:
			out = append(out, e.U)
		}
	}
	sort.Ints(out)
	return out
}

// Degrees returns the degree sequence indexed by vertex.
func (g *Graph) Degrees() []int {
	deg := make([]int, g.n)
	for _, e := range g.edges {
		deg[e.U]++
		deg[e.V]++
	}
	return deg
}

// Adjacency returns the 0/1 adjacency matrix A.
func (g *Graph) Adjacency() *mat.SymDense {
	a := mat.NewSymDense(g.n, nil)
	for _, e := range g.edges {
		a.SetSym(e.U, e.V, 1)
	}
	return a
}

// Laplacian returns the combinatorial Laplacian L = D − A.
// L is symmetric positive semidefinite with L·1 = 0.
func (g *Graph) Laplacian() *mat.SymDense {
	l := mat.NewSymDense(g.n, nil)
	deg := g.Degrees()
	for i, d := range deg {
		l.SetSym(i, i, float64(d))
	}
	for _, e := range g.edges {
		l.SetSym(e.U, e.V, -1)
	}
	return l
}
