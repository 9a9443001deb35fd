// SPDX-License-Identifier: MIT
// Package: lvqa/topology
//
// errors.go: sentinel errors for the topology package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Constructors attach context with topologyErrorf(method, ...) and %w.

package topology

import (
	"errors"
	"fmt"
)

// ErrTooFewVertices indicates that a size parameter is below the minimum the
// requested constructor supports (e.g., Cycle with n<3).
var ErrTooFewVertices = errors.New("topology: parameter too small")

// ErrVertexOutOfRange indicates an edge endpoint outside [0, n).
var ErrVertexOutOfRange = errors.New("topology: vertex out of range")

// ErrSelfLoop indicates an edge (u,u); the graphs here are simple.
var ErrSelfLoop = errors.New("topology: self-loop not allowed")

// ErrDuplicateEdge indicates the same unordered pair was supplied twice.
var ErrDuplicateEdge = errors.New("topology: duplicate edge")

// topologyErrorf formats "<method>: <message>: <sentinel>" keeping the
// sentinel reachable through errors.Is.
func topologyErrorf(method string, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}
