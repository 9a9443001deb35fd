// SPDX-License-Identifier: MIT
// Package optimizer: sentinel error set.

package optimizer

import (
	"errors"
	"fmt"
)

var (
	// ErrNilFunction indicates a method built without an objective.
	ErrNilFunction = errors.New("optimizer: nil function")

	// ErrNilMethod indicates Run was called without a method.
	ErrNilMethod = errors.New("optimizer: nil method")

	// ErrParameterCount indicates a start point of the wrong length.
	ErrParameterCount = errors.New("optimizer: wrong parameter count")

	// ErrDiverged indicates the objective became NaN or ±Inf during a run.
	ErrDiverged = errors.New("optimizer: cost diverged")

	// ErrUnknownKind indicates an unrecognized optimizer name or Kind value.
	ErrUnknownKind = errors.New("optimizer: unknown kind")
)

const (
	opNew  = "New"
	opRun  = "Run"
	opStep = "Step"
)

// optimizerErrorf wraps err with an operation tag.
func optimizerErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
