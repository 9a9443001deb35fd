// SPDX-License-Identifier: MIT
// Package multistart: sentinel error set.

package multistart

import (
	"errors"
	"fmt"
)

var (
	// ErrNoValidRun marks a fallback Selection: every run was filtered out.
	ErrNoValidRun = errors.New("multistart: no valid run")

	// ErrAttemptPanicked marks a run whose attempt panicked.
	ErrAttemptPanicked = errors.New("multistart: attempt panicked")

	// ErrNilAttempt marks a run whose attempt function was nil.
	ErrNilAttempt = errors.New("multistart: nil attempt")

	// ErrInvalidCriteria indicates non-positive or NaN thresholds.
	ErrInvalidCriteria = errors.New("multistart: invalid criteria")
)

const (
	opSelect   = "Select"
	opAttempt  = "Attempt"
	opValidate = "Validate"
)

// multistartErrorf wraps err with an operation tag.
func multistartErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
