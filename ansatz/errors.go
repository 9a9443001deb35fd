// SPDX-License-Identifier: MIT
// Package ansatz: sentinel error set.

package ansatz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpec marks a malformed Spec (depth < 1, unknown kind or
	// entanglement). It is fatal: no circuit is built.
	ErrInvalidSpec = errors.New("ansatz: invalid spec")

	// ErrInvalidDimension indicates a Hilbert-space dimension below MinDimension.
	ErrInvalidDimension = errors.New("ansatz: dimension too small")

	// ErrParameterCount indicates a parameter vector of the wrong length.
	ErrParameterCount = errors.New("ansatz: wrong parameter count")

	// ErrInvalidParameters indicates NaN or ±Inf parameters.
	ErrInvalidParameters = errors.New("ansatz: non-finite parameters")

	// ErrInvalidPartners indicates a partner map of wrong length, an
	// out-of-range partner or a vertex paired with itself.
	ErrInvalidPartners = errors.New("ansatz: invalid partner map")

	// ErrInvalidFeatures indicates empty, ragged or non-finite feature data, or
	// more features than the dimension can encode.
	ErrInvalidFeatures = errors.New("ansatz: invalid features")
)

const (
	opNew       = "New"
	opApply     = "Apply"
	opValidate  = "Validate"
	opFit       = "FitNormalizer"
	opTransform = "Transform"
	opEncode    = "Encode"
)

// ansatzErrorf wraps err with an operation tag.
func ansatzErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
