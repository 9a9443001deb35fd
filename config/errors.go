// SPDX-License-Identifier: MIT
// Package config: sentinel error set.

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a field outside its documented range.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrInvalidEnv indicates an LVQA_* variable that could not be parsed.
	ErrInvalidEnv = errors.New("config: invalid environment override")

	// ErrDecode indicates malformed YAML or an unknown key.
	ErrDecode = errors.New("config: decode failed")
)

const (
	opParse    = "Parse"
	opLoad     = "Load"
	opEnv      = "Env"
	opValidate = "Validate"
)

// configErrorf wraps err with an operation tag.
func configErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// invalid reports field=value as ErrInvalidConfig.
func invalid(field string, value any) error {
	return configErrorf(opValidate, fmt.Errorf("%s=%v: %w", field, value, ErrInvalidConfig))
}
