// SPDX-License-Identifier: MIT
// Package optimizer: method identifiers.

package optimizer

import (
	"fmt"
	"strings"
)

// Kind identifies an optimization strategy.
type Kind int

const (
	Adam Kind = iota + 1
	LBFGS
	NelderMead
	GradientDescent
)

var kindNames = map[Kind]string{
	Adam:            "adam",
	LBFGS:           "lbfgs",
	NelderMead:      "nelder_mead",
	GradientDescent: "gradient_descent",
}

// String returns the configuration name of k.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the names produced by String, case-insensitively, with
// '-' or ' ' in place of '_'.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	switch norm {
	case "l_bfgs", "bfgs":
		return LBFGS, nil
	case "nm", "simplex":
		return NelderMead, nil
	case "gd", "sgd":
		return GradientDescent, nil
	}
	for k, name := range kindNames {
		if name == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%d: %w", int(k), ErrUnknownKind)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
