// SPDX-License-Identifier: MIT
// Package ansatz: closed tagged variant describing a circuit family.

package ansatz

import (
	"fmt"
	"strings"
)

// Kind selects the rotation pattern of an ansatz.
type Kind int

const (
	// HardwareEfficient pairs each dimension with its successor.
	HardwareEfficient Kind = iota + 1
	// Structured pairs each dimension with its antipode and applies phases first.
	Structured
	// ProblemSpecific pairs each dimension with a partner derived from the problem.
	ProblemSpecific
)

var kindNames = map[Kind]string{
	HardwareEfficient: "hardware_efficient",
	Structured:        "structured",
	ProblemSpecific:   "problem_specific",
}

// String returns the canonical snake_case name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts the canonical names plus "-" separated variants.
func ParseKind(s string) (Kind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for k, name := range kindNames {
		if name == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("kind %q: %w", s, ErrInvalidSpec)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("kind %d: %w", int(k), ErrInvalidSpec)
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

// Entanglement selects the connectivity of the entangling step.
type Entanglement int

const (
	// Ring couples the cyclic nearest-neighbour pairs (i, i+1 mod N) with
	// fixed, non-trainable gates.
	Ring Entanglement = iota + 1
	// Full couples every pair i<j with one trainable gate each.
	Full
)

var entanglementNames = map[Entanglement]string{
	Ring: "ring",
	Full: "full",
}

// String returns "ring" or "full".
func (e Entanglement) String() string {
	if s, ok := entanglementNames[e]; ok {
		return s
	}
	return fmt.Sprintf("entanglement(%d)", int(e))
}

// ParseEntanglement accepts "ring" or "full" (case-insensitive).
func ParseEntanglement(s string) (Entanglement, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for e, name := range entanglementNames {
		if name == norm {
			return e, nil
		}
	}
	return 0, fmt.Errorf("entanglement %q: %w", s, ErrInvalidSpec)
}

// MarshalText implements encoding.TextMarshaler.
func (e Entanglement) MarshalText() ([]byte, error) {
	if _, ok := entanglementNames[e]; !ok {
		return nil, fmt.Errorf("entanglement %d: %w", int(e), ErrInvalidSpec)
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Entanglement) UnmarshalText(b []byte) error {
	v, err := ParseEntanglement(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Spec fully determines an ansatz family and its parameter count.
type Spec struct {
	Kind         Kind         `yaml:"kind" json:"kind" msgpack:"kind"`
	Depth        int          `yaml:"depth" json:"depth" msgpack:"depth"`
	Entanglement Entanglement `yaml:"entanglement" json:"entanglement" msgpack:"entanglement"`
}

// Validate rejects depth < 1 and unknown kind or entanglement.
func (s Spec) Validate() error {
	if _, ok := kindNames[s.Kind]; !ok {
		return ansatzErrorf(opValidate, fmt.Errorf("kind %d: %w", int(s.Kind), ErrInvalidSpec))
	}
	if _, ok := entanglementNames[s.Entanglement]; !ok {
		return ansatzErrorf(opValidate, fmt.Errorf("entanglement %d: %w", int(s.Entanglement), ErrInvalidSpec))
	}
	if s.Depth < 1 {
		return ansatzErrorf(opValidate, fmt.Errorf("depth %d < 1: %w", s.Depth, ErrInvalidSpec))
	}
	return nil
}

// NumParameters returns the parameter count for dimension n:
// ring → depth·2n, full → depth·(2n + n(n−1)/2). An invalid spec yields 0.
func (s Spec) NumParameters(n int) int {
	if s.Validate() != nil || n < 1 {
		return 0
	}
	perLayer := 2 * n
	if s.Entanglement == Full {
		perLayer += n * (n - 1) / 2
	}
	return s.Depth * perLayer
}

// String renders "kind/entanglement/dDEPTH", e.g. "hardware_efficient/ring/d1".
func (s Spec) String() string {
	return fmt.Sprintf("%s/%s/d%d", s.Kind, s.Entanglement, s.Depth)
}
