// SPDX-License-Identifier: MIT
package gradient_test

import (
	"testing"

	"github.com/katalvlaran/lvqa/ansatz"
	"github.com/katalvlaran/lvqa/gradient"
)

// BenchmarkParameterShift_Metatron measures one full gradient of the 26-parameter VQE cost.
func BenchmarkParameterShift_Metatron(b *testing.B) {
	f := metatronCost(b, ansatz.Spec{Kind: ansatz.HardwareEfficient, Depth: 1, Entanglement: ansatz.Ring})
	p := make([]float64, f.NumParameters())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gradient.ParameterShift(f, p); err != nil {
			b.Fatal(err)
		}
	}
}
