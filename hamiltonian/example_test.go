// SPDX-License-Identifier: MIT
// Package hamiltonian_test shows how to build operators from graphs.
package hamiltonian_test

import (
	"fmt"

	"github.com/katalvlaran/lvqa/hamiltonian"
	"github.com/katalvlaran/lvqa/topology"
)

// ExampleFromLaplacian builds H = −L for the Metatron graph and reads its spectrum.
func ExampleFromLaplacian() {
	g, err := topology.Metatron()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	h, err := hamiltonian.FromLaplacian(g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	info, err := h.Spectrum()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("E0=%.1f degeneracy=%d gap=%.1f\n", info.GroundEnergy, info.GroundDegeneracy, info.Gap)
	// Output: E0=-13.0 degeneracy=12 gap=13.0
}

// ExampleCutValue counts the edges crossing a bipartition of the 4-cycle.
func ExampleCutValue() {
	g, _ := topology.Cycle(4)
	fmt.Println(hamiltonian.CutValue(g, []bool{true, false, true, false}))
	fmt.Println(hamiltonian.CutValue(g, []bool{true, true, false, false}))
	// Output:
	// 4
	// 2
}
