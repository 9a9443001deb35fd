// SPDX-License-Identifier: MIT
package vqa_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvqa/hamiltonian"
	"github.com/katalvlaran/lvqa/topology"
	"github.com/katalvlaran/lvqa/vqa"
)

// ExampleOptimalCut computes the exact maximum cut used as the QAOA reference.
func ExampleOptimalCut() {
	g, _ := topology.Cycle(5)
	cut, side, err := vqa.OptimalCut(g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(cut, hamiltonian.CutValue(g, side))
	// Output: 4 4
}

// ExampleEigensolver_Solve runs a small multi-start eigensolver on the 4-cycle.
func ExampleEigensolver_Solve() {
	g, _ := topology.Cycle(4)
	h, err := hamiltonian.FromLaplacian(g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	es, err := vqa.NewEigensolver(h, vqa.WithStarts(3), vqa.WithWorkers(1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	rep, err := es.Solve(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("E0=%.1f runs=%d\n", rep.GroundEnergy, len(rep.Runs))
	// Output: E0=-4.0 runs=3
}
