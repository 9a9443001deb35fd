// SPDX-License-Identifier: MIT
// Package lvqa is an exact state-vector playground for variational quantum
// algorithms on small graphs: ground-state search, MaxCut by QAOA and a
// binary classifier, all driven by classical optimizers over a simulated
// circuit.
//
// What is inside?
//
//	topology/    undirected graphs, standard families and the 13-vertex Metatron graph
//	statespace/  normalized complex state vectors and dense Hermitian operators
//	hamiltonian/ operators from graph Laplacians and matrices, cached spectra, evolution
//	ansatz/      parameterized rotation circuits and feature encoding
//	cost/        energy expectation and cross-entropy objectives
//	gradient/    parameter-shift and finite-difference estimators
//	optimizer/   gradient descent, Adam, L-BFGS and Nelder–Mead with a shared Run loop
//	multistart/  concurrent restarts, run filtering and best-run selection
//	metrics/     Prometheus collector for runs and selections
//	config/      defaults, YAML and LVQA_* environment layering
//	vqa/         Eigensolver, QAOA and Classifier facades plus benchmark records
//
// The states live in the single-excitation encoding: a graph of n vertices
// maps to an n-dimensional Hilbert space, so everything is exact and
// deterministic for a fixed seed.
//
// Quick example:
//
//	g, _ := topology.Metatron()
//	h, _ := hamiltonian.FromLaplacian(g)
//	es, _ := vqa.NewEigensolver(h)
//	rep, _ := es.Solve(context.Background())
//	fmt.Println(rep.GroundEnergy, rep.Energy)
//
//	go get github.com/katalvlaran/lvqa
package lvqa
