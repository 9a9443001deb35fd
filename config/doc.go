// SPDX-License-Identifier: MIT

// Package config loads the tunable settings of the variational algorithms.
//
// A Config is built in three layers, each overriding the previous one:
//
//  1. Default(): the values every package uses when left unconfigured;
//  2. a YAML document (gopkg.in/yaml.v3) with the sections optimizer,
//     ansatz, selection, multistart, classifier and qaoa; unknown keys are
//     rejected;
//  3. LVQA_* environment variables, e.g. LVQA_OPTIMIZER_KIND=adam or
//     LVQA_MULTISTART_STARTS=8.
//
// Validate reports the first invalid field. The section helpers
// (MethodOptions, RunOptions, Criteria) translate a validated Config into the
// option values of the optimizer and multistart packages; they panic on
// values Validate would have rejected.
package config
