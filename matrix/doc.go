// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major storage shared by the ptsne
// kernels: distance matrices, conditional and joint probability matrices,
// Student-t similarities and embeddings.
//
// The package provides:
//
//   - Dense: a flat row-major float64 buffer with safe At/Set accessors,
//     zero-copy row views for hot loops and a zero-copy bridge to gonum
//     (Gonum) so BLAS-backed products can run on the same memory.
//   - Validators: a single source of truth for nil/shape/symmetry checks.
//   - Element-wise in-place kernels used by the probability pipeline:
//     ReplaceNaN, Floor, ScaleInPlace, AddTranspose, Sum, AllClose.
//   - Mul and Transpose facades backed by gonum/mat.
//
// Error policy:
//
//	Every exported function returns package sentinels (errors.go), wrapped
//	with an operation tag via %w. Callers match with errors.Is. User input
//	never causes a panic.
//
// Determinism:
//
//	All kernels walk memory in fixed order; identical inputs produce
//	bit-identical outputs.
package matrix
