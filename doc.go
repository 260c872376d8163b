// Package ptsne is the numerical core of parametric t-SNE: it turns
// batches of high-dimensional points into fixed target affinity matrices
// and scores candidate low-dimensional embeddings against them.
//
// 🚀 What is inside?
//
//	A small, dependency-light library built on gonum:
//		• Distances: dense squared-Euclidean matrices via one Gram product
//		• Perplexity: per-point Gaussian bandwidth search, row-parallel
//		• Affinities: symmetric, normalized, floored P per fixed-size batch
//		• Divergence: Student-t Q, KL loss and its closed-form gradient
//
// ✨ Why this shape?
//
//   - P is computed once per batch and never changes while a network
//     trains on it; the loss/gradient pair is the only thing an optimizer
//     calls in its loop.
//   - Every step returns sentinel errors; nothing panics on user input.
//   - Progress is observable through hooks (OnRow, OnBatch) and Stats.
//
// Packages:
//
//	matrix/     row-major Dense storage, validators, element-wise kernels
//	distance/   pairwise squared-Euclidean distances
//	perplexity/ beta bisection and conditional probability rows
//	affinity/   batching, joint probabilities, typed tensors
//	divergence/ similarities, loss, gradient, initial layouts
//
// Data flow:
//
//	X ──distance──▶ D ──perplexity──▶ P_cond ──affinity──▶ P   (once per batch)
//	Y ──divergence(P)──▶ loss, ∂C/∂Y                        (every step)
//
// See examples/two_blobs for an end-to-end run with plain gradient descent.
//
//	go get github.com/katalvlaran/ptsne
package ptsne
