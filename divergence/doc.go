// SPDX-License-Identifier: MIT

// Package divergence evaluates the t-SNE objective for a candidate
// embedding Y against a fixed affinity matrix P, with a closed-form
// gradient so that no automatic differentiation is needed.
//
// Similarities (Student-t, ν degrees of freedom):
//
//	d_ij = ||y_i − y_j||²
//	w_ij = (1 + d_ij/ν)^(−(ν+1)/2),   w_ii = 0
//	Q    = max(w / Σw, ε)
//
// Loss (Kullback–Leibler, natural log):
//
//	C = Σ_ij P_ij · ln((P_ij + ε) / (Q_ij + ε))
//
// Gradient:
//
//	∂C/∂y_i = ((2ν+2)/ν) · Σ_j (P_ij − Q_ij) · (1 + d_ij/ν)^(−1) · (y_i − y_j)
//
// which is the familiar 4·Σ_j (P_ij − Q_ij)(y_i − y_j)(1 + d_ij)^(−1) for
// ν = 1. It is evaluated as one matrix product: with W = (P − Q)∘K,
//
//	G = c · (diag(rowsum W) − W) · Y
//
// ν defaults to max(d_out − 1, 1), so the usual 2-D embedding uses ν = 1.
//
// Evaluate never mutates P or Y. The caller owns the optimizer loop.
package divergence
