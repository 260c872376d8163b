// SPDX-License-Identifier: MIT

// Package distance computes dense pairwise squared-Euclidean distance
// matrices for a batch of vectors.
//
// What:
//
//	D[i][j] = ||x_i − x_j||² for a batch X (n × d), returned as an n × n
//	*matrix.Dense that is symmetric, non-negative and zero on the diagonal.
//
// How:
//
//	D[i][j] = s[i] + s[j] − 2·(x_i · x_j) where s is the diagonal of the
//	Gram matrix X·Xᵀ. The Gram matrix is a single symmetric rank-k update
//	(gonum mat.SymDense.SymOuterK, BLAS dsyrk) instead of an explicit
//	O(n²·d) loop in Go. Round-off can make tiny distances negative; those
//	are clamped to 0, and the diagonal is forced to exactly 0.
//
// Custom metrics:
//
//	FromDistancer fills D from any Distancer (Len/Distance); VectorDistancer
//	is the plain squared-Euclidean reference.
//
// Complexity:
//
//	Time O(n²·d) (BLAS), Memory O(n²).
package distance
