// SPDX-License-Identifier: MIT

// Package affinity builds the symmetric joint-probability matrices P that
// a parametric t-SNE optimizer matches, one per fixed-size batch.
//
// Pipeline per batch (Joint):
//
//	X (n×d)
//	  → D = squared Euclidean distances          (distance)
//	  → P_cond, calibrated to the perplexity     (perplexity, tol 1e-5)
//	  → NaN → 0
//	  → P = P_cond + P_condᵀ                     (no halving)
//	  → P = P / ΣP
//	  → P = max(P, ε)                            (ε = 2^-52 unless WithEpsilon)
//
// The result is exactly symmetric, has a zero diagonal before flooring,
// sums to 1 before flooring and holds no entry below ε afterwards.
//
// Batching (Build):
//
//	The input is cut into total/BatchSize consecutive batches; the
//	remainder is dropped. Batches never look at each other, so changing
//	the data of one batch leaves every other batch's P unchanged. The
//	builder does not shuffle; call ShuffleRows first when the input order
//	is not already random.
//
// Precision:
//
//	Computation runs in float64. A float32 Tensor is rounded on output
//	and floored with the float32 epsilon, which stays above the rounding
//	error of any value in [0,1].
//
// Concurrency:
//
//	Rows inside a batch run on WithWorkers goroutines; batches run on
//	WithBatchWorkers goroutines. OnBatch calls are serialized.
package affinity
