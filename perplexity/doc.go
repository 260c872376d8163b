// SPDX-License-Identifier: MIT

// Package perplexity calibrates per-point Gaussian kernels so that each
// point's conditional neighbor distribution has a fixed perplexity.
//
// 🚀 What it does
//
//	For every point i and its squared distances D[i] to the other points,
//	find a precision beta_i > 0 such that the entropy (natural log) of
//
//	    P_i = exp(−beta_i·D[i]) / Σ exp(−beta_i·D[i])
//
//	equals ln(perplexity) within a tolerance. Row i of the output holds
//	P_i scattered over the columns ≠ i; column i stays 0.
//
// ✨ Search
//
//	Doubling/halving bisection starting at beta=1 with an unbounded
//	bracket: while H is too high the lower bound moves up and beta doubles
//	(or averages with the upper bound once one exists); symmetrically when
//	H is too low. The search stops at |H − ln(u)| ≤ tol or after MaxTries
//	adjustments. Running out of tries is NOT an error: the last row is kept
//	and the point is flagged in Result.Converged / Stats.NonConverged.
//
// ⚙️ Usage
//
//	res, err := perplexity.Calibrate(ctx, D,
//	    perplexity.WithPerplexity(30),
//	    perplexity.WithTolerance(1e-5),
//	)
//
// Concurrency
//
//	Rows are independent. Calibrate splits them into contiguous ranges
//	across WithWorkers goroutines; each range writes only its own rows.
//
// Complexity
//
//	Time O(n² · MaxTries), Memory O(n²) for the output.
package perplexity
