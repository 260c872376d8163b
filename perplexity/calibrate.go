// SPDX-License-Identifier: MIT

package perplexity

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/ptsne/internal/parallel"
	"github.com/katalvlaran/ptsne/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const ctxCalibrate = "perplexity.Calibrate"

// Entropy fills p with the normalized Gaussian row exp(−beta·dist)/Σ and
// returns its entropy in nats:
//
//	H = ln(Σ e) + beta · Σ(dist·e) / Σ e,   e = exp(−beta·dist)
//
// len(p) must equal len(dist); Entropy panics otherwise, like gonum/floats.
// If every weight underflows to zero the row and H are NaN.
func Entropy(dist []float64, beta float64, p []float64) float64 {
	if len(p) != len(dist) {
		panic("perplexity: Entropy slice length mismatch")
	}
	for k, d := range dist {
		p[k] = math.Exp(-beta * d)
	}
	sumP := floats.Sum(p)
	h := math.Log(sumP) + beta*floats.Dot(dist, p)/sumP
	floats.Scale(1/sumP, p)

	return h
}

// SearchRow runs the beta bisection for one point. dist holds the squared
// distances to the other points (self excluded) and logU = ln(perplexity).
// On return p holds the row for the final beta.
//
// A NaN entropy ends the search immediately and reports Converged=false.
func SearchRow(dist []float64, logU, tol float64, maxTries int, p []float64) RowResult {
	beta := initialBeta
	betaMin, betaMax := math.Inf(-1), math.Inf(1)

	h := Entropy(dist, beta, p)
	diff := h - logU
	tries := 0
	for ; math.Abs(diff) > tol && tries < maxTries; tries++ {
		if diff > 0 {
			// too flat: sharpen
			betaMin = beta
			if math.IsInf(betaMax, 1) {
				beta *= 2
			} else {
				beta = (beta + betaMax) / 2
			}
		} else {
			betaMax = beta
			if math.IsInf(betaMin, -1) {
				beta /= 2
			} else {
				beta = (beta + betaMin) / 2
			}
		}
		h = Entropy(dist, beta, p)
		diff = h - logU
	}

	return RowResult{
		Beta:      beta,
		Entropy:   h,
		Tries:     tries,
		Converged: math.Abs(diff) <= tol,
	}
}

// Calibrate computes the conditional probability matrix for the squared
// distance matrix D (n×n, n ≥ 2).
//
// Stages:
//  1. Parse options; validate D (non-nil, square, n ≥ 2).
//  2. For each row i (in parallel ranges): gather D[i][j≠i], SearchRow,
//     scatter the row back with P[i][i] = 0.
//  3. Summarize sigma = sqrt(1/beta) and convergence into Stats.
//
// Non-converged rows are kept as computed. They may hold NaN when all
// kernel weights underflow.
//
// Errors: ErrOptionViolation, ErrTooFewPoints, matrix.ErrNilMatrix,
// matrix.ErrNonSquare, or the context error.
func Calibrate(ctx context.Context, D *matrix.Dense, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, fmt.Errorf("%s: %w", ctxCalibrate, o.err)
	}
	if err := matrix.ValidateNotNil(D); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxCalibrate, err)
	}
	if err := matrix.ValidateSquare(D); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxCalibrate, err)
	}
	n := D.Rows()
	if n < 2 {
		return nil, fmt.Errorf("%s: n=%d: %w", ctxCalibrate, n, ErrTooFewPoints)
	}

	P, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxCalibrate, err)
	}
	res := &Result{
		P:         P,
		Beta:      make([]float64, n),
		Converged: make([]bool, n),
	}
	logU := math.Log(o.Perplexity)
	src, dst := D.RawData(), P.RawData()

	err = parallel.For(ctx, n, o.Workers, func(ctx context.Context, lo, hi int) error {
		dist := make([]float64, n-1) // scratch, self excluded
		row := make([]float64, n-1)
		for i := lo; i < hi; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			off := i * n
			copy(dist[:i], src[off:off+i])
			copy(dist[i:], src[off+i+1:off+n])

			r := SearchRow(dist, logU, o.Tolerance, o.MaxTries, row)

			copy(dst[off:off+i], row[:i])
			dst[off+i] = 0
			copy(dst[off+i+1:off+n], row[i:])
			res.Beta[i] = r.Beta
			res.Converged[i] = r.Converged
			if o.OnRow != nil {
				o.OnRow(i, r)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxCalibrate, err)
	}

	res.Stats = summarize(res.Beta, res.Converged)

	return res, nil
}

// summarize reduces per-point precisions to bandwidth statistics.
func summarize(beta []float64, converged []bool) Stats {
	sigma := make([]float64, len(beta))
	for i, b := range beta {
		sigma[i] = math.Sqrt(1 / b)
	}
	var s Stats
	s.MeanSigma = stat.Mean(sigma, nil)
	s.MinSigma = floats.Min(sigma)
	s.MaxSigma = floats.Max(sigma)
	for _, ok := range converged {
		if !ok {
			s.NonConverged++
		}
	}

	return s
}
