// SPDX-License-Identifier: MIT

package divergence

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ptsne/matrix"
)

// Loss returns the regularized KL divergence Σ P·ln((P+ε)/(Q+ε)).
// It is 0 when P and Q are identical.
//
// Errors: ErrOptionViolation, matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
func Loss(P, Q *matrix.Dense, opts ...Option) (float64, error) {
	o, err := parse(opts)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ctxLoss, err)
	}
	if err = matrix.ValidateSameShape(P, Q); err != nil {
		return 0, fmt.Errorf("%s: %w", ctxLoss, err)
	}

	return kl(P.RawData(), Q.RawData(), o.Epsilon), nil
}

func kl(p, q []float64, eps float64) float64 {
	var c float64
	for idx, pv := range p {
		c += pv * math.Log((pv+eps)/(q[idx]+eps))
	}

	return c
}

// Evaluate computes the loss and its gradient with respect to every
// embedding coordinate for one optimization step.
//
// Stages:
//  1. Validate: P square with P.Rows() == Y.Rows().
//  2. Q, kernel K and ν from Similarities(Y).
//  3. Loss = Σ P·ln((P+ε)/(Q+ε)).
//  4. W = (P − Q)∘K; G = c·(diag(rowsum W)·Y − W·Y), c = (2ν+2)/ν.
//
// P must be symmetric, as produced by the affinity builder; the gradient
// formula relies on it. Neither P nor Y is modified.
//
// Errors: ErrOptionViolation, matrix.ErrNilMatrix, ErrBatchMismatch,
// ErrTooFewPoints.
func Evaluate(P, Y *matrix.Dense, opts ...Option) (*Result, error) {
	o, err := parse(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxEvaluate, err)
	}
	if err = matrix.ValidateNotNil(P); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxEvaluate, err)
	}
	if err = matrix.ValidateNotNil(Y); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxEvaluate, err)
	}
	n := Y.Rows()
	if P.Rows() != P.Cols() || P.Rows() != n {
		return nil, fmt.Errorf("%s: P is %dx%d, Y has %d rows: %w",
			ctxEvaluate, P.Rows(), P.Cols(), n, ErrBatchMismatch)
	}

	sim, err := similarities(Y, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxEvaluate, err)
	}
	p, q, k := P.RawData(), sim.Q.RawData(), sim.Kernel.RawData()
	loss := kl(p, q, o.Epsilon)

	// W = (P − Q)∘K with its row sums.
	W, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxEvaluate, err)
	}
	w := W.RawData()
	rowSum := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			idx := i*n + j
			w[idx] = (p[idx] - q[idx]) * k[idx]
			rowSum[i] += w[idx]
		}
	}

	WY, err := matrix.Mul(W, Y)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxEvaluate, err)
	}

	c := (2*sim.Nu + 2) / sim.Nu
	d := Y.Cols()
	grad := WY.RawData()
	y := Y.RawData()
	for i := 0; i < n; i++ {
		for a := 0; a < d; a++ {
			idx := i*d + a
			grad[idx] = c * (rowSum[i]*y[idx] - grad[idx])
		}
	}

	return &Result{Loss: loss, Grad: WY, Q: sim.Q}, nil
}
