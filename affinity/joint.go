// SPDX-License-Identifier: MIT

package affinity

import (
	"context"
	"fmt"

	"github.com/katalvlaran/ptsne/distance"
	"github.com/katalvlaran/ptsne/matrix"
	"github.com/katalvlaran/ptsne/perplexity"
)

const (
	ctxPartition = "affinity.Partition"
	ctxJoint     = "affinity.Joint"
	ctxBuild     = "affinity.Build"
)

// Partition cuts total rows into total/batchSize consecutive spans of
// exactly batchSize rows. batchSize is clamped to total first; trailing
// rows that do not fill a batch are dropped.
//
// Errors: ErrEmptyBatch (total ≤ 0), ErrOptionViolation (batchSize ≤ 0).
func Partition(total, batchSize int) ([]Span, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%s: %w", ctxPartition, ErrEmptyBatch)
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("%s: %w", ctxPartition, optionErrorf("batch size must be > 0 (%d)", batchSize))
	}
	batchSize = min(batchSize, total)

	spans := make([]Span, total/batchSize)
	for b := range spans {
		spans[b] = Span{Lo: b * batchSize, Hi: (b + 1) * batchSize}
	}

	return spans, nil
}

// Joint computes the symmetric joint-probability matrix of one batch X
// (n×d, n ≥ 2). The floor is WithEpsilon or DefaultEpsilon.
//
// Rows the calibrator leaves as NaN (all kernel weights underflowed) are
// zeroed before symmetrization. If nothing survives, every entry is ε.
//
// Errors: ErrOptionViolation, matrix.ErrNilMatrix, and calibrator errors
// such as perplexity.ErrTooFewPoints or the context error.
func Joint(ctx context.Context, X *matrix.Dense, opts ...Option) (*matrix.Dense, *perplexity.Stats, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ctxJoint, o.err)
	}
	eps := o.Epsilon
	if eps == 0 {
		eps = DefaultEpsilon
	}

	return joint(ctx, X, o, eps)
}

// joint runs the batch pipeline with parsed options.
func joint(ctx context.Context, X *matrix.Dense, o Options, eps float64) (*matrix.Dense, *perplexity.Stats, error) {
	D, err := distance.SquaredEuclidean(X)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ctxJoint, err)
	}
	res, err := perplexity.Calibrate(ctx, D, o.calibratorOptions()...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ctxJoint, err)
	}

	P := res.P
	if err = matrix.ReplaceNaN(P, 0); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ctxJoint, err)
	}
	if err = matrix.AddTranspose(P); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ctxJoint, err)
	}
	total, err := matrix.Sum(P)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ctxJoint, err)
	}
	if total > 0 {
		if err = matrix.ScaleInPlace(P, 1/total); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ctxJoint, err)
		}
	}
	if err = matrix.Floor(P, eps); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ctxJoint, err)
	}

	return P, &res.Stats, nil
}
