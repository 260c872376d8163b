// SPDX-License-Identifier: MIT

package divergence

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ptsne/distance"
	"github.com/katalvlaran/ptsne/matrix"
)

const (
	ctxSimilarities = "divergence.Similarities"
	ctxLoss         = "divergence.Loss"
	ctxEvaluate     = "divergence.Evaluate"
)

// Similarities computes the Student-t similarity matrix Q of the embedding
// Y (n×d_out, n ≥ 2) together with the kernel and distances the gradient
// reuses.
//
// Errors: ErrOptionViolation, matrix.ErrNilMatrix, ErrTooFewPoints.
func Similarities(Y *matrix.Dense, opts ...Option) (*Similarity, error) {
	o, err := parse(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxSimilarities, err)
	}

	return similarities(Y, o)
}

func similarities(Y *matrix.Dense, o Options) (*Similarity, error) {
	if err := matrix.ValidateNotNil(Y); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxSimilarities, err)
	}
	n := Y.Rows()
	if n < 2 {
		return nil, fmt.Errorf("%s: n=%d: %w", ctxSimilarities, n, ErrTooFewPoints)
	}
	nu := o.nu(Y.Cols())

	D, err := distance.SquaredEuclidean(Y)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxSimilarities, err)
	}
	K, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxSimilarities, err)
	}
	Q, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxSimilarities, err)
	}

	dist, kern, q := D.RawData(), K.RawData(), Q.RawData()
	power := (nu + 1) / 2
	var sum, k, w float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			k = 1 / (1 + dist[i*n+j]/nu)
			w = k
			if power != 1 {
				w = math.Pow(k, power)
			}
			kern[i*n+j], kern[j*n+i] = k, k
			q[i*n+j], q[j*n+i] = w, w
			sum += 2 * w
		}
	}
	if err = matrix.ScaleInPlace(Q, 1/sum); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxSimilarities, err)
	}
	if err = matrix.Floor(Q, o.Epsilon); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxSimilarities, err)
	}

	return &Similarity{Q: Q, Kernel: K, Dist: D, Nu: nu}, nil
}
