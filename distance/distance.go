// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"

	"github.com/katalvlaran/ptsne/matrix"
	"gonum.org/v1/gonum/mat"
)

const (
	opSquaredEuclidean = "SquaredEuclidean"
	opFromDistancer    = "FromDistancer"
)

// distanceErrorf tags err with the operation name, keeping it matchable via errors.Is.
func distanceErrorf(op string, err error) error {
	return fmt.Errorf("distance.%s: %w", op, err)
}

// SquaredEuclidean returns the n × n matrix of squared Euclidean distances
// between the rows of X.
//
// Guarantees:
//   - D[i][i] == 0 exactly.
//   - D[i][j] == D[j][i] exactly (each pair is computed once).
//   - D[i][j] >= 0 (negative round-off clamped).
//
// Errors: matrix.ErrNilMatrix when X is nil.
func SquaredEuclidean(X *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, distanceErrorf(opSquaredEuclidean, err)
	}
	n := X.Rows()

	// Gram = X·Xᵀ as one symmetric rank-k update.
	var gram mat.SymDense
	gram.SymOuterK(1, X.Gonum())

	D, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, distanceErrorf(opSquaredEuclidean, err)
	}
	out := D.RawData()

	sq := make([]float64, n)
	for i := 0; i < n; i++ {
		sq[i] = gram.At(i, i)
	}

	var d float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d = sq[i] + sq[j] - 2*gram.At(i, j)
			if d < 0 {
				d = 0
			}
			out[i*n+j] = d
			out[j*n+i] = d
		}
	}

	return D, nil
}

// FromDistancer materializes the full distance matrix of d.
// Only the upper triangle is queried; the lower one mirrors it and the
// diagonal is 0 regardless of what d reports for Distance(i, i).
//
// Errors: ErrEmptyBatch when d is nil or d.Len() == 0.
func FromDistancer(d Distancer) (*matrix.Dense, error) {
	if d == nil || d.Len() == 0 {
		return nil, distanceErrorf(opFromDistancer, ErrEmptyBatch)
	}
	n := d.Len()
	D, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, distanceErrorf(opFromDistancer, err)
	}
	out := D.RawData()

	var v float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v = d.Distance(i, j)
			out[i*n+j] = v
			out[j*n+i] = v
		}
	}

	return D, nil
}
