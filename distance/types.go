// SPDX-License-Identifier: MIT

package distance

import "errors"

// ErrEmptyBatch is returned when a Distancer reports no points.
var ErrEmptyBatch = errors.New("distance: batch must contain at least one point")

// Distancer describes a collection of points from which a distance can be computed.
type Distancer interface {
	Len() int                  // number of points in the collection
	Distance(i, j int) float64 // distance between items i and j
}

// VectorDistancer is a Distancer over float64 vectors using squared
// Euclidean distance, matching SquaredEuclidean.
type VectorDistancer [][]float64

// Len returns the number of vectors.
func (vd VectorDistancer) Len() int { return len(vd) }

// Distance returns ||vd[i] − vd[j]||².
func (vd VectorDistancer) Distance(i, j int) float64 {
	vi, vj := vd[i], vd[j]
	var dist, diff float64
	for k := range vi {
		diff = vi[k] - vj[k]
		dist += diff * diff
	}

	return dist
}
