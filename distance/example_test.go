// SPDX-License-Identifier: MIT

package distance_test

import (
	"fmt"

	"github.com/katalvlaran/ptsne/distance"
	"github.com/katalvlaran/ptsne/matrix"
)

// ExampleSquaredEuclidean computes the distance matrix of a 3-4-5 triangle.
func ExampleSquaredEuclidean() {
	X, _ := matrix.NewFromRows([][]float64{{0, 0}, {3, 0}, {0, 4}})
	D, _ := distance.SquaredEuclidean(X)
	fmt.Print(D)
	// Output:
	// [0, 9, 16]
	// [9, 0, 25]
	// [16, 25, 0]
}
