// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/ptsne/matrix"
)

// ExampleAddTranspose symmetrizes a conditional matrix, normalizes it to a
// joint distribution and floors it, which is the tail of the affinity pipeline.
func ExampleAddTranspose() {
	p, _ := matrix.NewFromRows([][]float64{
		{0, 0.75, 0.25},
		{0.5, 0, 0.5},
		{1, 0, 0},
	})

	_ = matrix.AddTranspose(p)
	total, _ := matrix.Sum(p)
	_ = matrix.ScaleInPlace(p, 1/total)
	_ = matrix.Floor(p, 1e-3)

	fmt.Print(p)
	// Output:
	// [0.001, 0.20833333333333331, 0.20833333333333331]
	// [0.20833333333333331, 0.001, 0.08333333333333333]
	// [0.20833333333333331, 0.08333333333333333, 0.001]
}
