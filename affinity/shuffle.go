// SPDX-License-Identifier: MIT

package affinity

import "math/rand"

// defaultShuffleSeed is used when callers pass seed == 0.
const defaultShuffleSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed 0 maps to defaultShuffleSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultShuffleSeed
	}

	return rand.New(rand.NewSource(seed))
}

// ShuffleRows permutes the rows of data in place (Fisher–Yates) so that
// consecutive batches are random samples of the whole set. The same seed
// always yields the same permutation, so two slices of equal length
// shuffled with one seed stay aligned. Row slices are moved, not copied.
//
// Complexity: O(n) time, O(1) extra space.
func ShuffleRows[T Float](data [][]T, seed int64) {
	n := len(data)
	if n <= 1 {
		return
	}
	r := rngFromSeed(seed)
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		data[i], data[j] = data[j], data[i]
	}
}
