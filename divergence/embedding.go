// SPDX-License-Identifier: MIT

package divergence

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/ptsne/matrix"
)

// defaultEmbeddingSeed is used when callers pass seed == 0.
const defaultEmbeddingSeed int64 = 1

// RandomEmbedding returns an n×dOut layout with independent N(0, scale²)
// coordinates, the usual starting point of a t-SNE optimizer. The same
// seed always yields the same layout; seed 0 selects a fixed default.
//
// Errors: matrix.ErrInvalidDimensions, ErrOptionViolation (scale not finite and > 0).
func RandomEmbedding(n, dOut int, seed int64, scale float64) (*matrix.Dense, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("divergence.RandomEmbedding: %w: scale must be finite and > 0 (%g)",
			ErrOptionViolation, scale)
	}
	Y, err := matrix.NewDense(n, dOut)
	if err != nil {
		return nil, fmt.Errorf("divergence.RandomEmbedding: %w", err)
	}
	if seed == 0 {
		seed = defaultEmbeddingSeed
	}
	rng := rand.New(rand.NewSource(seed))
	for idx := range Y.RawData() {
		Y.RawData()[idx] = rng.NormFloat64() * scale
	}

	return Y, nil
}
