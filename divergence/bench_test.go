// SPDX-License-Identifier: MIT

package divergence_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/ptsne/divergence"
	"github.com/katalvlaran/ptsne/matrix"
)

// benchmarkEvaluate runs one loss/gradient evaluation on an n-point batch.
func benchmarkEvaluate(b *testing.B, n int) {
	rng := rand.New(rand.NewSource(13))
	P, err := matrix.NewDense(n, n)
	if err != nil {
		b.Fatalf("NewDense: %v", err)
	}
	p := P.RawData()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := rng.Float64() / float64(n*n)
			p[i*n+j], p[j*n+i] = v, v
		}
	}
	Y, err := divergence.RandomEmbedding(n, 2, 13, 1e-2)
	if err != nil {
		b.Fatalf("RandomEmbedding: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = divergence.Evaluate(P, Y); err != nil {
			b.Fatalf("Evaluate: %v", err)
		}
	}
}

func BenchmarkEvaluate_500(b *testing.B)  { benchmarkEvaluate(b, 500) }
func BenchmarkEvaluate_2000(b *testing.B) { benchmarkEvaluate(b, 2000) }
