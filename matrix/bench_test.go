// SPDX-License-Identifier: MIT
// Package matrix_test provides benchmarks for the probability-pipeline
// kernels, using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/ptsne/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{128, 512, 1024}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkF float64
)

// benchDense returns an n×n Dense with U(0,1) entries for a fixed seed.
func benchDense(b *testing.B, n int, seed int64) *matrix.Dense {
	b.Helper()
	m, err := matrix.NewDense(n, n)
	if err != nil {
		b.Fatalf("NewDense(%d,%d): %v", n, n, err)
	}
	rng := rand.New(rand.NewSource(seed))
	for idx := range m.RawData() {
		m.RawData()[idx] = rng.Float64()
	}

	return m
}

func BenchmarkAddTranspose(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := benchDense(b, n, 1337)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := matrix.AddTranspose(A); err != nil {
					b.Fatal(err)
				}
			}
			sinkM = A
		})
	}
}

func BenchmarkNormalizeAndFloor(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := benchDense(b, n, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s, err := matrix.Sum(A)
				if err != nil {
					b.Fatal(err)
				}
				if err = matrix.ScaleInPlace(A, 1/s); err != nil {
					b.Fatal(err)
				}
				if err = matrix.Floor(A, 0x1p-52); err != nil {
					b.Fatal(err)
				}
				sinkF = s
			}
		})
	}
}

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d_by_2", n), func(b *testing.B) {
			W := benchDense(b, n, 11)
			Y, err := matrix.NewDense(n, 2)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(W, Y)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}
