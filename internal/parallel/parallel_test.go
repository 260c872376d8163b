// SPDX-License-Identifier: MIT

package parallel_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/ptsne/internal/parallel"
	"github.com/stretchr/testify/require"
)

// TestFor_CoversEveryIndexOnce checks that ranges are disjoint and complete.
func TestFor_CoversEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 8, 100} {
		const n = 97
		hits := make([]int32, n)
		err := parallel.For(context.Background(), n, workers, func(_ context.Context, lo, hi int) error {
			for i := lo; i < hi; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
			return nil
		})
		require.NoError(t, err)
		for i, h := range hits {
			require.Equal(t, int32(1), h, "workers=%d index=%d", workers, i)
		}
	}
}

// TestFor_PropagatesError returns the first worker error.
func TestFor_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := parallel.For(context.Background(), 10, 4, func(_ context.Context, lo, _ int) error {
		if lo == 0 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

// TestFor_Cancelled refuses to start on a cancelled context.
func TestFor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	err := parallel.For(ctx, 10, 1, func(context.Context, int, int) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, calls)
}

func TestFor_EmptyRange(t *testing.T) {
	require.NoError(t, parallel.For(context.Background(), 0, 4, func(context.Context, int, int) error {
		t.Fatal("must not be called")
		return nil
	}))
}

func TestWorkers(t *testing.T) {
	require.Equal(t, 5, parallel.Workers(5))
	require.Positive(t, parallel.Workers(0))
}
