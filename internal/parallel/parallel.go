// SPDX-License-Identifier: MIT

// Package parallel splits index ranges across goroutines.
//
// Work is divided into contiguous chunks, one goroutine per chunk, so each
// worker touches a disjoint block of rows and no locking is needed. The
// first error (or context cancellation) stops the remaining chunks.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers resolves a requested worker count: w <= 0 means GOMAXPROCS.
func Workers(w int) int {
	if w <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return w
}

// For runs fn over [0, n) split into at most Workers(workers) contiguous
// ranges [lo, hi). fn receives the group context and should check it
// between units of work.
//
// With a single range fn runs on the calling goroutine.
func For(ctx context.Context, n, workers int, fn func(ctx context.Context, lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	w := min(Workers(workers), n)
	if w == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(ctx, 0, n)
	}

	g, gctx := errgroup.WithContext(ctx)
	chunk := (n + w - 1) / w
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, lo, hi)
		})
	}

	return g.Wait()
}
