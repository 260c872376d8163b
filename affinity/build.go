// SPDX-License-Identifier: MIT

package affinity

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/ptsne/internal/parallel"
	"github.com/katalvlaran/ptsne/matrix"
	"golang.org/x/sync/errgroup"
)

// Tensor is the batch_count × batch_size × batch_size stack of joint
// probability matrices, stored contiguously in the input's element type.
// It is immutable once built.
type Tensor[T Float] struct {
	batches int
	size    int
	eps     float64
	data    []T // batch-major, then row-major
}

// Batches returns the number of batches.
func (t *Tensor[T]) Batches() int { return t.batches }

// Size returns the number of points per batch.
func (t *Tensor[T]) Size() int { return t.size }

// Epsilon returns the floor applied to every entry, as stored in T.
func (t *Tensor[T]) Epsilon() float64 { return t.eps }

// At returns P_b[i][j].
// Errors: matrix.ErrOutOfRange.
func (t *Tensor[T]) At(b, i, j int) (T, error) {
	if b < 0 || b >= t.batches || i < 0 || i >= t.size || j < 0 || j >= t.size {
		return 0, fmt.Errorf("Tensor.At(%d,%d,%d): %w", b, i, j, matrix.ErrOutOfRange)
	}

	return t.data[(b*t.size+i)*t.size+j], nil
}

// Batch returns a row-major copy of P_b.
// Errors: matrix.ErrOutOfRange.
func (t *Tensor[T]) Batch(b int) ([]T, error) {
	if b < 0 || b >= t.batches {
		return nil, fmt.Errorf("Tensor.Batch(%d): %w", b, matrix.ErrOutOfRange)
	}
	stride := t.size * t.size
	out := make([]T, stride)
	copy(out, t.data[b*stride:(b+1)*stride])

	return out, nil
}

// Matrix returns P_b widened to a float64 Dense, ready for the divergence engine.
// Errors: matrix.ErrOutOfRange.
func (t *Tensor[T]) Matrix(b int) (*matrix.Dense, error) {
	if b < 0 || b >= t.batches {
		return nil, fmt.Errorf("Tensor.Matrix(%d): %w", b, matrix.ErrOutOfRange)
	}
	m, err := matrix.NewDense(t.size, t.size)
	if err != nil {
		return nil, fmt.Errorf("Tensor.Matrix(%d): %w", b, err)
	}
	stride := t.size * t.size
	dst := m.RawData()
	for k, v := range t.data[b*stride : (b+1)*stride] {
		dst[k] = float64(v)
	}

	return m, nil
}

// Build computes one joint-probability matrix per batch of data.
//
// Stages:
//  1. Parse options; validate data (non-empty, rectangular).
//  2. Partition len(data) into fixed-size batches.
//  3. Run Joint on each batch (errgroup, at most BatchWorkers at once);
//     each batch writes only its own slab of the tensor.
//  4. Report each batch's calibration Stats via OnBatch.
//
// The first failing batch cancels the rest and its error is returned with
// the batch index; no partial tensor is returned.
func Build[T Float](ctx context.Context, data [][]T, opts ...Option) (*Tensor[T], error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, fmt.Errorf("%s: %w", ctxBuild, o.err)
	}
	if err := validateRows(data); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxBuild, err)
	}
	spans, err := Partition(len(data), o.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxBuild, err)
	}

	eps := o.Epsilon
	if eps == 0 {
		eps = DefaultEpsilon
	}
	if T(eps) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxBuild,
			optionErrorf("epsilon %g underflows the tensor element type", eps))
	}
	size := spans[0].Len()
	stride := size * size
	t := &Tensor[T]{
		batches: len(spans),
		size:    size,
		eps:     float64(T(eps)),
		data:    make([]T, len(spans)*stride),
	}

	var hookMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel.Workers(o.BatchWorkers))
	for b, sp := range spans {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			X, err := toDense(data[sp.Lo:sp.Hi])
			if err != nil {
				return fmt.Errorf("batch %d: %w", b, err)
			}
			P, stats, err := joint(gctx, X, o, eps)
			if err != nil {
				return fmt.Errorf("batch %d: %w", b, err)
			}
			dst := t.data[b*stride : (b+1)*stride]
			for k, v := range P.RawData() {
				dst[k] = T(v)
			}
			if o.OnBatch != nil {
				hookMu.Lock()
				o.OnBatch(b, *stats)
				hookMu.Unlock()
			}

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxBuild, err)
	}

	return t, nil
}

// validateRows rejects empty, zero-width and ragged input.
func validateRows[T Float](data [][]T) error {
	if len(data) == 0 || len(data[0]) == 0 {
		return ErrEmptyBatch
	}
	width := len(data[0])
	for i, row := range data {
		if len(row) != width {
			return fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), width, ErrRaggedInput)
		}
	}

	return nil
}

// toDense widens a batch of rows into a float64 Dense.
// Errors: matrix.ErrNaNInf for non-finite input.
func toDense[T Float](rows [][]T) (*matrix.Dense, error) {
	width := len(rows[0])
	buf := make([]float64, 0, len(rows)*width)
	for i, row := range rows {
		for j, v := range row {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("row %d col %d: %w", i, j, matrix.ErrNaNInf)
			}
			buf = append(buf, f)
		}
	}

	return matrix.NewFromData(len(rows), width, buf)
}
