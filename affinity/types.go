// SPDX-License-Identifier: MIT

package affinity

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/ptsne/perplexity"
)

// Sentinel errors for the affinity builder.
var (
	// ErrEmptyBatch is returned for empty input or zero-width rows.
	ErrEmptyBatch = errors.New("affinity: input has no points")

	// ErrRaggedInput is returned when input rows differ in length.
	ErrRaggedInput = errors.New("affinity: input rows have different lengths")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("affinity: invalid option supplied")
)

// Defaults.
const (
	// DefaultPerplexity is the target perplexity of every conditional row.
	DefaultPerplexity = perplexity.DefaultPerplexity

	// DefaultTolerance is the entropy tolerance of the affinity pipeline.
	// It is tighter than perplexity.DefaultTolerance.
	DefaultTolerance = 1e-5

	// DefaultMaxTries bounds beta adjustments per point.
	DefaultMaxTries = perplexity.DefaultMaxTries

	// DefaultBatchSize is the number of points per batch.
	DefaultBatchSize = 5000

	// DefaultBatchWorkers runs batches one at a time; each batch already
	// fans its rows out and holds O(BatchSize²) memory.
	DefaultBatchWorkers = 1

	// DefaultEpsilon is the probability floor: the float64 machine epsilon.
	// It is a normal float32 as well, so float32 tensors keep it exactly.
	DefaultEpsilon = 0x1p-52
)

// Float is the set of element types a Tensor can hold.
type Float interface {
	~float32 | ~float64
}

// Option configures Joint and Build.
type Option func(*Options)

// Options holds the effective builder parameters.
type Options struct {
	Perplexity   float64
	Tolerance    float64
	MaxTries     int
	BatchSize    int
	Workers      int // per-row goroutines inside a batch; 0 = GOMAXPROCS
	BatchWorkers int // concurrent batches; 0 = GOMAXPROCS

	// Epsilon is the probability floor; 0 selects DefaultEpsilon.
	Epsilon float64

	// OnBatch, when set, receives the calibration statistics of each
	// finished batch. Calls never overlap.
	OnBatch func(b int, s perplexity.Stats)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with the package defaults.
func DefaultOptions() Options {
	return Options{
		Perplexity:   DefaultPerplexity,
		Tolerance:    DefaultTolerance,
		MaxTries:     DefaultMaxTries,
		BatchSize:    DefaultBatchSize,
		BatchWorkers: DefaultBatchWorkers,
	}
}

func optionErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
}

// WithPerplexity sets the target perplexity (finite, > 0).
func WithPerplexity(u float64) Option {
	return func(o *Options) {
		if !(u > 0) || math.IsInf(u, 0) {
			o.err = optionErrorf("perplexity must be finite and > 0 (%g)", u)
			return
		}
		o.Perplexity = u
	}
}

// WithTolerance sets the entropy tolerance (finite, > 0).
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			o.err = optionErrorf("tolerance must be finite and > 0 (%g)", tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithMaxTries sets the per-point adjustment budget (> 0).
func WithMaxTries(k int) Option {
	return func(o *Options) {
		if k <= 0 {
			o.err = optionErrorf("MaxTries must be > 0 (%d)", k)
			return
		}
		o.MaxTries = k
	}
}

// WithBatchSize sets the batch size (> 0). Values above the input length
// are clamped to it.
func WithBatchSize(size int) Option {
	return func(o *Options) {
		if size <= 0 {
			o.err = optionErrorf("batch size must be > 0 (%d)", size)
			return
		}
		o.BatchSize = size
	}
}

// WithWorkers sets the per-row goroutine count (0 = GOMAXPROCS).
func WithWorkers(w int) Option {
	return func(o *Options) {
		if w < 0 {
			o.err = optionErrorf("Workers cannot be negative (%d)", w)
			return
		}
		o.Workers = w
	}
}

// WithBatchWorkers sets how many batches are built concurrently (0 = GOMAXPROCS).
func WithBatchWorkers(w int) Option {
	return func(o *Options) {
		if w < 0 {
			o.err = optionErrorf("BatchWorkers cannot be negative (%d)", w)
			return
		}
		o.BatchWorkers = w
	}
}

// WithEpsilon overrides the probability floor (finite, > 0).
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if !(eps > 0) || math.IsInf(eps, 0) {
			o.err = optionErrorf("epsilon must be finite and > 0 (%g)", eps)
			return
		}
		o.Epsilon = eps
	}
}

// WithOnBatch registers a per-batch observer.
func WithOnBatch(fn func(b int, s perplexity.Stats)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnBatch = fn
		}
	}
}

// calibratorOptions maps builder options onto the calibrator.
func (o Options) calibratorOptions() []perplexity.Option {
	return []perplexity.Option{
		perplexity.WithPerplexity(o.Perplexity),
		perplexity.WithTolerance(o.Tolerance),
		perplexity.WithMaxTries(o.MaxTries),
		perplexity.WithWorkers(o.Workers),
	}
}

// Span is a half-open row range [Lo, Hi) of the input.
type Span struct {
	Lo, Hi int
}

// Len returns Hi − Lo.
func (s Span) Len() int { return s.Hi - s.Lo }
