// SPDX-License-Identifier: MIT

// Package perplexity defines options, results and error sentinels for
// perplexity calibration.
package perplexity

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/ptsne/matrix"
)

// Sentinel errors for calibration.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("perplexity: invalid option supplied")

	// ErrTooFewPoints is returned when the batch has fewer than two points,
	// so no neighbor distribution exists.
	ErrTooFewPoints = errors.New("perplexity: at least two points are required")
)

// Defaults.
const (
	// DefaultPerplexity is the target effective neighbor count.
	DefaultPerplexity = 30.0

	// DefaultTolerance is the absolute tolerance on |H − ln(perplexity)|
	// used by a direct Calibrate call. The affinity builder passes its own
	// tighter default.
	DefaultTolerance = 1e-4

	// DefaultMaxTries bounds the number of beta adjustments per point.
	DefaultMaxTries = 50

	// initialBeta is the starting precision of every search.
	initialBeta = 1.0
)

// Option configures Calibrate via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when
// Calibrate runs.
type Option func(*Options)

// Options holds the effective calibration parameters.
type Options struct {
	// Perplexity is the target perplexity u; the search matches ln(u).
	Perplexity float64

	// Tolerance is the absolute entropy tolerance.
	Tolerance float64

	// MaxTries bounds beta adjustments per point.
	MaxTries int

	// Workers is the number of goroutines; 0 means GOMAXPROCS.
	Workers int

	// OnRow, when set, is called once per point after its search.
	// It may be called concurrently from several goroutines.
	OnRow func(i int, r RowResult)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with the package defaults.
func DefaultOptions() Options {
	return Options{
		Perplexity: DefaultPerplexity,
		Tolerance:  DefaultTolerance,
		MaxTries:   DefaultMaxTries,
	}
}

// WithPerplexity sets the target perplexity. u must be finite and > 0.
func WithPerplexity(u float64) Option {
	return func(o *Options) {
		if !(u > 0) || math.IsInf(u, 0) {
			o.err = fmt.Errorf("%w: perplexity must be finite and > 0 (%g)", ErrOptionViolation, u)
			return
		}
		o.Perplexity = u
	}
}

// WithTolerance sets the absolute entropy tolerance. tol must be finite and > 0.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: tolerance must be finite and > 0 (%g)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithMaxTries sets the per-point adjustment budget. k must be > 0.
func WithMaxTries(k int) Option {
	return func(o *Options) {
		if k <= 0 {
			o.err = fmt.Errorf("%w: MaxTries must be > 0 (%d)", ErrOptionViolation, k)
			return
		}
		o.MaxTries = k
	}
}

// WithWorkers sets the goroutine count. w == 0 means GOMAXPROCS; w < 0 is invalid.
func WithWorkers(w int) Option {
	return func(o *Options) {
		if w < 0 {
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, w)
			return
		}
		o.Workers = w
	}
}

// WithOnRow registers a per-point observer.
func WithOnRow(fn func(i int, r RowResult)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRow = fn
		}
	}
}

// RowResult reports the outcome of one point's search.
type RowResult struct {
	Beta      float64 // final precision
	Entropy   float64 // entropy of the emitted row (natural log)
	Tries     int     // beta adjustments performed
	Converged bool    // |Entropy − ln(u)| ≤ tol
}

// Sigma returns the kernel bandwidth sqrt(1/beta).
func (r RowResult) Sigma() float64 { return math.Sqrt(1 / r.Beta) }

// Stats summarizes one calibration run.
type Stats struct {
	MeanSigma    float64 // mean of sqrt(1/beta)
	MinSigma     float64 // min of sqrt(1/beta)
	MaxSigma     float64 // max of sqrt(1/beta)
	NonConverged int     // points that ran out of tries
}

// Result is the output of Calibrate.
type Result struct {
	// P is the n×n conditional probability matrix; row i is P_i, P[i][i] = 0.
	// Rows of degenerate points may contain NaN (see affinity for sanitizing).
	P *matrix.Dense

	// Beta holds the calibrated precision per point.
	Beta []float64

	// Converged flags points whose search met the tolerance.
	Converged []bool

	// Stats summarizes Beta and convergence.
	Stats Stats
}
