// SPDX-License-Identifier: MIT

package divergence

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/ptsne/matrix"
)

// Sentinel errors for the divergence engine.
var (
	// ErrBatchMismatch is returned when P is not square or its size differs
	// from the number of embedding rows.
	ErrBatchMismatch = errors.New("divergence: affinity and embedding batch sizes differ")

	// ErrTooFewPoints is returned for embeddings with fewer than two rows.
	ErrTooFewPoints = errors.New("divergence: at least two points are required")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("divergence: invalid option supplied")
)

// DefaultEpsilon is the float64 machine epsilon used as probability floor.
const DefaultEpsilon = 0x1p-52

// Option configures Similarities, Loss and Evaluate.
type Option func(*Options)

// Options holds the effective engine parameters.
type Options struct {
	// DegreesOfFreedom is ν; 0 selects max(d_out − 1, 1).
	DegreesOfFreedom float64

	// Epsilon floors Q and regularizes the log ratio.
	Epsilon float64

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with automatic ν and DefaultEpsilon.
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon}
}

// WithDegreesOfFreedom fixes ν (finite, > 0).
func WithDegreesOfFreedom(nu float64) Option {
	return func(o *Options) {
		if !(nu > 0) || math.IsInf(nu, 0) {
			o.err = fmt.Errorf("%w: degrees of freedom must be finite and > 0 (%g)", ErrOptionViolation, nu)
			return
		}
		o.DegreesOfFreedom = nu
	}
}

// WithEpsilon sets the probability floor (finite, > 0). It should match
// the floor P was built with (Tensor.Epsilon()).
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if !(eps > 0) || math.IsInf(eps, 0) {
			o.err = fmt.Errorf("%w: epsilon must be finite and > 0 (%g)", ErrOptionViolation, eps)
			return
		}
		o.Epsilon = eps
	}
}

// parse applies opts over the defaults.
func parse(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// nu resolves the degrees of freedom for an embedding of width dOut.
func (o Options) nu(dOut int) float64 {
	if o.DegreesOfFreedom > 0 {
		return o.DegreesOfFreedom
	}

	return math.Max(float64(dOut-1), 1)
}

// Similarity holds the embedding-side quantities of one evaluation.
type Similarity struct {
	Q      *matrix.Dense // floored Student-t similarities, diagonal ε
	Kernel *matrix.Dense // (1 + d/ν)^(−1), diagonal 0
	Dist   *matrix.Dense // squared embedding distances
	Nu     float64       // degrees of freedom used
}

// Result is the output of Evaluate.
type Result struct {
	Loss float64
	Grad *matrix.Dense // n × d_out, same layout as Y
	Q    *matrix.Dense
}
