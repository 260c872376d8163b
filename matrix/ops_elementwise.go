// SPDX-License-Identifier: MIT

// Package matrix - element-wise kernels used by the probability pipeline.
//
// Purpose:
//   - Sanitize, symmetrize, normalize and floor probability matrices in place.
//   - Keep loops deterministic: flat walk on *Dense, fixed i→j order otherwise.
//
// Policy:
//   - In-place kernels mutate their argument and return only an error.
//   - Fallback paths go through At/Set, so they inherit the finite-only Set policy.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opReplaceNaN   = "ReplaceNaN"
	opFloor        = "Floor"
	opScaleInPlace = "ScaleInPlace"
	opAddTranspose = "AddTranspose"
	opSum          = "Sum"
	opAllClose     = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving it via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ReplaceNaN overwrites every NaN entry of m with val (finite).
// Infinite entries are left untouched; they are a different failure.
//
// Errors: ErrNilMatrix; ErrNaNInf when val is not finite.
// Complexity: O(r*c), no allocation.
func ReplaceNaN(m Matrix, val float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opReplaceNaN, err)
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return matrixErrorf(opReplaceNaN, ErrNaNInf)
	}

	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			if math.IsNaN(v) {
				d.data[idx] = val
			}
		}
		return nil
	}

	return eachFallback(m, opReplaceNaN, func(v float64) float64 {
		if math.IsNaN(v) {
			return val
		}
		return v
	})
}

// Floor raises every entry of m below lo to lo: m = max(m, lo).
// NaN entries are also replaced by lo so the result never contains NaN.
//
// Errors: ErrNilMatrix; ErrNaNInf when lo is not finite.
// Complexity: O(r*c), no allocation.
//
// AI-Hints:
//   - Call with the machine epsilon of the working type to keep log(p) finite.
func Floor(m Matrix, lo float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opFloor, err)
	}
	if math.IsNaN(lo) || math.IsInf(lo, 0) {
		return matrixErrorf(opFloor, ErrNaNInf)
	}

	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			if !(v >= lo) { // also catches NaN
				d.data[idx] = lo
			}
		}
		return nil
	}

	return eachFallback(m, opFloor, func(v float64) float64 {
		if !(v >= lo) {
			return lo
		}
		return v
	})
}

// ScaleInPlace multiplies every entry by alpha (finite).
// Errors: ErrNilMatrix; ErrNaNInf when alpha is not finite.
// Complexity: O(r*c).
func ScaleInPlace(m Matrix, alpha float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opScaleInPlace, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return matrixErrorf(opScaleInPlace, ErrNaNInf)
	}

	if d, ok := m.(*Dense); ok {
		floats.Scale(alpha, d.data)
		return nil
	}

	return eachFallback(m, opScaleInPlace, func(v float64) float64 { return v * alpha })
}

// AddTranspose replaces a square m by m + mᵀ in place. There is no
// halving: callers that need (m + mᵀ)/2 follow with ScaleInPlace.
//
// Each mirrored pair is written from one sum, so the result is exactly
// symmetric (bitwise), and the diagonal is doubled.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n²), no allocation.
func AddTranspose(m Matrix) error {
	if err := ValidateSquare(m); err != nil {
		return matrixErrorf(opAddTranspose, err)
	}
	n := m.Rows()

	var i, j int
	if d, ok := m.(*Dense); ok {
		var s float64
		for i = 0; i < n; i++ {
			d.data[i*n+i] *= 2
			for j = i + 1; j < n; j++ {
				s = d.data[i*n+j] + d.data[j*n+i]
				d.data[i*n+j] = s
				d.data[j*n+i] = s
			}
		}
		return nil
	}

	var a, b float64
	var err error
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			if a, err = m.At(i, j); err != nil {
				return matrixErrorf(opAddTranspose, err)
			}
			if b, err = m.At(j, i); err != nil {
				return matrixErrorf(opAddTranspose, err)
			}
			if err = m.Set(i, j, a+b); err != nil {
				return matrixErrorf(opAddTranspose, err)
			}
			if err = m.Set(j, i, a+b); err != nil {
				return matrixErrorf(opAddTranspose, err)
			}
		}
	}

	return nil
}

// Sum returns Σ m[i,j].
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Sum(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opSum, err)
	}
	if d, ok := m.(*Dense); ok {
		return floats.Sum(d.data), nil
	}

	var s, v float64
	var err error
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, matrixErrorf(opSum, err)
			}
			s += v
		}
	}

	return s, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN never compares close. Negative tolerances are treated as |tol|.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (bad tolerances).
// Complexity: O(r*c), Space O(1).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	var x, y float64
	var err error
	var i, j int
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if x, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if y, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if x == y { // covers equal infinities
				continue
			}
			if !(math.Abs(x-y) <= atol+rtol*math.Abs(y)) {
				return false, nil
			}
		}
	}

	return true, nil
}

// eachFallback applies fn to every entry through At/Set in i→j order.
func eachFallback(m Matrix, tag string, fn func(float64) float64) error {
	var v float64
	var err error
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return matrixErrorf(tag, err)
			}
			if err = m.Set(i, j, fn(v)); err != nil {
				return matrixErrorf(tag, err)
			}
		}
	}

	return nil
}
