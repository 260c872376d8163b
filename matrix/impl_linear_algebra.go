// SPDX-License-Identifier: MIT
// Package matrix - linear-algebra facades over gonum/mat.
//
// Purpose:
//   - Offer Mul/Transpose on the package's Matrix surface.
//   - Delegate the heavy lifting to gonum (BLAS-backed for *Dense operands).
//
// Notes:
//   - *Dense operands are handed to gonum without copying (shared backing slice).
//   - Other Matrix implementations are adapted through a read-only view.

package matrix

import (
	"gonum.org/v1/gonum/mat"
)

const (
	opMul       = "Mul"
	opTranspose = "Transpose"
)

// gonumView adapts any Matrix to gonum's read-only mat.Matrix.
// Callers guarantee indices are in range, so At errors cannot occur.
type gonumView struct{ m Matrix }

func (v gonumView) Dims() (int, int) { return v.m.Rows(), v.m.Cols() }

func (v gonumView) At(i, j int) float64 {
	x, _ := v.m.At(i, j)
	return x
}

func (v gonumView) T() mat.Matrix { return mat.Transpose{Matrix: v} }

// asGonum returns a zero-copy gonum view of m.
func asGonum(m Matrix) mat.Matrix {
	if d, ok := m.(*Dense); ok {
		return d.Gonum()
	}

	return gonumView{m: m}
}

// Mul returns the matrix product a × b as a new *Dense.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: allocate the result and let gonum write into its shared buffer.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*n*c).
//
// AI-Hints:
//   - Pass *Dense operands to hit the BLAS path.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(a.Rows(), b.Cols())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res.Gonum().Mul(asGonum(a), asGonum(b))

	return res, nil
}

// Transpose returns mᵀ as a new *Dense.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(m.Cols(), m.Rows())
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res.Gonum().Copy(asGonum(m).T())

	return res, nil
}
