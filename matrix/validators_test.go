// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/ptsne/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidateNotNil(t *testing.T) {
	var d *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(d), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateNotNil(MustDense(t, 1, 1)))
}

func TestValidateSquareAndShape(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateSquare(MustDense(t, 2, 3)), matrix.ErrNonSquare)
	require.NoError(t, matrix.ValidateSquare(MustDense(t, 3, 3)))

	require.ErrorIs(t, matrix.ValidateSameShape(MustDense(t, 2, 3), MustDense(t, 3, 2)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 2, 3)), matrix.ErrDimensionMismatch)
}

func TestValidateSymmetric(t *testing.T) {
	m := NewFilledDense(t, 2, 2, []float64{0, 1, 1 + 1e-12, 0})
	require.ErrorIs(t, matrix.ValidateSymmetric(m, 0), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(m, 1e-9))
	require.NoError(t, matrix.ValidateSymmetric(hide{m}, 1e-9))
	require.ErrorIs(t, matrix.ValidateSymmetric(m, -1), matrix.ErrNaNInf)
}
