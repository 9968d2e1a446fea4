// SPDX-License-Identifier: MIT
// Package matrix: row-wise kernels and numeric comparison.
//
// Purpose:
//   - RowNormsL2 / ScaleRows are the two building blocks of row renormalisation;
//     NormalizeRowsL2 composes them with the "degenerate rows unchanged" policy.
//   - AllClose is the tolerance comparison used across tests and callers.

package matrix

import (
	"fmt"
	"math"
)

const (
	opRowNormsL2      = "RowNormsL2"
	opScaleRows       = "ScaleRows"
	opNormalizeRowsL2 = "NormalizeRowsL2"
	opAllClose        = "AllClose"
)

// RowNormsL2 returns n where n[i] = sqrt(Σ_j X[i,j]^2).
// Complexity: O(r*c) time, O(r) space.
func RowNormsL2(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opRowNormsL2, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf(opRowNormsL2, err)
	}
	norms := make([]float64, d.r)
	var (
		i, j, base int
		sq, v      float64
	)
	for i = 0; i < d.r; i++ {
		sq = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			v = d.data[base+j]
			sq += v * v
		}
		norms[i] = math.Sqrt(sq)
	}

	return norms, nil
}

// ScaleRows returns Y with Y[i,j] = X[i,j] * scale[i].
// The result inherits the numeric policy given by opts, so callers that
// must let NaN/Inf through pass WithNoValidateNaNInf.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(scale) != rows), ErrNaNInf under policy.
//
// Complexity: O(r*c).
func ScaleRows(X Matrix, scale []float64, opts ...Option) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	if len(scale) != X.Rows() {
		return nil, matrixErrorf(opScaleRows,
			fmt.Errorf("%d scale factors for %d rows: %w", len(scale), X.Rows(), ErrDimensionMismatch))
	}
	d, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	res, err := NewDense(d.r, d.c, opts...)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			if err = res.Set(i, j, d.data[i*d.c+j]*scale[i]); err != nil {
				return nil, matrixErrorf(opScaleRows, err)
			}
		}
	}

	return res, nil
}

// NormalizeRowsL2 scales each row to unit L2 norm and returns the original norms.
// Implementation:
//   - Stage 1: RowNormsL2.
//   - Stage 2: scale = 1/norm; degenerate rows (norm==0) use scale=1 and stay zero.
//   - Stage 3: ScaleRows.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NormalizeRowsL2(X Matrix) (*Dense, []float64, error) {
	norms, err := RowNormsL2(X)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL2, err)
	}
	scale := make([]float64, len(norms))
	for i, nv := range norms {
		if nv > 0 {
			scale[i] = 1.0 / nv
		} else {
			scale[i] = 1.0
		}
	}
	Y, err := ScaleRows(X, scale)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL2, err)
	}

	return Y, norms, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// NaN never compares equal; equal infinities do. Negative tolerances are
// taken by absolute value.
//
// Complexity: O(r*c) time, O(1) space.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	var (
		i, j   int
		av, bv float64
		err    error
	)
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if math.IsNaN(av) || math.IsNaN(bv) {
				return false, nil
			}
			if math.IsInf(av, 0) || math.IsInf(bv, 0) {
				if av != bv {
					return false, nil
				}
				continue
			}
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
