// SPDX-License-Identifier: MIT
// Package matrix: bridge to gonum.org/v1/gonum/mat.
//
// The package keeps its own Dense for deterministic, error-returning
// kernels; gonum is used where its LAPACK-backed factorizations are the
// better tool (e.g. the alternative eigen solver in pseudosqrt).

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToGonum copies m into a fresh *mat.Dense.
// Complexity: O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ToGonum", err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf("ToGonum", err)
	}
	buf := make([]float64, len(d.data))
	copy(buf, d.data) // mat.NewDense takes ownership of buf; never alias ours

	return mat.NewDense(d.r, d.c, buf), nil
}

// ToGonumSym copies a square matrix into a *mat.SymDense, reading the upper
// triangle only. Callers validate symmetry first when it matters.
func ToGonumSym(m Matrix) (*mat.SymDense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("ToGonumSym", err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf("ToGonumSym", err)
	}
	n := d.r
	sym := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sym.SetSym(i, j, d.data[i*n+j])
		}
	}

	return sym, nil
}

// FromGonum copies any gonum matrix into a fresh *Dense.
// Errors: ErrInvalidDimensions for empty matrices, ErrNaNInf under the
// default numeric policy when the source holds non-finite values.
func FromGonum(g mat.Matrix) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf("FromGonum", ErrNilMatrix)
	}
	r, c := g.Dims()
	d, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("FromGonum", err)
	}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if err = d.Set(i, j, g.At(i, j)); err != nil {
				return nil, matrixErrorf("FromGonum", fmt.Errorf("source (%d,%d): %w", i, j, err))
			}
		}
	}

	return d, nil
}
