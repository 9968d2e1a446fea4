// SPDX-License-Identifier: MIT

package pseudosqrt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cotswap/matrix"
)

const (
	highamTol     = 1e-10
	highamMaxIter = 10000
)

// NearestCorrelation returns the correlation matrix (symmetric, PSD, unit
// diagonal) closest to m in the Frobenius norm, using Higham's alternating
// projections with Dykstra's correction:
//
//	R = Y - ΔS;  X = P_psd(R);  ΔS = X - R;  Y = P_unitdiag(X)
//
// until ||Y - X||_F / ||Y||_F < 1e-10.
//
// Errors: matrix validation errors for nil/non-square input, ErrNotConverged.
func NearestCorrelation(m matrix.Matrix) (*matrix.Dense, error) {
	a, err := matrix.ToGonum(m)
	if err != nil {
		return nil, fmt.Errorf("NearestCorrelation: %w", err)
	}
	n, c := a.Dims()
	if n != c {
		return nil, fmt.Errorf("NearestCorrelation: %d rows and %d columns: %w", n, c, matrix.ErrNonSquare)
	}

	y := mat.DenseCopyOf(a)
	x := mat.NewDense(n, n, nil)
	r := mat.NewDense(n, n, nil)
	ds := mat.NewDense(n, n, nil)
	diff := mat.NewDense(n, n, nil)
	for iter := 0; iter < highamMaxIter; iter++ {
		r.Sub(y, ds)
		if err = projectPSD(r, x); err != nil {
			return nil, fmt.Errorf("NearestCorrelation: iteration %d: %w", iter, err)
		}
		ds.Sub(x, r)

		y.Copy(x)
		for i := 0; i < n; i++ {
			y.Set(i, i, 1)
		}

		diff.Sub(y, x)
		if mat.Norm(diff, 2) <= highamTol*math.Max(mat.Norm(y, 2), 1) {
			return symmetricCopy(y)
		}
	}

	return nil, fmt.Errorf("NearestCorrelation: %d iterations: %w", highamMaxIter, ErrNotConverged)
}

// projectPSD writes into dst the projection of src onto the PSD cone:
// V·diag(max(λ,0))·Vᵀ of the symmetric part of src.
func projectPSD(src, dst *mat.Dense) error {
	n, _ := src.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(src.At(i, j)+src.At(j, i)))
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return fmt.Errorf("projectPSD: %w", ErrNotConverged)
	}
	vals := es.Values(nil)
	for i, v := range vals {
		vals[i] = math.Max(v, 0)
	}
	var vecs, scaled mat.Dense
	es.VectorsTo(&vecs)
	scaled.Mul(&vecs, mat.NewDiagDense(n, vals))
	dst.Mul(&scaled, vecs.T())

	return nil
}

// symmetricCopy returns (y + yᵀ)/2 as a *matrix.Dense with an exact unit diagonal.
func symmetricCopy(y *mat.Dense) (*matrix.Dense, error) {
	n, _ := y.Dims()
	out, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := 0.5 * (y.At(i, j) + y.At(j, i))
			if i == j {
				v = 1
			}
			if err = out.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
