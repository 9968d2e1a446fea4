// SPDX-License-Identifier: MIT

package pseudosqrt

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cotswap/matrix"
)

// EigenSolver decomposes a symmetric matrix.
//
// Implementations return eigenvalues in decreasing order with the matching
// eigenvectors as the columns of the returned matrix. Each eigenvector is
// sign-normalised so that its largest-magnitude entry is positive, which
// makes the output independent of the solver's internal sign choices.
type EigenSolver interface {
	Decompose(m matrix.Matrix) ([]float64, *matrix.Dense, error)
}

// JacobiSolver runs the deterministic Jacobi rotations of matrix.Eigen.
// Zero fields select matrix.DefaultEpsilon and matrix.DefaultMaxIter.
type JacobiSolver struct {
	Tol     float64
	MaxIter int
}

// Decompose implements EigenSolver.
func (s JacobiSolver) Decompose(m matrix.Matrix) ([]float64, *matrix.Dense, error) {
	tol, maxIter := s.Tol, s.MaxIter
	if tol <= 0 {
		tol = matrix.DefaultEpsilon
	}
	if maxIter <= 0 {
		maxIter = matrix.DefaultMaxIter
	}
	vals, vecs, err := matrix.Eigen(m, tol, maxIter)
	if err != nil {
		return nil, nil, fmt.Errorf("JacobiSolver: %w", err)
	}
	dv, ok := vecs.(*matrix.Dense)
	if !ok {
		return nil, nil, fmt.Errorf("JacobiSolver: unexpected eigenvector type %T", vecs)
	}

	return sortDecreasing(vals, dv)
}

// GonumSolver delegates to gonum's LAPACK-backed mat.EigenSym.
type GonumSolver struct{}

// Decompose implements EigenSolver.
func (GonumSolver) Decompose(m matrix.Matrix) ([]float64, *matrix.Dense, error) {
	sym, err := matrix.ToGonumSym(m)
	if err != nil {
		return nil, nil, fmt.Errorf("GonumSolver: %w", err)
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, fmt.Errorf("GonumSolver: EigenSym.Factorize: %w", ErrNotConverged)
	}
	vals := es.Values(nil)
	var ev mat.Dense
	es.VectorsTo(&ev)
	vecs, err := matrix.FromGonum(&ev)
	if err != nil {
		return nil, nil, fmt.Errorf("GonumSolver: %w", err)
	}

	return sortDecreasing(vals, vecs)
}

// sortDecreasing reorders eigenpairs by decreasing eigenvalue (stable, so
// equal eigenvalues keep the solver's order) and fixes eigenvector signs.
func sortDecreasing(vals []float64, vecs *matrix.Dense) ([]float64, *matrix.Dense, error) {
	n := len(vals)
	order := make([]int, n)
	rows := make([]int, n)
	for i := range order {
		order[i], rows[i] = i, i
	}
	sort.SliceStable(order, func(a, b int) bool { return vals[order[a]] > vals[order[b]] })

	sorted := make([]float64, n)
	for i, k := range order {
		sorted[i] = vals[k]
	}
	out, err := vecs.Induced(rows, order)
	if err != nil {
		return nil, nil, fmt.Errorf("sortDecreasing: %w", err)
	}

	var (
		i, j, pivot int
		v, best     float64
	)
	for j = 0; j < n; j++ {
		best, pivot = -1, 0
		for i = 0; i < n; i++ {
			v, _ = out.At(i, j) // indices are in range by construction
			if math.Abs(v) > best {
				best, pivot = math.Abs(v), i
			}
		}
		if v, _ = out.At(pivot, j); v >= 0 {
			continue
		}
		for i = 0; i < n; i++ {
			v, _ = out.At(i, j)
			if err = out.Set(i, j, -v); err != nil {
				return nil, nil, fmt.Errorf("sortDecreasing: %w", err)
			}
		}
	}

	return sorted, out, nil
}
