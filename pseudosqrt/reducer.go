// SPDX-License-Identifier: MIT

package pseudosqrt

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cotswap/matrix"
)

const (
	// DefaultSymmetryTol is the absolute tolerance on |m[i,j]-m[j,i]| accepted
	// before the input is symmetrised and decomposed.
	DefaultSymmetryTol = 1e-10

	// negativeEigenTol is the relative floor, scaled by the largest
	// eigenvalue, below which an eigenvalue counts as genuinely negative.
	negativeEigenTol = 1e-12

	// fullRetentionBoost inflates the variance target when 100% retention
	// is requested so rounding in the eigenvalue sum never drops a factor.
	fullRetentionBoost = 1.1
)

// RankReducer is the rank-reduction capability consumed by the market-model
// correlation builders.
//
// Given a symmetric N×N matrix it returns F (N×R, R ≤ maxRank) with
// F·Fᵀ ≈ m, where R retains at least componentRetainedPercentage of the
// total eigenvalue mass.
type RankReducer interface {
	RankReducedSqrt(m matrix.Matrix, maxRank int, componentRetainedPercentage float64,
		sa SalvagingAlgorithm) (matrix.Matrix, error)
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithEigenSolver selects the eigen solver. A nil solver panics (programmer error).
func WithEigenSolver(s EigenSolver) Option {
	if s == nil {
		panic("pseudosqrt: WithEigenSolver: nil solver")
	}

	return func(r *Reducer) { r.solver = s }
}

// WithSymmetryTolerance sets the accepted absolute asymmetry.
// Panics on negative or non-finite values (programmer error).
func WithSymmetryTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic("pseudosqrt: WithSymmetryTolerance: tol must be finite, non-negative")
	}

	return func(r *Reducer) { r.symTol = tol }
}

// Reducer is the spectral RankReducer. The zero value is not usable; build
// one with NewReducer. A Reducer holds no mutable state and is safe for
// concurrent use.
type Reducer struct {
	solver EigenSolver
	symTol float64
}

var _ RankReducer = (*Reducer)(nil)

// NewReducer returns a Reducer using the Jacobi solver unless overridden.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		solver: JacobiSolver{},
		symTol: DefaultSymmetryTol,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(r)
		}
	}

	return r
}

var defaultReducer = NewReducer()

// RankReducedSqrt runs the default (Jacobi) Reducer.
func RankReducedSqrt(m matrix.Matrix, maxRank int, componentRetainedPercentage float64,
	sa SalvagingAlgorithm) (matrix.Matrix, error) {
	return defaultReducer.RankReducedSqrt(m, maxRank, componentRetainedPercentage, sa)
}

// PseudoSqrt returns the full-rank pseudo square root of m.
func PseudoSqrt(m matrix.Matrix, sa SalvagingAlgorithm) (matrix.Matrix, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("PseudoSqrt: %w", err)
	}

	return defaultReducer.RankReducedSqrt(m, m.Rows(), 1.0, sa)
}

// RankReducedSqrt implements RankReducer.
// Implementation:
//   - Stage 1: validate shape, symmetry, maxRank and percentage.
//   - Stage 2: salvage (Higham replaces the input) and decompose; eigenpairs
//     arrive sorted by decreasing eigenvalue.
//   - Stage 3: None rejects negative eigenvalues, Spectral floors them at 0.
//   - Stage 4: keep factors until the retained mass reaches the target
//     (at least one, at most maxRank).
//   - Stage 5: F = V[:, :R]·diag(√λ) and rescale every row so that
//     Σ_j F[i,j]² = m[i,i].
//
// Complexity: dominated by the eigen decomposition, O(n³).
func (r *Reducer) RankReducedSqrt(m matrix.Matrix, maxRank int, componentRetainedPercentage float64,
	sa SalvagingAlgorithm) (matrix.Matrix, error) {
	const op = "RankReducedSqrt"
	if err := matrix.ValidateSymmetric(m, r.symTol); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if maxRank < 1 {
		return nil, fmt.Errorf("%s: max rank %d: %w", op, maxRank, ErrInvalidRank)
	}
	if !(componentRetainedPercentage > 0 && componentRetainedPercentage <= 1) {
		return nil, fmt.Errorf("%s: %g: %w", op, componentRetainedPercentage, ErrInvalidPercentage)
	}
	n := m.Rows()

	work, err := matrix.Symmetrize(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sa == Higham {
		if work, err = NearestCorrelation(work); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	vals, vecs, err := r.solver.Decompose(work)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	floor := -negativeEigenTol * math.Max(math.Abs(vals[0]), 1)
	switch sa {
	case None:
		if vals[n-1] < floor {
			return nil, fmt.Errorf("%s: smallest eigenvalue %e: %w", op, vals[n-1], ErrNegativeEigenvalue)
		}
		clampNegative(vals) // rounding noise within the floor
	case Spectral, Higham:
		clampNegative(vals)
	default:
		return nil, fmt.Errorf("%s: %v: %w", op, sa, ErrUnknownSalvaging)
	}

	retained := retainedFactors(vals, componentRetainedPercentage)
	if retained > maxRank {
		retained = maxRank
	}

	root, err := matrix.NewDense(n, retained)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var (
		i, j int
		v    float64
	)
	for j = 0; j < retained; j++ {
		s := math.Sqrt(vals[j])
		for i = 0; i < n; i++ {
			v, _ = vecs.At(i, j)
			if err = root.Set(i, j, v*s); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	out, err := normalizePseudoRoot(m, root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// retainedFactors counts the leading eigenvalues needed to reach
// pct·Σλ. It always keeps at least one factor.
func retainedFactors(vals []float64, pct float64) int {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	enough := pct * total
	if pct == 1.0 {
		enough *= fullRetentionBoost
	}
	components, count := vals[0], 1
	for i := 1; components < enough && i < len(vals); i++ {
		components += vals[i]
		count++
	}

	return count
}

func clampNegative(vals []float64) {
	for i, v := range vals {
		if v < 0 {
			vals[i] = 0
		}
	}
}

// normalizePseudoRoot rescales row i of root so that its squared norm equals
// target[i,i]. Rows with zero norm are left untouched.
func normalizePseudoRoot(target matrix.Matrix, root *matrix.Dense) (*matrix.Dense, error) {
	norms, err := matrix.RowNormsL2(root)
	if err != nil {
		return nil, err
	}
	scale := make([]float64, len(norms))
	var d float64
	for i, nv := range norms {
		scale[i] = 1
		if nv == 0 {
			continue
		}
		if d, err = target.At(i, i); err != nil {
			return nil, err
		}
		scale[i] = math.Sqrt(d) / nv
	}

	return matrix.ScaleRows(root, scale)
}
