// SPDX-License-Identifier: MIT

package marketmodels

import (
	"fmt"

	"github.com/katalvlaran/cotswap/matrix"
)

const opCotSwap = "NewCotSwapFromFwdCorrelation"

// PiecewiseConstantCorrelation is a correlation structure that is constant
// between consecutive evolution times.
type PiecewiseConstantCorrelation interface {
	Times() []float64
	NumberOfRates() int
	// Correlation returns the N×N correlation in force during step.
	Correlation(step int) (matrix.Matrix, error)
}

// CotSwapFromFwdCorrelation is the coterminal-swap-rate correlation
// structure implied by a forward-rate correlation matrix.
//
// For every evolution step k it stores a pseudo-root S_k (N×R) of the swap
// rate correlation, obtained by mapping the rank-reduced forward pseudo-root
// through the zed matrix and scaling every row to unit L2 norm, so that
// diag(S_k·S_kᵀ) = 1. Immutable after construction and safe for concurrent reads.
type CotSwapFromFwdCorrelation struct {
	evolution     Evolution
	times         []float64
	numberOfRates int
	pseudoRoots   []matrix.Matrix
}

var _ PiecewiseConstantCorrelation = (*CotSwapFromFwdCorrelation)(nil)

// NewCotSwapFromFwdCorrelation builds the swap-rate pseudo-roots.
//
// Implementation:
//   - Stage 1: reject nil collaborators and invalid options.
//   - Stage 2: shape checks, all before any output is allocated:
//     non-square correlation first, then evolution vs curve state rates,
//     then evolution rates vs correlation size.
//   - Stage 3: zed matrix Z = cs.CoterminalSwapZedMatrix(displacement), N×N.
//   - Stage 4: for each step k: F_k = reducer(C, N, retained, salvaging),
//     S_k = Z·F_k, rows of S_k scaled to unit norm.
//
// Errors:
//   - ErrNilInput, ErrInvalidOption, ErrNonSquareMatrix, ErrDimensionMismatch.
//   - matrix.ErrNaNInf for a correlation holding NaN or ±Inf.
//   - ErrNumericalDegeneracy for a zero-norm row under ZeroNormFail.
//   - Curve-state and rank-reducer errors, wrapped with the step index.
//
// Complexity: O(K·N³) for K steps.
func NewCotSwapFromFwdCorrelation(fraCorrelation matrix.Matrix, cs CurveState, displacement float64,
	evolution Evolution, opts ...Option) (*CotSwapFromFwdCorrelation, error) {
	if err := matrix.ValidateNotNil(fraCorrelation); err != nil {
		return nil, fmt.Errorf("%s: correlation: %w", opCotSwap, ErrNilInput)
	}
	if cs == nil {
		return nil, fmt.Errorf("%s: curve state: %w", opCotSwap, ErrNilInput)
	}
	if evolution == nil {
		return nil, fmt.Errorf("%s: evolution: %w", opCotSwap, ErrNilInput)
	}
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCotSwap, err)
	}

	rows, cols := fraCorrelation.Rows(), fraCorrelation.Cols()
	if rows != cols {
		return nil, fmt.Errorf("%s: correlation is %dx%d: %w", opCotSwap, rows, cols, ErrNonSquareMatrix)
	}
	n := evolution.NumberOfRates()
	if csRates := cs.NumberOfRates(); n != csRates {
		return nil, fmt.Errorf("%s: evolution has %d rates, curve state %d: %w",
			opCotSwap, n, csRates, ErrDimensionMismatch)
	}
	// Columns equal rows past the squareness check.
	if n != rows {
		return nil, fmt.Errorf("%s: evolution has %d rates, correlation is %dx%d: %w",
			opCotSwap, n, rows, cols, ErrDimensionMismatch)
	}
	if err = matrix.ValidateFinite(fraCorrelation); err != nil {
		return nil, fmt.Errorf("%s: correlation: %w", opCotSwap, err)
	}

	zed, err := cs.CoterminalSwapZedMatrix(displacement)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCotSwap, err)
	}
	if err = matrix.ValidateNotNil(zed); err != nil {
		return nil, fmt.Errorf("%s: zed matrix: %w", opCotSwap, err)
	}
	if zed.Rows() != n || zed.Cols() != n {
		return nil, fmt.Errorf("%s: zed matrix is %dx%d for %d rates: %w",
			opCotSwap, zed.Rows(), zed.Cols(), n, ErrDimensionMismatch)
	}

	times := append([]float64(nil), evolution.EvolutionTimes()...)
	c := &CotSwapFromFwdCorrelation{
		evolution:     evolution,
		times:         times,
		numberOfRates: n,
		pseudoRoots:   make([]matrix.Matrix, len(times)),
	}

	var root, swapRoot matrix.Matrix
	for k := range times {
		root, err = o.reducer.RankReducedSqrt(fraCorrelation, n, o.retained, o.salvaging)
		if err != nil {
			return nil, fmt.Errorf("%s: step %d: %w", opCotSwap, k, err)
		}
		if swapRoot, err = matrix.Mul(zed, root); err != nil {
			return nil, fmt.Errorf("%s: step %d: %w", opCotSwap, k, err)
		}
		if c.pseudoRoots[k], err = normalizeSwapRoot(swapRoot, k, o.zeroNorm); err != nil {
			return nil, fmt.Errorf("%s: %w", opCotSwap, err)
		}
		o.logger.Debug().
			Int("step", k).
			Float64("time", times[k]).
			Int("factors", root.Cols()).
			Msg("swap-rate pseudo-root built")
	}
	o.logger.Debug().
		Int("rates", n).
		Int("steps", len(times)).
		Float64("displacement", displacement).
		Str("salvaging", o.salvaging.String()).
		Msg("coterminal swap correlation ready")

	return c, nil
}

// normalizeSwapRoot scales every row of s to unit L2 norm.
func normalizeSwapRoot(s matrix.Matrix, step int, policy ZeroNormPolicy) (*matrix.Dense, error) {
	norms, err := matrix.RowNormsL2(s)
	if err != nil {
		return nil, fmt.Errorf("step %d: %w", step, err)
	}
	scale := make([]float64, len(norms))
	for i, nv := range norms {
		if nv == 0 && policy == ZeroNormFail {
			return nil, fmt.Errorf("step %d: swap rate %d has a zero-norm factor row: %w",
				step, i, ErrNumericalDegeneracy)
		}
		scale[i] = 1 / nv // +Inf on a zero row under ZeroNormPropagate, giving NaN
	}

	var out *matrix.Dense
	if policy == ZeroNormPropagate {
		out, err = matrix.ScaleRows(s, scale, matrix.WithNoValidateNaNInf())
	} else {
		out, err = matrix.ScaleRows(s, scale)
	}
	if err != nil {
		return nil, fmt.Errorf("step %d: %w", step, err)
	}

	return out, nil
}

// Times returns a copy of the evolution times.
func (c *CotSwapFromFwdCorrelation) Times() []float64 {
	return append([]float64(nil), c.times...)
}

// NumberOfRates returns N.
func (c *CotSwapFromFwdCorrelation) NumberOfRates() int { return c.numberOfRates }

// Evolution returns the evolution the structure was built on.
func (c *CotSwapFromFwdCorrelation) Evolution() Evolution { return c.evolution }

// PseudoRoots returns the K pseudo-roots in step order. The slice is a copy;
// the matrices are the structure's own and must not be modified.
func (c *CotSwapFromFwdCorrelation) PseudoRoots() []matrix.Matrix {
	return append([]matrix.Matrix(nil), c.pseudoRoots...)
}

// PseudoRoot returns the pseudo-root of step (read-only).
func (c *CotSwapFromFwdCorrelation) PseudoRoot(step int) (matrix.Matrix, error) {
	if step < 0 || step >= len(c.pseudoRoots) {
		return nil, fmt.Errorf("PseudoRoot: step %d outside [0,%d): %w", step, len(c.pseudoRoots), matrix.ErrOutOfRange)
	}

	return c.pseudoRoots[step], nil
}

// Correlation returns S_k·S_kᵀ for step k.
func (c *CotSwapFromFwdCorrelation) Correlation(step int) (matrix.Matrix, error) {
	root, err := c.PseudoRoot(step)
	if err != nil {
		return nil, fmt.Errorf("Correlation: %w", err)
	}
	rt, err := matrix.Transpose(root)
	if err != nil {
		return nil, fmt.Errorf("Correlation: %w", err)
	}
	corr, err := matrix.Mul(root, rt)
	if err != nil {
		return nil, fmt.Errorf("Correlation: %w", err)
	}

	return corr, nil
}
