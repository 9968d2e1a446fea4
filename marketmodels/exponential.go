// SPDX-License-Identifier: MIT

package marketmodels

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cotswap/matrix"
)

// ExponentialForwardCorrelation returns the N×N forward-rate correlation
//
//	ρ_ij = L + (1-L)·exp(-β·|t_i - t_j|)
//
// over the N reset times rateTimes[:N]. For L ∈ [0,1] and β ≥ 0 the result
// is symmetric, positive semi-definite and has a unit diagonal.
//
// Errors: ErrInvalidTimes (see NewEvolutionDescription), ErrInvalidCorrelationParams.
func ExponentialForwardCorrelation(rateTimes []float64, longTermCorr, beta float64) (*matrix.Dense, error) {
	const op = "ExponentialForwardCorrelation"
	if len(rateTimes) < 2 {
		return nil, fmt.Errorf("%s: need at least 2 rate times, got %d: %w", op, len(rateTimes), ErrInvalidTimes)
	}
	if err := checkIncreasingTimes("rate times", rateTimes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !(longTermCorr >= 0 && longTermCorr <= 1) {
		return nil, fmt.Errorf("%s: long-term correlation %g outside [0,1]: %w", op, longTermCorr, ErrInvalidCorrelationParams)
	}
	if !(beta >= 0) || math.IsInf(beta, 0) {
		return nil, fmt.Errorf("%s: beta %g must be finite and non-negative: %w", op, beta, ErrInvalidCorrelationParams)
	}

	n := len(rateTimes) - 1
	corr, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var (
		i, j int
		rho  float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			rho = 1
			if i != j {
				rho = longTermCorr + (1-longTermCorr)*math.Exp(-beta*math.Abs(rateTimes[i]-rateTimes[j]))
			}
			if err = corr.Set(i, j, rho); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	return corr, nil
}
