// SPDX-License-Identifier: MIT
// Package marketmodels: forward-rate to coterminal-swap-rate mappings.
//
// With discount ratios D_k = P(T_k)/P(T_N), annuities B_i = Σ_{k≥i} τ_k D_{k+1}
// and swap rates S_i = (D_i - 1)/B_i, the sensitivity of swap i to forward j is
//
//	∂S_i/∂f_j = τ_j/(1+τ_j f_j) · (1 + S_i B_j) / B_i   for j ≥ i, 0 otherwise.
//
// The zed matrix rescales it into displaced log space:
//
//	Z[i,j] = ∂S_i/∂f_j · (f_j + d) / (S_i + d).

package marketmodels

import (
	"fmt"

	"github.com/katalvlaran/cotswap/matrix"
)

const (
	opJacobian = "CoterminalSwapForwardJacobian"
	opZed      = "CoterminalSwapZedMatrix"
)

// CoterminalSwapForwardJacobian returns the N×N matrix ∂S_i/∂f_j.
// It is upper triangular; rows of already reset rates (i < FirstValidIndex) are zero.
//
// Errors: ErrNilInput, ErrCurveStateNotSet, ErrNumericalDegeneracy (zero annuity).
func CoterminalSwapForwardJacobian(cs *LMMCurveState) (*matrix.Dense, error) {
	if cs == nil {
		return nil, fmt.Errorf("%s: %w", opJacobian, ErrNilInput)
	}
	if !cs.set {
		return nil, fmt.Errorf("%s: %w", opJacobian, ErrCurveStateNotSet)
	}
	n := cs.n
	jac, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opJacobian, err)
	}

	var (
		i, j         int
		bi, si, g, v float64
	)
	for i = cs.first; i < n; i++ {
		bi, si = cs.cotAnnuities[i], cs.cotSwaps[i]
		if bi == 0 {
			return nil, fmt.Errorf("%s: annuity %d is zero: %w", opJacobian, i, ErrNumericalDegeneracy)
		}
		for j = i; j < n; j++ {
			g = cs.rateTaus[j] / (1 + cs.rateTaus[j]*cs.forwardRates[j])
			v = g * (1 + si*cs.cotAnnuities[j]) / bi
			if err = jac.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("%s: %w", opJacobian, err)
			}
		}
	}

	return jac, nil
}

// CoterminalSwapZedMatrix returns the displaced zed matrix of cs.
//
// Errors: those of CoterminalSwapForwardJacobian, and ErrNumericalDegeneracy
// when a swap rate equals -displacement.
func CoterminalSwapZedMatrix(cs *LMMCurveState, displacement float64) (*matrix.Dense, error) {
	jac, err := CoterminalSwapForwardJacobian(cs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opZed, err)
	}

	n := cs.n
	var (
		i, j    int
		den, jv float64
	)
	for i = cs.first; i < n; i++ {
		den = cs.cotSwaps[i] + displacement
		if den == 0 {
			return nil, fmt.Errorf("%s: swap rate %d equals -displacement %g: %w",
				opZed, i, displacement, ErrNumericalDegeneracy)
		}
		for j = i; j < n; j++ {
			jv, _ = jac.At(i, j) // in range by construction
			if err = jac.Set(i, j, jv*(cs.forwardRates[j]+displacement)/den); err != nil {
				return nil, fmt.Errorf("%s: %w", opZed, err)
			}
		}
	}

	return jac, nil
}
