// SPDX-License-Identifier: MIT

// Package marketmodels provides the pieces of a LIBOR market model needed to
// express a forward-rate correlation in coterminal swap-rate space.
//
// What:
//   - EvolutionDescription: rate tenor structure and simulation times.
//   - LMMCurveState: discount ratios, coterminal swap rates and annuities
//     implied by a set of forward rates.
//   - CoterminalSwapForwardJacobian / CoterminalSwapZedMatrix: sensitivities
//     of coterminal swap rates to forward rates.
//   - ExponentialForwardCorrelation: a parametric PSD forward correlation.
//   - CotSwapFromFwdCorrelation: per-step swap-rate pseudo-roots S_k with
//     unit row norms, built from a forward correlation C and the zed matrix Z
//     as rownorm(Z·F_k) where F_k·F_kᵀ ≈ C.
//
// Why:
//   - A swap market model driven by forward-rate correlations needs the
//     correlation of the swap rates it evolves; Z maps factor loadings from
//     one rate family to the other to first order.
//
// Errors:
//   - Sentinels in errors.go, wrapped with context; match with errors.Is.
//
// Determinism:
//   - No randomness and fixed loop orders: identical inputs give identical
//     pseudo-roots with the default Jacobi solver.
//
// Example:
//
//	rateTimes := []float64{0.5, 1, 1.5, 2}
//	ed, _ := marketmodels.NewEvolutionDescription(rateTimes, nil)
//	cs, _ := marketmodels.NewLMMCurveState(rateTimes)
//	_ = cs.SetOnForwardRates([]float64{0.03, 0.032, 0.034}, 0)
//	corr, _ := marketmodels.ExponentialForwardCorrelation(rateTimes, 0.5, 0.2)
//	swapCorr, err := marketmodels.NewCotSwapFromFwdCorrelation(corr, cs, 0.01, ed)
package marketmodels
