// Package cotswap expresses a forward-rate correlation in coterminal
// swap-rate space for LIBOR market models.
//
// What is inside?
//
//	matrix/       : row-major Dense, validators, Jacobi eigen-decomposition, gonum bridge
//	pseudosqrt/   : rank-reduced pseudo square roots with None/Spectral/Higham salvaging
//	marketmodels/ : evolution description, LMM curve state, zed matrix and the
//	                CotSwapFromFwdCorrelation builder
//	cmd/cotswapcorr : CLI that builds the structure from a YAML model
//
// How it fits together
//
//	C (forward correlation, N×N)
//	    │ pseudosqrt.RankReducedSqrt        F_k·F_kᵀ ≈ C
//	    ▼
//	F_k (N×R) ──► Z·F_k ──► rows scaled to unit norm ──► S_k
//	               ▲
//	               └─ Z = LMMCurveState.CoterminalSwapZedMatrix(displacement)
//
// S_k·S_kᵀ is the coterminal swap-rate correlation in force during
// evolution step k.
//
// Quick start:
//
//	rateTimes := []float64{0.5, 1, 1.5, 2}
//	ed, _ := marketmodels.NewEvolutionDescription(rateTimes, nil)
//	cs, _ := marketmodels.NewLMMCurveState(rateTimes)
//	_ = cs.SetOnForwardRates([]float64{0.03, 0.032, 0.034}, 0)
//	corr, _ := marketmodels.ExponentialForwardCorrelation(rateTimes, 0.5, 0.2)
//	swapCorr, _ := marketmodels.NewCotSwapFromFwdCorrelation(corr, cs, 0.01, ed)
//	roots := swapCorr.PseudoRoots() // one N×N matrix per evolution time
//
// All constructors validate before they allocate and report sentinel
// errors that callers match with errors.Is.
package cotswap
