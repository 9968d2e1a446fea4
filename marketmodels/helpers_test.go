// SPDX-License-Identifier: MIT
// Package marketmodels_test: shared fixtures and collaborator stubs.

package marketmodels_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cotswap/marketmodels"
	"github.com/katalvlaran/cotswap/matrix"
	"github.com/katalvlaran/cotswap/pseudosqrt"
)

const unitNormTol = 1e-10

// fixture is a five-rate semi-annual curve with an upward sloping forward curve.
type fixture struct {
	rateTimes []float64
	forwards  []float64
	evolution *marketmodels.EvolutionDescription
	curve     *marketmodels.LMMCurveState
	corr      *matrix.Dense
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	rateTimes := []float64{0.5, 1, 1.5, 2, 2.5, 3}
	forwards := []float64{0.030, 0.032, 0.034, 0.035, 0.037}

	ed, err := marketmodels.NewEvolutionDescription(rateTimes, nil)
	require.NoError(t, err)
	cs, err := marketmodels.NewLMMCurveState(rateTimes)
	require.NoError(t, err)
	require.NoError(t, cs.SetOnForwardRates(forwards, 0))
	corr, err := marketmodels.ExponentialForwardCorrelation(rateTimes, 0.5, 0.2)
	require.NoError(t, err)

	return fixture{rateTimes: rateTimes, forwards: forwards, evolution: ed, curve: cs, corr: corr}
}

func mustDenseFromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func mustIdentity(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewIdentity(n)
	require.NoError(t, err)

	return m
}

func mustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// stubCurve returns a fixed zed matrix regardless of displacement.
type stubCurve struct {
	n   int
	zed matrix.Matrix
	err error
}

func (s stubCurve) NumberOfRates() int { return s.n }

func (s stubCurve) CoterminalSwapZedMatrix(float64) (matrix.Matrix, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.zed, nil
}

// stubEvolution carries N and a time grid without validation.
type stubEvolution struct {
	n     int
	times []float64
}

func (s stubEvolution) NumberOfRates() int        { return s.n }
func (s stubEvolution) EvolutionTimes() []float64 { return s.times }

// recordingReducer delegates to the default reducer and records each call.
type recordingReducer struct {
	calls     int
	maxRanks  []int
	retained  []float64
	salvaging []pseudosqrt.SalvagingAlgorithm
}

func (r *recordingReducer) RankReducedSqrt(m matrix.Matrix, maxRank int, pct float64,
	sa pseudosqrt.SalvagingAlgorithm) (matrix.Matrix, error) {
	r.calls++
	r.maxRanks = append(r.maxRanks, maxRank)
	r.retained = append(r.retained, pct)
	r.salvaging = append(r.salvaging, sa)

	return pseudosqrt.RankReducedSqrt(m, maxRank, pct, sa)
}

// requireUnitRows asserts that every row of m has unit L2 norm.
func requireUnitRows(t *testing.T, m matrix.Matrix) {
	t.Helper()
	norms, err := matrix.RowNormsL2(m)
	require.NoError(t, err)
	for i, nv := range norms {
		require.InDeltaf(t, 1.0, nv, unitNormTol, "row %d", i)
	}
}
