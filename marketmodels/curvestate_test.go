// SPDX-License-Identifier: MIT

package marketmodels_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cotswap/marketmodels"
	"github.com/katalvlaran/cotswap/matrix"
)

func TestLMMCurveState_FlatCurve(t *testing.T) {
	t.Parallel()
	rateTimes := []float64{0, 1, 2, 3, 4}
	cs, err := marketmodels.NewLMMCurveState(rateTimes)
	require.NoError(t, err)
	require.NoError(t, cs.SetOnForwardRates([]float64{0.05, 0.05, 0.05, 0.05}, 0))

	// A par swap on a flat curve with matching accruals pays the forward.
	for i, s := range cs.CoterminalSwapRates() {
		assert.InDeltaf(t, 0.05, s, 1e-14, "swap %d", i)
	}

	d, err := cs.DiscountRatio(0, 4)
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(1.05, 4), d, 1e-14)

	d, err = cs.DiscountRatio(4, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1/(1.05*1.05), d, 1e-14)
}

func TestLMMCurveState_AnnuityAndRates(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	cs := fx.curve
	n := cs.NumberOfRates()
	taus := cs.RateTaus()

	// Swap n-1 is the last forward and its annuity is one accrual period.
	s, err := cs.CoterminalSwapRate(n - 1)
	require.NoError(t, err)
	assert.InDelta(t, fx.forwards[n-1], s, 1e-15)
	a, err := cs.CoterminalSwapAnnuity(n, n-1)
	require.NoError(t, err)
	assert.InDelta(t, taus[n-1], a, 1e-15)

	// Annuity in units of P(T_0): Σ τ_k P(T_{k+1})/P(T_0).
	want := 0.0
	for k := 0; k < n; k++ {
		r, err := cs.DiscountRatio(k+1, 0)
		require.NoError(t, err)
		want += taus[k] * r
	}
	a, err = cs.CoterminalSwapAnnuity(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, want, a, 1e-14)

	// S_0 · annuity = 1 - P(T_N)/P(T_0).
	s, err = cs.CoterminalSwapRate(0)
	require.NoError(t, err)
	pn, err := cs.DiscountRatio(n, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1-pn, s*a, 1e-14)

	assert.Equal(t, fx.forwards, cs.ForwardRates())
	assert.Equal(t, fx.rateTimes, cs.RateTimes())
	assert.True(t, cs.IsSet())
	assert.Equal(t, 0, cs.FirstValidIndex())
}

func TestLMMCurveState_Unset(t *testing.T) {
	t.Parallel()
	cs, err := marketmodels.NewLMMCurveState([]float64{1, 2, 3})
	require.NoError(t, err)

	assert.False(t, cs.IsSet())
	assert.Nil(t, cs.ForwardRates())
	assert.Nil(t, cs.CoterminalSwapRates())
	_, err = cs.DiscountRatio(0, 1)
	require.ErrorIs(t, err, marketmodels.ErrCurveStateNotSet)
	_, err = cs.CoterminalSwapRate(0)
	require.ErrorIs(t, err, marketmodels.ErrCurveStateNotSet)
	_, err = cs.CoterminalSwapAnnuity(2, 0)
	require.ErrorIs(t, err, marketmodels.ErrCurveStateNotSet)
	_, err = cs.CoterminalSwapZedMatrix(0)
	require.ErrorIs(t, err, marketmodels.ErrCurveStateNotSet)
}

func TestLMMCurveState_IndexChecks(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	cs, err := marketmodels.NewLMMCurveState(fx.rateTimes)
	require.NoError(t, err)
	require.NoError(t, cs.SetOnForwardRates(fx.forwards, 2))

	_, err = cs.DiscountRatio(1, 3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = cs.CoterminalSwapRate(len(fx.forwards))
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = cs.CoterminalSwapAnnuity(len(fx.forwards), len(fx.forwards))
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = cs.CoterminalSwapRate(2)
	require.NoError(t, err)
}

func TestLMMCurveState_InvalidInput(t *testing.T) {
	t.Parallel()
	_, err := marketmodels.NewLMMCurveState([]float64{1})
	require.ErrorIs(t, err, marketmodels.ErrInvalidTimes)
	_, err = marketmodels.NewLMMCurveState([]float64{1, 1, 2})
	require.ErrorIs(t, err, marketmodels.ErrInvalidTimes)

	cs, err := marketmodels.NewLMMCurveState([]float64{1, 2, 3})
	require.NoError(t, err)
	tests := []struct {
		name     string
		forwards []float64
		first    int
	}{
		{"short", []float64{0.01}, 0},
		{"first index too large", []float64{0.01, 0.02}, 2},
		{"negative first index", []float64{0.01, 0.02}, -1},
		{"nan", []float64{math.NaN(), 0.02}, 0},
		{"growth factor", []float64{0.01, -1.5}, 0},
	}
	for _, tc := range tests {
		require.ErrorIsf(t, cs.SetOnForwardRates(tc.forwards, tc.first), marketmodels.ErrInvalidRates, tc.name)
	}
	assert.False(t, cs.IsSet())
}
