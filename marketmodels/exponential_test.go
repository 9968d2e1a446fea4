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

func TestExponentialForwardCorrelation(t *testing.T) {
	t.Parallel()
	rateTimes := []float64{0, 1, 3, 6}
	const l, beta = 0.3, 0.25

	c, err := marketmodels.ExponentialForwardCorrelation(rateTimes, l, beta)
	require.NoError(t, err)
	require.Equal(t, 3, c.Rows())
	require.NoError(t, matrix.ValidateSymmetric(c, 0))

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, mustAt(t, c, i, i))
	}
	assert.InDelta(t, l+(1-l)*math.Exp(-beta*3), mustAt(t, c, 0, 2), 1e-15)

	// PSD: all eigenvalues non-negative.
	vals, _, err := matrix.EigenSym(c)
	require.NoError(t, err)
	for _, v := range vals {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestExponentialForwardCorrelation_Limits(t *testing.T) {
	t.Parallel()
	rateTimes := []float64{0, 1, 2}

	ones, err := marketmodels.ExponentialForwardCorrelation(rateTimes, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, mustAt(t, ones, 0, 1))

	flat, err := marketmodels.ExponentialForwardCorrelation(rateTimes, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, mustAt(t, flat, 1, 0))
}

func TestExponentialForwardCorrelation_Invalid(t *testing.T) {
	t.Parallel()
	rateTimes := []float64{0, 1, 2}
	for name, p := range map[string][2]float64{
		"negative L":    {-0.1, 0.1},
		"L above one":   {1.1, 0.1},
		"negative beta": {0.5, -1},
		"nan beta":      {0.5, math.NaN()},
		"inf beta":      {0.5, math.Inf(1)},
	} {
		_, err := marketmodels.ExponentialForwardCorrelation(rateTimes, p[0], p[1])
		require.ErrorIsf(t, err, marketmodels.ErrInvalidCorrelationParams, name)
	}
	_, err := marketmodels.ExponentialForwardCorrelation([]float64{1, 0}, 0.5, 0.1)
	require.ErrorIs(t, err, marketmodels.ErrInvalidTimes)
}
