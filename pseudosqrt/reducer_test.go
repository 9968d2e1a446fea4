// SPDX-License-Identifier: MIT

package pseudosqrt_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cotswap/matrix"
	"github.com/katalvlaran/cotswap/pseudosqrt"
)

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func mustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// outer returns F·Fᵀ.
func outer(t *testing.T, f matrix.Matrix) matrix.Matrix {
	t.Helper()
	ft, err := matrix.Transpose(f)
	require.NoError(t, err)
	p, err := matrix.Mul(f, ft)
	require.NoError(t, err)

	return p
}

func requireClose(t *testing.T, want, got matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%v\ngot\n%v", want, got)
}

// kernel is a 4×4 correlation with distinct eigenvalues.
func kernel(t *testing.T) *matrix.Dense {
	return mustRows(t, [][]float64{
		{1, 0.8, 0.6, 0.4},
		{0.8, 1, 0.7, 0.5},
		{0.6, 0.7, 1, 0.75},
		{0.4, 0.5, 0.75, 1},
	})
}

// notPSD has eigenvalue -0.8 along (1,-1,1).
func notPSD(t *testing.T) *matrix.Dense {
	return mustRows(t, [][]float64{
		{1, 0.9, -0.9},
		{0.9, 1, 0.9},
		{-0.9, 0.9, 1},
	})
}

func TestRankReducedSqrt_Identity(t *testing.T) {
	t.Parallel()
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)

	f, err := pseudosqrt.RankReducedSqrt(id, 3, 1, pseudosqrt.None)
	require.NoError(t, err)
	requireClose(t, id, f, 0)
}

func TestRankReducedSqrt_FullRank(t *testing.T) {
	t.Parallel()
	c := kernel(t)

	f, err := pseudosqrt.RankReducedSqrt(c, 4, 1, pseudosqrt.None)
	require.NoError(t, err)
	assert.Equal(t, 4, f.Rows())
	assert.Equal(t, 4, f.Cols())
	requireClose(t, c, outer(t, f), 1e-10)
}

func TestRankReducedSqrt_RetainedAndMaxRank(t *testing.T) {
	t.Parallel()
	c := kernel(t)

	f, err := pseudosqrt.RankReducedSqrt(c, 4, 0.5, pseudosqrt.None)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Cols(), "the first factor carries more than half the mass")

	f, err = pseudosqrt.RankReducedSqrt(c, 2, 1, pseudosqrt.None)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Cols())

	// Rows are rescaled to the input diagonal even when factors are dropped.
	norms, err := matrix.RowNormsL2(f)
	require.NoError(t, err)
	for i, nv := range norms {
		assert.InDeltaf(t, 1, nv, 1e-12, "row %d", i)
	}
}

func TestRankReducedSqrt_NonUnitDiagonal(t *testing.T) {
	t.Parallel()
	m := mustRows(t, [][]float64{{4, 0}, {0, 9}})

	f, err := pseudosqrt.RankReducedSqrt(m, 1, 1, pseudosqrt.None)
	require.NoError(t, err)
	require.Equal(t, 1, f.Cols())
	norms, err := matrix.RowNormsL2(f)
	require.NoError(t, err)
	// Row 0 lies entirely in the dropped factor and stays zero.
	assert.Equal(t, 0.0, norms[0])
	assert.InDelta(t, 3, norms[1], 1e-12)
}

func TestRankReducedSqrt_SingularAccepted(t *testing.T) {
	t.Parallel()
	ones := mustRows(t, [][]float64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})

	f, err := pseudosqrt.RankReducedSqrt(ones, 3, 1, pseudosqrt.None)
	require.NoError(t, err)
	requireClose(t, ones, outer(t, f), 1e-10)
}

func TestRankReducedSqrt_Salvaging(t *testing.T) {
	t.Parallel()
	bad := notPSD(t)

	_, err := pseudosqrt.RankReducedSqrt(bad, 3, 1, pseudosqrt.None)
	require.ErrorIs(t, err, pseudosqrt.ErrNegativeEigenvalue)

	for _, sa := range []pseudosqrt.SalvagingAlgorithm{pseudosqrt.Spectral, pseudosqrt.Higham} {
		f, err := pseudosqrt.RankReducedSqrt(bad, 3, 1, sa)
		require.NoError(t, err, sa.String())
		p := outer(t, f)
		for i := 0; i < 3; i++ {
			assert.InDeltaf(t, 1, mustAt(t, p, i, i), 1e-10, "%v diag %d", sa, i)
		}
		vals, _, err := pseudosqrt.GonumSolver{}.Decompose(p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, vals[len(vals)-1], -1e-10, sa.String())
	}
}

func TestRankReducedSqrt_SolversAgree(t *testing.T) {
	t.Parallel()
	c := kernel(t)
	jac := pseudosqrt.NewReducer()
	gon := pseudosqrt.NewReducer(pseudosqrt.WithEigenSolver(pseudosqrt.GonumSolver{}))

	fj, err := jac.RankReducedSqrt(c, 4, 1, pseudosqrt.None)
	require.NoError(t, err)
	fg, err := gon.RankReducedSqrt(c, 4, 1, pseudosqrt.None)
	require.NoError(t, err)

	// Distinct eigenvalues and fixed signs make the roots themselves comparable.
	requireClose(t, fj, fg, 1e-8)
	requireClose(t, outer(t, fj), outer(t, fg), 1e-10)
}

func TestRankReducedSqrt_Deterministic(t *testing.T) {
	t.Parallel()
	c := kernel(t)
	a, err := pseudosqrt.RankReducedSqrt(c, 4, 0.9, pseudosqrt.Spectral)
	require.NoError(t, err)
	b, err := pseudosqrt.RankReducedSqrt(c, 4, 0.9, pseudosqrt.Spectral)
	require.NoError(t, err)
	requireClose(t, a, b, 0)
}

func TestRankReducedSqrt_Invalid(t *testing.T) {
	t.Parallel()
	c := kernel(t)
	asym := mustRows(t, [][]float64{{1, 0.5}, {0.4, 1}})
	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	tests := []struct {
		name    string
		m       matrix.Matrix
		maxRank int
		pct     float64
		sa      pseudosqrt.SalvagingAlgorithm
		want    error
	}{
		{"nil", nil, 1, 1, pseudosqrt.None, matrix.ErrNilMatrix},
		{"non-square", rect, 1, 1, pseudosqrt.None, matrix.ErrNonSquare},
		{"asymmetric", asym, 2, 1, pseudosqrt.None, matrix.ErrAsymmetry},
		{"zero rank", c, 0, 1, pseudosqrt.None, pseudosqrt.ErrInvalidRank},
		{"zero percentage", c, 4, 0, pseudosqrt.None, pseudosqrt.ErrInvalidPercentage},
		{"percentage above one", c, 4, 1.01, pseudosqrt.None, pseudosqrt.ErrInvalidPercentage},
		{"nan percentage", c, 4, math.NaN(), pseudosqrt.None, pseudosqrt.ErrInvalidPercentage},
		{"unknown salvaging", c, 4, 1, pseudosqrt.SalvagingAlgorithm(42), pseudosqrt.ErrUnknownSalvaging},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f, err := pseudosqrt.RankReducedSqrt(tc.m, tc.maxRank, tc.pct, tc.sa)
			require.Nil(t, f)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestWithSymmetryTolerance(t *testing.T) {
	t.Parallel()
	m := mustRows(t, [][]float64{{1, 0.5}, {0.5 + 1e-8, 1}})

	_, err := pseudosqrt.RankReducedSqrt(m, 2, 1, pseudosqrt.None)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	r := pseudosqrt.NewReducer(pseudosqrt.WithSymmetryTolerance(1e-6))
	_, err = r.RankReducedSqrt(m, 2, 1, pseudosqrt.None)
	require.NoError(t, err)

	assert.Panics(t, func() { pseudosqrt.WithSymmetryTolerance(-1) })
	assert.Panics(t, func() { pseudosqrt.WithEigenSolver(nil) })
}

func TestPseudoSqrt(t *testing.T) {
	t.Parallel()
	c := kernel(t)
	f, err := pseudosqrt.PseudoSqrt(c, pseudosqrt.None)
	require.NoError(t, err)
	requireClose(t, c, outer(t, f), 1e-10)

	_, err = pseudosqrt.PseudoSqrt(nil, pseudosqrt.None)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
