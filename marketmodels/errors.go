// SPDX-License-Identifier: MIT
// Package marketmodels: sentinel error set.
// Every constructor validates fully before allocating and reports one of
// these sentinels, wrapped with the conflicting values; match with errors.Is.

package marketmodels

import "errors"

var (
	// ErrDimensionMismatch is returned when the rate counts of the
	// correlation matrix, curve state, evolution or zed matrix disagree.
	ErrDimensionMismatch = errors.New("marketmodels: dimension mismatch")

	// ErrNonSquareMatrix is returned when the forward correlation matrix is
	// not square. It takes precedence over ErrDimensionMismatch.
	ErrNonSquareMatrix = errors.New("marketmodels: correlation matrix is not square")

	// ErrNumericalDegeneracy is returned when a swap-rate factor row has zero
	// norm before renormalisation (or a mapping would divide by zero).
	ErrNumericalDegeneracy = errors.New("marketmodels: numerical degeneracy")

	// ErrNilInput is returned when a required collaborator is nil.
	ErrNilInput = errors.New("marketmodels: nil input")

	// ErrInvalidTimes is returned for rate or evolution times that are not
	// strictly increasing, negative, too few, or beyond the last reset.
	ErrInvalidTimes = errors.New("marketmodels: invalid times")

	// ErrCurveStateNotSet is returned when a curve state is queried before
	// forward rates were supplied.
	ErrCurveStateNotSet = errors.New("marketmodels: curve state not set")

	// ErrInvalidRates is returned for forward-rate inputs of the wrong length,
	// non-finite values, or an out-of-range first valid index.
	ErrInvalidRates = errors.New("marketmodels: invalid forward rates")

	// ErrInvalidOption is returned when a builder option carries a value
	// outside its domain.
	ErrInvalidOption = errors.New("marketmodels: invalid option")

	// ErrInvalidCorrelationParams is returned for exponential-correlation
	// parameters outside their domain.
	ErrInvalidCorrelationParams = errors.New("marketmodels: invalid correlation parameters")
)
