// SPDX-License-Identifier: MIT
// Package pseudosqrt: sentinel error set.
// Callers match with errors.Is; the reducer wraps with call-site context.

package pseudosqrt

import "errors"

var (
	// ErrNegativeEigenvalue is returned under the None salvaging policy when
	// the input has an eigenvalue below the negative tolerance.
	ErrNegativeEigenvalue = errors.New("pseudosqrt: negative eigenvalue(s)")

	// ErrInvalidRank indicates maxRank < 1.
	ErrInvalidRank = errors.New("pseudosqrt: max rank must be >= 1")

	// ErrInvalidPercentage indicates a retained percentage outside (0, 1].
	ErrInvalidPercentage = errors.New("pseudosqrt: retained percentage must be in (0, 1]")

	// ErrUnknownSalvaging indicates an unsupported SalvagingAlgorithm value.
	ErrUnknownSalvaging = errors.New("pseudosqrt: unknown salvaging algorithm")

	// ErrNotConverged is returned when an iterative routine (gonum eigen
	// factorisation, Higham projections) fails to converge.
	ErrNotConverged = errors.New("pseudosqrt: iteration did not converge")
)
