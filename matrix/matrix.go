// SPDX-License-Identifier: MIT

// Package matrix: the Matrix interface.
//
// Every kernel in this package accepts Matrix and returns a fresh *Dense.
// Concrete *Dense operands unlock flat-slice fast paths; any other
// implementation goes through At/Set with identical results.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i or j is outside the matrix.
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid, ErrNaNInf when the
	// implementation enforces a finite-only policy and v is not finite.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}
