// SPDX-License-Identifier: MIT

package pseudosqrt

import (
	"fmt"
	"strings"
)

// SalvagingAlgorithm selects how a matrix that is not positive semi-definite
// is corrected before its square root is taken.
type SalvagingAlgorithm int

const (
	// None applies no correction; negative eigenvalues are an error.
	None SalvagingAlgorithm = iota
	// Spectral floors negative eigenvalues at zero.
	Spectral
	// Higham replaces the input with the nearest correlation matrix
	// (unit diagonal, PSD) in the Frobenius norm.
	Higham
)

var salvagingNames = [...]string{
	None:     "none",
	Spectral: "spectral",
	Higham:   "higham",
}

// String implements fmt.Stringer.
func (sa SalvagingAlgorithm) String() string {
	if sa < 0 || int(sa) >= len(salvagingNames) {
		return fmt.Sprintf("SalvagingAlgorithm(%d)", int(sa))
	}

	return salvagingNames[sa]
}

// ParseSalvagingAlgorithm maps a case-insensitive name onto its value.
// The empty string selects None.
func ParseSalvagingAlgorithm(name string) (SalvagingAlgorithm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return None, nil
	}
	for i, n := range salvagingNames {
		if n == key {
			return SalvagingAlgorithm(i), nil
		}
	}

	return None, fmt.Errorf("%q: %w", name, ErrUnknownSalvaging)
}
