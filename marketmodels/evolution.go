// SPDX-License-Identifier: MIT

package marketmodels

import (
	"fmt"
	"math"
)

// Evolution is the read-only view of a simulation schedule that the
// correlation builders need.
type Evolution interface {
	// NumberOfRates is the count of forward rates being evolved.
	NumberOfRates() int
	// EvolutionTimes lists the simulation time points, strictly increasing.
	EvolutionTimes() []float64
}

// EvolutionDescription describes the rate tenor structure and the times at
// which a market model is evolved.
//
// rateTimes holds N+1 strictly increasing times: rate i resets at
// rateTimes[i] and pays at rateTimes[i+1]. Immutable after construction.
type EvolutionDescription struct {
	rateTimes      []float64
	rateTaus       []float64
	evolutionTimes []float64
	firstAliveRate []int
	numberOfRates  int
}

var _ Evolution = (*EvolutionDescription)(nil)

// NewEvolutionDescription validates and builds an evolution description.
// Implementation:
//   - Stage 1: rateTimes must have ≥ 2 entries, start at ≥ 0 and be strictly increasing.
//   - Stage 2: empty evolutionTimes default to every reset time (rateTimes[:N]).
//   - Stage 3: evolutionTimes must be ≥ 0, strictly increasing and end no
//     later than the last reset time rateTimes[N-1].
//   - Stage 4: derive accrual taus and the first alive rate of every step.
//
// Errors: ErrInvalidTimes wrapped with the offending index and value.
func NewEvolutionDescription(rateTimes, evolutionTimes []float64) (*EvolutionDescription, error) {
	if len(rateTimes) < 2 {
		return nil, fmt.Errorf("rate times: need at least 2, got %d: %w", len(rateTimes), ErrInvalidTimes)
	}
	if err := checkIncreasingTimes("rate times", rateTimes); err != nil {
		return nil, err
	}
	n := len(rateTimes) - 1

	if len(evolutionTimes) == 0 {
		evolutionTimes = rateTimes[:n]
	}
	if err := checkIncreasingTimes("evolution times", evolutionTimes); err != nil {
		return nil, err
	}
	if last := evolutionTimes[len(evolutionTimes)-1]; last > rateTimes[n-1] {
		return nil, fmt.Errorf("last evolution time %g after last reset time %g: %w",
			last, rateTimes[n-1], ErrInvalidTimes)
	}

	ed := &EvolutionDescription{
		rateTimes:      append([]float64(nil), rateTimes...),
		rateTaus:       make([]float64, n),
		evolutionTimes: append([]float64(nil), evolutionTimes...),
		firstAliveRate: make([]int, len(evolutionTimes)),
		numberOfRates:  n,
	}
	for i := 0; i < n; i++ {
		ed.rateTaus[i] = rateTimes[i+1] - rateTimes[i]
	}

	// A rate is alive during step j while it has not reset before the step starts.
	current, alive := 0.0, 0
	for j := range ed.evolutionTimes {
		for alive < n && ed.rateTimes[alive] <= current {
			alive++
		}
		ed.firstAliveRate[j] = alive
		current = ed.evolutionTimes[j]
	}

	return ed, nil
}

func checkIncreasingTimes(what string, times []float64) error {
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%s[%d]=%g not finite: %w", what, i, t, ErrInvalidTimes)
		}
		if i == 0 {
			if t < 0 {
				return fmt.Errorf("%s[0]=%g is negative: %w", what, t, ErrInvalidTimes)
			}
			continue
		}
		if t <= times[i-1] {
			return fmt.Errorf("%s not strictly increasing at %d (%g after %g): %w",
				what, i, t, times[i-1], ErrInvalidTimes)
		}
	}

	return nil
}

// NumberOfRates returns N.
func (ed *EvolutionDescription) NumberOfRates() int { return ed.numberOfRates }

// NumberOfSteps returns the number of evolution times.
func (ed *EvolutionDescription) NumberOfSteps() int { return len(ed.evolutionTimes) }

// RateTimes returns a copy of the N+1 rate times.
func (ed *EvolutionDescription) RateTimes() []float64 {
	return append([]float64(nil), ed.rateTimes...)
}

// RateTaus returns a copy of the N accrual periods.
func (ed *EvolutionDescription) RateTaus() []float64 {
	return append([]float64(nil), ed.rateTaus...)
}

// EvolutionTimes returns a copy of the evolution times.
func (ed *EvolutionDescription) EvolutionTimes() []float64 {
	return append([]float64(nil), ed.evolutionTimes...)
}

// FirstAliveRate returns, per step, the index of the first rate that has
// not reset by the start of the step.
func (ed *EvolutionDescription) FirstAliveRate() []int {
	return append([]int(nil), ed.firstAliveRate...)
}
