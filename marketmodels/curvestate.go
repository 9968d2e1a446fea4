// SPDX-License-Identifier: MIT

package marketmodels

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cotswap/matrix"
)

// CurveState is the market snapshot consumed by the correlation builders.
type CurveState interface {
	// NumberOfRates is the count of forward rates N described by the state.
	NumberOfRates() int
	// CoterminalSwapZedMatrix returns the N×N zed matrix for the given
	// displacement. Rows are swap rates, columns forward rates.
	CoterminalSwapZedMatrix(displacement float64) (matrix.Matrix, error)
}

// LMMCurveState is a forward-rate curve state on a fixed tenor structure.
//
// Discount ratios are kept relative to the terminal bond P(T_N), so that
// discRatios[N] = 1 and discRatios[i] = Π_{k≥i} (1 + τ_k f_k).
// Not safe for concurrent mutation; reads after SetOnForwardRates are.
type LMMCurveState struct {
	rateTimes []float64
	rateTaus  []float64
	n         int
	first     int
	set       bool

	forwardRates []float64
	discRatios   []float64
	cotSwaps     []float64
	cotAnnuities []float64
}

var _ CurveState = (*LMMCurveState)(nil)

// NewLMMCurveState builds an empty curve state on rateTimes (N+1 strictly
// increasing, non-negative times).
func NewLMMCurveState(rateTimes []float64) (*LMMCurveState, error) {
	if len(rateTimes) < 2 {
		return nil, fmt.Errorf("NewLMMCurveState: need at least 2 rate times, got %d: %w",
			len(rateTimes), ErrInvalidTimes)
	}
	if err := checkIncreasingTimes("rate times", rateTimes); err != nil {
		return nil, fmt.Errorf("NewLMMCurveState: %w", err)
	}
	n := len(rateTimes) - 1
	cs := &LMMCurveState{
		rateTimes:    append([]float64(nil), rateTimes...),
		rateTaus:     make([]float64, n),
		n:            n,
		forwardRates: make([]float64, n),
		discRatios:   make([]float64, n+1),
		cotSwaps:     make([]float64, n),
		cotAnnuities: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		cs.rateTaus[i] = rateTimes[i+1] - rateTimes[i]
	}

	return cs, nil
}

// SetOnForwardRates loads forwards (length N) and recomputes discount ratios
// and coterminal swap rates/annuities from firstValidIndex on. Rates before
// firstValidIndex are treated as already reset and ignored.
//
// Errors: ErrInvalidRates for a wrong length, non-finite rate, a rate with
// 1+τf ≤ 0, or firstValidIndex outside [0, N).
func (cs *LMMCurveState) SetOnForwardRates(forwards []float64, firstValidIndex int) error {
	const op = "SetOnForwardRates"
	if len(forwards) != cs.n {
		return fmt.Errorf("%s: %d rates for %d periods: %w", op, len(forwards), cs.n, ErrInvalidRates)
	}
	if firstValidIndex < 0 || firstValidIndex >= cs.n {
		return fmt.Errorf("%s: first valid index %d outside [0,%d): %w", op, firstValidIndex, cs.n, ErrInvalidRates)
	}
	for i := firstValidIndex; i < cs.n; i++ {
		f := forwards[i]
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%s: rate %d = %g: %w", op, i, f, ErrInvalidRates)
		}
		if 1+cs.rateTaus[i]*f <= 0 {
			return fmt.Errorf("%s: rate %d = %g gives non-positive growth factor: %w", op, i, f, ErrInvalidRates)
		}
	}

	copy(cs.forwardRates, forwards)
	cs.first = firstValidIndex
	for i := range cs.discRatios {
		cs.discRatios[i] = 0
	}
	cs.discRatios[cs.n] = 1
	for i := cs.n - 1; i >= firstValidIndex; i-- {
		cs.discRatios[i] = cs.discRatios[i+1] * (1 + cs.rateTaus[i]*forwards[i])
	}

	// Annuities accumulate backwards from the terminal payment.
	annuity := 0.0
	for i := cs.n - 1; i >= firstValidIndex; i-- {
		annuity += cs.rateTaus[i] * cs.discRatios[i+1]
		cs.cotAnnuities[i] = annuity
		cs.cotSwaps[i] = (cs.discRatios[i] - cs.discRatios[cs.n]) / annuity
	}
	for i := 0; i < firstValidIndex; i++ {
		cs.cotAnnuities[i], cs.cotSwaps[i] = 0, 0
	}
	cs.set = true

	return nil
}

// NumberOfRates returns N.
func (cs *LMMCurveState) NumberOfRates() int { return cs.n }

// FirstValidIndex returns the index of the first rate that has not reset.
func (cs *LMMCurveState) FirstValidIndex() int { return cs.first }

// IsSet reports whether forward rates have been loaded.
func (cs *LMMCurveState) IsSet() bool { return cs.set }

// RateTimes returns a copy of the N+1 rate times.
func (cs *LMMCurveState) RateTimes() []float64 { return append([]float64(nil), cs.rateTimes...) }

// RateTaus returns a copy of the N accrual periods.
func (cs *LMMCurveState) RateTaus() []float64 { return append([]float64(nil), cs.rateTaus...) }

// ForwardRates returns a copy of the forward rates, or nil before SetOnForwardRates.
func (cs *LMMCurveState) ForwardRates() []float64 {
	if !cs.set {
		return nil
	}

	return append([]float64(nil), cs.forwardRates...)
}

// CoterminalSwapRates returns a copy of the coterminal swap rates, or nil
// before SetOnForwardRates.
func (cs *LMMCurveState) CoterminalSwapRates() []float64 {
	if !cs.set {
		return nil
	}

	return append([]float64(nil), cs.cotSwaps...)
}

func (cs *LMMCurveState) checkIndex(op string, idx ...int) error {
	if !cs.set {
		return fmt.Errorf("%s: %w", op, ErrCurveStateNotSet)
	}
	for _, i := range idx {
		if i < cs.first || i > cs.n {
			return fmt.Errorf("%s: index %d outside [%d,%d]: %w", op, i, cs.first, cs.n, matrix.ErrOutOfRange)
		}
	}

	return nil
}

// DiscountRatio returns P(T_i)/P(T_j).
func (cs *LMMCurveState) DiscountRatio(i, j int) (float64, error) {
	if err := cs.checkIndex("DiscountRatio", i, j); err != nil {
		return 0, err
	}

	return cs.discRatios[i] / cs.discRatios[j], nil
}

// CoterminalSwapRate returns the swap rate for the swap starting at T_i and
// ending at T_N.
func (cs *LMMCurveState) CoterminalSwapRate(i int) (float64, error) {
	if err := cs.checkIndex("CoterminalSwapRate", i); err != nil {
		return 0, err
	}
	if i == cs.n {
		return 0, fmt.Errorf("CoterminalSwapRate: index %d: %w", i, matrix.ErrOutOfRange)
	}

	return cs.cotSwaps[i], nil
}

// CoterminalSwapAnnuity returns the annuity of swap i in units of the bond
// maturing at T_numeraire.
func (cs *LMMCurveState) CoterminalSwapAnnuity(numeraire, i int) (float64, error) {
	if err := cs.checkIndex("CoterminalSwapAnnuity", numeraire, i); err != nil {
		return 0, err
	}
	if i == cs.n {
		return 0, fmt.Errorf("CoterminalSwapAnnuity: index %d: %w", i, matrix.ErrOutOfRange)
	}

	return cs.cotAnnuities[i] / cs.discRatios[numeraire], nil
}

// CoterminalSwapZedMatrix implements CurveState.
func (cs *LMMCurveState) CoterminalSwapZedMatrix(displacement float64) (matrix.Matrix, error) {
	return CoterminalSwapZedMatrix(cs, displacement)
}
