// SPDX-License-Identifier: MIT

// Package marketmodels: functional configuration for the correlation builders.
// Options are applied in order and validated once by the constructor, which
// reports ErrInvalidOption instead of panicking.

package marketmodels

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/cotswap/pseudosqrt"
)

const (
	// DefaultRetainedPercentage keeps every eigen factor.
	DefaultRetainedPercentage = 1.0

	// DefaultSalvaging rejects correlation inputs that are not PSD.
	DefaultSalvaging = pseudosqrt.None
)

// ZeroNormPolicy decides what happens when a swap-rate factor row has zero
// norm and cannot be renormalised.
type ZeroNormPolicy int

const (
	// ZeroNormFail aborts construction with ErrNumericalDegeneracy.
	ZeroNormFail ZeroNormPolicy = iota
	// ZeroNormPropagate divides anyway; the row becomes NaN.
	ZeroNormPropagate
)

var zeroNormNames = [...]string{
	ZeroNormFail:      "fail",
	ZeroNormPropagate: "propagate",
}

// String implements fmt.Stringer.
func (p ZeroNormPolicy) String() string {
	if p < 0 || int(p) >= len(zeroNormNames) {
		return fmt.Sprintf("ZeroNormPolicy(%d)", int(p))
	}

	return zeroNormNames[p]
}

// ParseZeroNormPolicy maps "fail" or "propagate" (case-insensitive) onto a
// policy. The empty string selects ZeroNormFail.
func ParseZeroNormPolicy(name string) (ZeroNormPolicy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return ZeroNormFail, nil
	}
	for i, n := range zeroNormNames {
		if n == key {
			return ZeroNormPolicy(i), nil
		}
	}

	return ZeroNormFail, fmt.Errorf("zero-norm policy %q: %w", name, ErrInvalidOption)
}

// Option mutates builder options.
type Option func(*Options)

// Options stores the effective builder configuration.
type Options struct {
	reducer   pseudosqrt.RankReducer
	retained  float64
	salvaging pseudosqrt.SalvagingAlgorithm
	zeroNorm  ZeroNormPolicy
	logger    zerolog.Logger
}

// WithRankReducer injects the rank-reduction primitive.
// Default: pseudosqrt.NewReducer() (Jacobi eigen solver).
func WithRankReducer(r pseudosqrt.RankReducer) Option {
	return func(o *Options) { o.reducer = r }
}

// WithRetainedPercentage sets the share of eigenvalue mass every step keeps,
// in (0,1]. Default 1.0.
func WithRetainedPercentage(p float64) Option {
	return func(o *Options) { o.retained = p }
}

// WithSalvaging selects how non-PSD correlation input is handled.
func WithSalvaging(sa pseudosqrt.SalvagingAlgorithm) Option {
	return func(o *Options) { o.salvaging = sa }
}

// WithZeroNormPolicy selects the zero-norm row behaviour.
func WithZeroNormPolicy(p ZeroNormPolicy) Option {
	return func(o *Options) { o.zeroNorm = p }
}

// WithLogger routes per-step debug events to l. Default: zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// gatherOptions resolves defaults, applies setters in order and validates.
func gatherOptions(opts ...Option) (Options, error) {
	o := Options{
		retained:  DefaultRetainedPercentage,
		salvaging: DefaultSalvaging,
		zeroNorm:  ZeroNormFail,
		logger:    zerolog.Nop(),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	if o.reducer == nil {
		o.reducer = pseudosqrt.NewReducer()
	}
	if !(o.retained > 0 && o.retained <= 1) {
		return o, fmt.Errorf("retained percentage %g outside (0,1]: %w", o.retained, ErrInvalidOption)
	}
	switch o.salvaging {
	case pseudosqrt.None, pseudosqrt.Spectral, pseudosqrt.Higham:
	default:
		return o, fmt.Errorf("salvaging %v: %w", o.salvaging, ErrInvalidOption)
	}
	switch o.zeroNorm {
	case ZeroNormFail, ZeroNormPropagate:
	default:
		return o, fmt.Errorf("zero-norm policy %v: %w", o.zeroNorm, ErrInvalidOption)
	}

	return o, nil
}
