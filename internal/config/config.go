// Package config loads the model description consumed by the cotswapcorr CLI.
//
// A model is read from YAML and then overlaid with COTSWAP_* environment
// variables, so the same file can be rerun with a different salvaging or
// solver without editing it.
package config

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// ErrInvalidModel is returned when a model file decodes but is unusable.
var ErrInvalidModel = errors.New("config: invalid model")

// Solver names accepted by Reduction.Solver.
const (
	SolverJacobi = "jacobi"
	SolverGonum  = "gonum"
)

// Model describes one correlation build.
type Model struct {
	// RateTimes are the N+1 tenor dates in years.
	RateTimes []float64 `yaml:"rate_times"`
	// EvolutionTimes defaults to every reset time when empty.
	EvolutionTimes []float64 `yaml:"evolution_times"`
	// Forwards holds N forward rates.
	Forwards     []float64 `yaml:"forwards"`
	Displacement float64   `yaml:"displacement" env:"COTSWAP_DISPLACEMENT, overwrite"`

	Correlation Correlation `yaml:"correlation"`
	Reduction   Reduction   `yaml:"reduction"`
}

// Correlation is either an explicit matrix or exponential parameters.
type Correlation struct {
	Matrix   [][]float64 `yaml:"matrix"`
	LongTerm float64     `yaml:"long_term" env:"COTSWAP_LONG_TERM_CORR, overwrite"`
	Beta     float64     `yaml:"beta" env:"COTSWAP_BETA, overwrite"`
}

// Reduction selects the rank-reduction settings.
type Reduction struct {
	RetainedPercentage float64 `yaml:"retained_percentage" env:"COTSWAP_RETAINED_PERCENTAGE, overwrite"`
	Salvaging          string  `yaml:"salvaging" env:"COTSWAP_SALVAGING, overwrite"`
	Solver             string  `yaml:"solver" env:"COTSWAP_SOLVER, overwrite"`
	ZeroNorm           string  `yaml:"zero_norm" env:"COTSWAP_ZERO_NORM, overwrite"`
}

// Load decodes a model from r and applies environment overrides through l
// (envconfig.OsLookuper() when nil). Unknown YAML keys are rejected.
func Load(ctx context.Context, r io.Reader, l envconfig.Lookuper) (*Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Model
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode model")
	}
	if l == nil {
		l = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &m, Lookuper: l}); err != nil {
		return nil, errors.Wrap(err, "environment overrides")
	}
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// LoadFile reads path and calls Load with the process environment.
func LoadFile(ctx context.Context, path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read model %s", path)
	}
	m, err := Load(ctx, bytes.NewReader(raw), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "load model %s", path)
	}

	return m, nil
}

func (m *Model) applyDefaults() {
	if m.Reduction.RetainedPercentage == 0 {
		m.Reduction.RetainedPercentage = 1
	}
	m.Reduction.Solver = strings.ToLower(strings.TrimSpace(m.Reduction.Solver))
	if m.Reduction.Solver == "" {
		m.Reduction.Solver = SolverJacobi
	}
}

// Validate performs the structural checks the library cannot express:
// slice lengths and the choice of correlation source. Numeric domains are
// left to the marketmodels constructors.
func (m *Model) Validate() error {
	if len(m.RateTimes) < 2 {
		return errors.Wrapf(ErrInvalidModel, "need at least 2 rate times, got %d", len(m.RateTimes))
	}
	n := len(m.RateTimes) - 1
	if len(m.Forwards) != n {
		return errors.Wrapf(ErrInvalidModel, "%d forwards for %d rates", len(m.Forwards), n)
	}
	if len(m.Correlation.Matrix) > 0 && (m.Correlation.LongTerm != 0 || m.Correlation.Beta != 0) {
		return errors.Wrap(ErrInvalidModel, "correlation: matrix and exponential parameters are exclusive")
	}
	switch m.Reduction.Solver {
	case SolverJacobi, SolverGonum:
	default:
		return errors.Wrapf(ErrInvalidModel, "unknown solver %q", m.Reduction.Solver)
	}

	return nil
}
