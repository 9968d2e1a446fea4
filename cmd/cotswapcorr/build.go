package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/cotswap/internal/config"
	"github.com/katalvlaran/cotswap/marketmodels"
	"github.com/katalvlaran/cotswap/matrix"
	"github.com/katalvlaran/cotswap/pseudosqrt"
)

const (
	formatJSON = "json"
	formatText = "text"
)

func newBuildCmd(a *app) *cobra.Command {
	var configPath, format string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build swap-rate pseudo-roots from a model file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			if format != formatJSON && format != formatText {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatText)
			}
			m, err := config.LoadFile(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			a.log.Info().
				Str("config", configPath).
				Int("rates", len(m.Forwards)).
				Str("solver", m.Reduction.Solver).
				Msg("model loaded")

			res, err := buildStructure(m, a.log)
			if err != nil {
				return err
			}
			rep, err := newReport(res, m)
			if err != nil {
				return err
			}
			if format == formatText {
				return writeText(cmd.OutOrStdout(), rep)
			}

			return writeJSON(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "model.yaml", "path to the YAML model file")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or text")

	return cmd
}

// buildStructure turns a model into the marketmodels collaborators and runs
// the builder.
func buildStructure(m *config.Model, log zerolog.Logger) (*marketmodels.CotSwapFromFwdCorrelation, error) {
	ed, err := marketmodels.NewEvolutionDescription(m.RateTimes, m.EvolutionTimes)
	if err != nil {
		return nil, err
	}
	cs, err := marketmodels.NewLMMCurveState(m.RateTimes)
	if err != nil {
		return nil, err
	}
	if err = cs.SetOnForwardRates(m.Forwards, 0); err != nil {
		return nil, err
	}

	var corr matrix.Matrix
	if len(m.Correlation.Matrix) > 0 {
		corr, err = matrix.NewDenseFromRows(m.Correlation.Matrix)
	} else {
		corr, err = marketmodels.ExponentialForwardCorrelation(m.RateTimes, m.Correlation.LongTerm, m.Correlation.Beta)
	}
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}

	sa, err := pseudosqrt.ParseSalvagingAlgorithm(m.Reduction.Salvaging)
	if err != nil {
		return nil, err
	}
	zn, err := marketmodels.ParseZeroNormPolicy(m.Reduction.ZeroNorm)
	if err != nil {
		return nil, err
	}
	var solver pseudosqrt.EigenSolver = pseudosqrt.JacobiSolver{}
	if m.Reduction.Solver == config.SolverGonum {
		solver = pseudosqrt.GonumSolver{}
	}

	return marketmodels.NewCotSwapFromFwdCorrelation(corr, cs, m.Displacement, ed,
		marketmodels.WithRankReducer(pseudosqrt.NewReducer(pseudosqrt.WithEigenSolver(solver))),
		marketmodels.WithRetainedPercentage(m.Reduction.RetainedPercentage),
		marketmodels.WithSalvaging(sa),
		marketmodels.WithZeroNormPolicy(zn),
		marketmodels.WithLogger(log),
	)
}

// report is the serialised result of one build.
type report struct {
	NumberOfRates int           `json:"number_of_rates"`
	Times         []float64     `json:"times"`
	Displacement  float64       `json:"displacement"`
	Salvaging     string        `json:"salvaging"`
	Solver        string        `json:"solver"`
	PseudoRoots   [][][]float64 `json:"pseudo_roots"`
}

func newReport(c *marketmodels.CotSwapFromFwdCorrelation, m *config.Model) (report, error) {
	sa, err := pseudosqrt.ParseSalvagingAlgorithm(m.Reduction.Salvaging)
	if err != nil {
		return report{}, err
	}
	rep := report{
		NumberOfRates: c.NumberOfRates(),
		Times:         c.Times(),
		Displacement:  m.Displacement,
		Salvaging:     sa.String(),
		Solver:        m.Reduction.Solver,
	}
	for k, root := range c.PseudoRoots() {
		d, ok := root.(*matrix.Dense)
		if !ok {
			return report{}, fmt.Errorf("step %d: unexpected pseudo-root type %T", k, root)
		}
		rep.PseudoRoots = append(rep.PseudoRoots, d.RawRows())
	}

	return rep, nil
}

func writeJSON(w io.Writer, rep report) error {
	out, err := sonic.ConfigStd.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)

	return err
}

func writeText(w io.Writer, rep report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "rates: %d  steps: %d  displacement: %g  salvaging: %s  solver: %s\n",
		rep.NumberOfRates, len(rep.Times), rep.Displacement, rep.Salvaging, rep.Solver)
	for k, rows := range rep.PseudoRoots {
		fmt.Fprintf(&b, "\nstep %d  t=%.4f\n", k, rep.Times[k])
		for _, row := range rows {
			for _, v := range row {
				fmt.Fprintf(&b, " %10.6f", v)
			}
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())

	return err
}
