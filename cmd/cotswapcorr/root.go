package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/cotswap/internal/logger"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries state shared by the subcommands once flags are parsed.
type app struct {
	debug   bool
	trace   bool
	quiet   bool
	noColor bool
	log     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}
	cmd := &cobra.Command{
		Use:   "cotswapcorr",
		Short: "Coterminal swap-rate correlation from forward-rate correlation",
		Long: `cotswapcorr rank-reduces a forward-rate correlation matrix, maps it to
coterminal swap rates through the zed matrix of an LMM curve state and prints
the unit-norm pseudo-root for every evolution step.

Environment:
  ENVIRONMENT                  dev|test|prod, selects the default log level
  COTSWAP_SALVAGING            none|spectral|higham
  COTSWAP_SOLVER               jacobi|gonum
  COTSWAP_RETAINED_PERCENTAGE  share of eigenvalue mass to keep, in (0,1]
  COTSWAP_ZERO_NORM            fail|propagate
  COTSWAP_DISPLACEMENT         zed-matrix displacement

Example:
  cotswapcorr build --config model.yaml
  COTSWAP_SALVAGING=higham cotswapcorr build -c model.yaml --format text`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.LoadDotEnv(); err != nil {
				return err
			}
			a.log = logger.Init(logger.Options{
				Debug:   a.debug,
				Trace:   a.trace,
				Quiet:   a.quiet,
				NoColor: a.noColor,
				Out:     cmd.ErrOrStderr(),
			})

			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "sets log level to debug")
	cmd.PersistentFlags().BoolVar(&a.trace, "trace", false, "sets log level to trace")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "only log warnings and errors")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured log output")

	cmd.AddCommand(newBuildCmd(a))

	return cmd
}
