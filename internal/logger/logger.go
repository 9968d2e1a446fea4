// Package logger configures the process-wide zerolog logger for the CLI.
package logger

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Options selects the log level and sink. Flags win over the environment.
type Options struct {
	// Environment is "dev", "test" or "prod"; empty reads $ENVIRONMENT.
	Environment string
	Debug       bool
	Trace       bool
	Quiet       bool
	// Out defaults to os.Stderr.
	Out io.Writer
	// NoColor disables ANSI colours in the console writer.
	NoColor bool
}

// LoadDotEnv loads .env from the working directory when present. A missing
// file is not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// Level resolves the effective level: trace for dev/test, info for prod and
// anything unknown, then --debug, --trace or --quiet override.
func Level(environment string, debug, trace, quiet bool) zerolog.Level {
	var lvl zerolog.Level
	switch strings.ToLower(strings.TrimSpace(environment)) {
	case "dev", "test":
		lvl = zerolog.TraceLevel
	default:
		lvl = zerolog.InfoLevel
	}

	switch {
	case debug:
		lvl = zerolog.DebugLevel
	case trace:
		lvl = zerolog.TraceLevel
	case quiet:
		lvl = zerolog.WarnLevel
	}

	return lvl
}

// Init installs a console logger as log.Logger and returns it.
//
// Example usage:
//
//	l := logger.Init(logger.Options{Debug: debugFlag}) <- in the root command's PersistentPreRunE
func Init(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	environment := opts.Environment
	if environment == "" {
		environment = os.Getenv("ENVIRONMENT")
	}
	if environment == "" {
		environment = "prod"
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl := Level(environment, opts.Debug, opts.Trace, opts.Quiet)
	l := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: opts.NoColor}).
		Level(lvl).
		With().
		Timestamp().
		Str("environment", strings.ToLower(environment)).
		Logger()
	log.Logger = l

	l.Debug().Str("level", lvl.String()).Msg("logger initialised")

	return l
}
