package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cotswap/internal/logger"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		env                 string
		debug, trace, quiet bool
		want                zerolog.Level
	}{
		{"prod", false, false, false, zerolog.InfoLevel},
		{"", false, false, false, zerolog.InfoLevel},
		{"staging", false, false, false, zerolog.InfoLevel},
		{"DEV", false, false, false, zerolog.TraceLevel},
		{"test", false, false, false, zerolog.TraceLevel},
		{"prod", true, false, false, zerolog.DebugLevel},
		{"prod", false, true, false, zerolog.TraceLevel},
		{"dev", false, false, true, zerolog.WarnLevel},
		{"prod", true, true, true, zerolog.DebugLevel},
	}
	for _, tc := range tests {
		got := logger.Level(tc.env, tc.debug, tc.trace, tc.quiet)
		assert.Equalf(t, tc.want, got, "%+v", tc)
	}
}

func TestInit_WritesToOut(t *testing.T) {
	var buf bytes.Buffer
	l := logger.Init(logger.Options{Environment: "prod", Debug: true, Out: &buf, NoColor: true})

	l.Info().Str("k", "v").Msg("hello")
	out := buf.String()
	assert.Contains(t, out, "logger initialised")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "k=v")
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, logger.LoadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("COTSWAP_LOGGER_TEST=yes\n"), 0o600))
	t.Setenv("COTSWAP_LOGGER_TEST", "")
	require.NoError(t, os.Unsetenv("COTSWAP_LOGGER_TEST"))
	require.NoError(t, logger.LoadDotEnv(path))
	assert.Equal(t, "yes", os.Getenv("COTSWAP_LOGGER_TEST"))
}
