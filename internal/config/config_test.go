package config

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("tictactoe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlagSet(), nil)
	require.NoError(t, err)
	require.Equal(t, Config{
		Mode:              ModeWeb,
		HTTPAddr:          "localhost:8080",
		ThinkDelay:        500 * time.Millisecond,
		Theme:             "tesla",
		HeartbeatInterval: 15 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}, cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TICTACTOE_MODE", "console")
	t.Setenv("TICTACTOE_THINK_DELAY", "0s")
	t.Setenv("TICTACTOE_THEME", "classic")

	cfg, err := Load(newFlagSet(), nil)
	require.NoError(t, err)
	require.Equal(t, ModeConsole, cfg.Mode)
	require.Zero(t, cfg.ThinkDelay)
	require.Equal(t, "classic", cfg.Theme)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TICTACTOE_HTTP_ADDR", "0.0.0.0:9000")

	cfg, err := Load(newFlagSet(), []string{"-http-addr", ":8081", "-think-delay", "50ms"})
	require.NoError(t, err)
	require.Equal(t, ":8081", cfg.HTTPAddr)
	require.Equal(t, 50*time.Millisecond, cfg.ThinkDelay)
}

func TestLoadEnvError(t *testing.T) {
	t.Setenv("TICTACTOE_THINK_DELAY", "soon")

	_, err := Load(newFlagSet(), nil)
	require.ErrorContains(t, err, "parse env:")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(newFlagSet(), []string{"-mode", "tui"})
	require.ErrorContains(t, err, `invalid mode "tui"`)

	_, err = Load(newFlagSet(), []string{"-think-delay", "-1s"})
	require.ErrorContains(t, err, "must not be negative")

	_, err = Load(newFlagSet(), []string{"-heartbeat", "0s"})
	require.ErrorContains(t, err, "heartbeat must be positive")
}
