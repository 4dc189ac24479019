package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/mwrr"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, mwrr.DefaultSolver, cfg.SolverOptions())
	require.Empty(t, cfg.ExtraPatterns())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mwrr.yaml")
	content := `
input: statement.xlsx
currency: usd
solver:
  max_iterations: 20
patterns:
  contribution:
    - APORTACION
  distribution:
    - RETIRO SPEI
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "statement.xlsx", cfg.Input)
	require.Equal(t, "USD", cfg.Currency)
	require.Equal(t, 20, cfg.Solver.MaxIterations)
	require.Equal(t, 0.1, cfg.Solver.Guess)
	require.Equal(t, []mwrr.Pattern{
		{Kind: mwrr.Contribution, Text: "APORTACION"},
		{Kind: mwrr.Distribution, Text: "RETIRO SPEI"},
	}, cfg.ExtraPatterns())
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mwrr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: file.xlsx\n"), 0o644))

	t.Setenv("MWRR_INPUT", "env.xlsx")
	t.Setenv("MWRR_SOLVER_TOLERANCE", "1e-6")
	t.Setenv("MWRR_PATTERNS_CONTRIBUTION", "APORTACION, ABONO ,")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "env.xlsx", cfg.Input)
	require.Equal(t, 1e-6, cfg.Solver.Tolerance)
	require.Equal(t, []string{"APORTACION", "ABONO"}, cfg.Patterns.Contribution)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"unknown currency", func(c *Config) { c.Currency = "XYZ" }, "unknown currency"},
		{"lower case currency", func(c *Config) { c.Currency = "mxn" }, "uppercase"},
		{"no input", func(c *Config) { c.Input = "" }, "Config.Input"},
		{"log level", func(c *Config) { c.LogLevel = "verbose" }, "Config.LogLevel"},
		{"tolerance", func(c *Config) { c.Solver.Tolerance = 0 }, "Config.Solver.Tolerance"},
		{"guess", func(c *Config) { c.Solver.Guess = -1 }, "Config.Solver.Guess"},
		{"iterations", func(c *Config) { c.Solver.MaxIterations = -1 }, "Config.Solver.MaxIterations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
	require.NoError(t, Default().Validate())
}

func TestParseList(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, parseList(" a ,, b "))
	require.Equal(t, []string{"a", "b"}, parseList([]any{"a", " b"}))
	require.Empty(t, parseList(nil))
}
