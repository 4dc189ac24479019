// Package config reads the settings of the mwrr command from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/mwrr"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding configuration keys,
// e.g. MWRR_INPUT or MWRR_SOLVER_MAX_ITERATIONS.
const EnvPrefix = "MWRR"

type SolverConfig struct {
	Guess         float64 `validate:"gt=-1"`
	MaxIterations int     `validate:"gte=0"`
	Tolerance     float64 `validate:"gt=0"`
}

type PatternsConfig struct {
	Contribution []string
	Distribution []string
}

type Config struct {
	Input          string `validate:"required"`
	BalancesSheet  string `validate:"required"`
	MovementsSheet string `validate:"required"`
	Currency       string `validate:"required,len=3,uppercase"`
	LogLevel       string `validate:"oneof=trace debug info warn error"`
	Solver         SolverConfig
	Patterns       PatternsConfig
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Input:          "data_actividad.xlsx",
		BalancesSheet:  "balances",
		MovementsSheet: "movements",
		Currency:       "MXN",
		LogLevel:       "info",
		Solver: SolverConfig{
			Guess:         mwrr.DefaultSolver.Guess,
			MaxIterations: mwrr.DefaultSolver.MaxIterations,
			Tolerance:     mwrr.DefaultSolver.Tolerance,
		},
	}
}

// Load reads the configuration file at path, if not empty, and the MWRR_
// environment variables. Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	def := Default()
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("input", def.Input)
	v.SetDefault("balances_sheet", def.BalancesSheet)
	v.SetDefault("movements_sheet", def.MovementsSheet)
	v.SetDefault("currency", def.Currency)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("solver.guess", def.Solver.Guess)
	v.SetDefault("solver.max_iterations", def.Solver.MaxIterations)
	v.SetDefault("solver.tolerance", def.Solver.Tolerance)
	v.SetDefault("patterns.contribution", "")
	v.SetDefault("patterns.distribution", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		}
	}

	cfg := &Config{
		Input:          v.GetString("input"),
		BalancesSheet:  v.GetString("balances_sheet"),
		MovementsSheet: v.GetString("movements_sheet"),
		Currency:       strings.ToUpper(strings.TrimSpace(v.GetString("currency"))),
		LogLevel:       strings.ToLower(v.GetString("log_level")),
		Solver: SolverConfig{
			Guess:         v.GetFloat64("solver.guess"),
			MaxIterations: v.GetInt("solver.max_iterations"),
			Tolerance:     v.GetFloat64("solver.tolerance"),
		},
		Patterns: PatternsConfig{
			Contribution: parseList(v.Get("patterns.contribution")),
			Distribution: parseList(v.Get("patterns.distribution")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs error
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = errors.Join(errs, fmt.Errorf("invalid %s: %q does not satisfy %q", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag()))
		}
	}
	if c.Currency != "" && money.GetCurrency(c.Currency) == nil {
		errs = errors.Join(errs, fmt.Errorf("invalid Config.Currency: unknown currency %q", c.Currency))
	}
	return errs
}

// SolverOptions returns the rate solver configured.
func (c *Config) SolverOptions() mwrr.Solver {
	return mwrr.Solver{
		Guess:         c.Solver.Guess,
		MaxIterations: c.Solver.MaxIterations,
		Tolerance:     c.Solver.Tolerance,
	}
}

// ExtraPatterns returns the configured description patterns, to complete the default table.
func (c *Config) ExtraPatterns() []mwrr.Pattern {
	var patterns []mwrr.Pattern
	for _, p := range c.Patterns.Contribution {
		patterns = append(patterns, mwrr.Pattern{Kind: mwrr.Contribution, Text: p})
	}
	for _, p := range c.Patterns.Distribution {
		patterns = append(patterns, mwrr.Pattern{Kind: mwrr.Distribution, Text: p})
	}
	return patterns
}

// parseList reads a list either from a config file list or a comma separated string.
func parseList(raw any) []string {
	var items []string
	switch raw := raw.(type) {
	case string:
		items = strings.Split(raw, ",")
	case []string:
		items = raw
	case []any:
		for _, item := range raw {
			items = append(items, fmt.Sprint(item))
		}
	}
	var result []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
