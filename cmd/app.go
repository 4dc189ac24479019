// Package cmd implements the CLI application to compute the money-weighted rate of return of investment contracts.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/mwrr"
	"github.com/etnz/mwrr/config"
	"github.com/etnz/mwrr/xlsx"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands are the subcommands of the application.
var Commands = []subcommands.Command{
	&analyzeCmd{},
	&flowsCmd{},
	&descriptionsCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a configuration file (yaml, toml, json or env). MWRR_ environment variables override it.")
var inputFile = flag.String("input", "", "Path to the statement workbook. Overrides the configured input.")
var Verbose = flag.Bool("v", false, "Log the outcome of every contract.")
var raw = flag.Bool("raw", false, "Print markdown as is, without terminal rendering.")

// stdout is where reports are printed.
var stdout io.Writer = os.Stdout

// LoadConfig loads the application configuration, and applies the command line flags.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *inputFile != "" {
		cfg.Input = *inputFile
	}
	if *Verbose {
		cfg.LogLevel = zerolog.LevelDebugValue
	}
	return cfg, nil
}

// NewLogger returns the console logger on stderr at the configured level.
func NewLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}

// LoadStatement reads the configured statement workbook.
func LoadStatement(cfg *config.Config, log zerolog.Logger) (*xlsx.Workbook, error) {
	wb, err := xlsx.Load(cfg.Input, xlsx.Options{
		BalancesSheet:  cfg.BalancesSheet,
		MovementsSheet: cfg.MovementsSheet,
		Currency:       cfg.Currency,
	})
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("input", cfg.Input).
		Int("balances", len(wb.Balances)).
		Int("movements", len(wb.Movements)).
		Msg("statement loaded")
	if n := wb.Diagnostics.InvalidAmounts; n > 0 {
		log.Warn().Int("invalidAmounts", n).Msg("records with an unreadable amount dropped")
	}
	return wb, nil
}

// NewAnalyzer returns an Analyzer configured with cfg.
func NewAnalyzer(cfg *config.Config, log zerolog.Logger) *mwrr.Analyzer {
	az := mwrr.NewAnalyzer(log)
	az.Classifier = mwrr.NewClassifier(cfg.ExtraPatterns()...)
	az.Solver = cfg.SolverOptions()
	az.Currency = cfg.Currency
	return az
}

// analyze loads the configured statement and computes the rate of every contract.
func analyze() (*config.Config, *mwrr.Analysis, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := NewLogger(cfg)
	wb, err := LoadStatement(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	a := NewAnalyzer(cfg, log).Analyze(wb.Balances, wb.Movements)
	a.Diagnostics = a.Diagnostics.Add(wb.Diagnostics)
	return cfg, a, nil
}

// printMarkdown renders md for the terminal, unless -raw is set.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(160))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
