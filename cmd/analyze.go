package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/mwrr/renderer"
	"github.com/google/subcommands"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	json  bool
	query string
}

func (*analyzeCmd) Name() string { return "analyze" }
func (*analyzeCmd) Synopsis() string {
	return "compute the annual money-weighted rate of return of every contract"
}
func (*analyzeCmd) Usage() string {
	return `mwrr analyze [-json] [-q <jsonpath>]

  Reads the statement workbook, builds the cash flows of every contract from
  its first and last valuations and its deposits and withdrawals, and
  reports the annual rate that zeroes their net present value.

Usage Examples:
# Report on the default statement.
$ mwrr analyze

# Rates of the contracts that could be calculated, as JSON.
$ mwrr -input statement.xlsx analyze -q '$.results[?(@.status=="ok")].rate'

`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the results as JSON.")
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the JSON results. Implies -json.")
}

func (c *analyzeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, analysis, err := analyze()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.json && c.query == "" {
		printMarkdown(renderer.RenderReport(renderer.NewReport(analysis, cfg.Input)))
		return subcommands.ExitSuccess
	}

	out, err := queryJSON(analysis, c.query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, string(out))
	return subcommands.ExitSuccess
}

// queryJSON marshals v as indented JSON, after applying the JSONPath query if any.
func queryJSON(v any, query string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding results: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	if query != "" {
		doc, err = jsonpath.Get(query, doc)
		if err != nil {
			return nil, fmt.Errorf("evaluating query %q: %w", query, err)
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}
