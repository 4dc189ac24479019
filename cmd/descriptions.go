package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/mwrr"
	"github.com/etnz/mwrr/renderer"
	"github.com/google/subcommands"
)

type descriptionsCmd struct {
	kind         string
	unclassified bool
}

func (*descriptionsCmd) Name() string { return "descriptions" }
func (*descriptionsCmd) Synopsis() string {
	return "list the movement descriptions and how they are classified"
}
func (*descriptionsCmd) Usage() string {
	return `mwrr descriptions [-k <kind>] [-u]

  Lists the distinct descriptions of the movements sheet, most frequent first,
  with their classification as contribution, distribution or unclassified.
  Unclassified movements are ignored by the rate computation; use the
  patterns configuration to recognize more descriptions.
`
}

func (c *descriptionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", "", "Only list the descriptions of this kind: contribution, distribution or unclassified.")
	f.BoolVar(&c.unclassified, "u", false, "Only list unclassified descriptions, same as -k unclassified.")
}

func (c *descriptionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.unclassified {
		c.kind = mwrr.Unclassified.String()
	}
	var (
		kind   mwrr.FlowKind
		filter = c.kind != ""
	)
	if filter {
		var err error
		if kind, err = mwrr.ParseFlowKind(c.kind); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	wb, err := LoadStatement(cfg, NewLogger(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	counts := mwrr.NewClassifier(cfg.ExtraPatterns()...).Describe(wb.Movements)
	if filter {
		var filtered []mwrr.DescriptionCount
		for _, dc := range counts {
			if dc.Kind == kind {
				filtered = append(filtered, dc)
			}
		}
		counts = filtered
	}
	printMarkdown(renderer.RenderDescriptions(counts))
	return subcommands.ExitSuccess
}
