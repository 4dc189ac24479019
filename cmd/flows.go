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

type flowsCmd struct {
	contract string
}

func (*flowsCmd) Name() string { return "flows" }
func (*flowsCmd) Synopsis() string {
	return "display the cash flows used to compute the rate of a contract"
}
func (*flowsCmd) Usage() string {
	return `mwrr flows -c <contract>

  Displays the dated cash flows of a contract: its initial value, deposits,
  withdrawals and final value, with the sign used by the rate computation.
`
}

func (c *flowsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.contract, "c", "", "Contract to display.")
}

func (c *flowsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.contract == "" && f.NArg() == 1 {
		c.contract = f.Arg(0)
	}
	if c.contract == "" {
		fmt.Fprintln(os.Stderr, "Error: a contract is required (-c)")
		return subcommands.ExitUsageError
	}

	_, analysis, err := analyze()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	id := mwrr.ContractID(c.contract)
	res, ok := analysis.Results[id]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown contract %q\n", c.contract)
		return subcommands.ExitFailure
	}
	// a contract without valid flows is still displayed, with the reason.
	flows, _ := analysis.Flows(id)
	printMarkdown(renderer.RenderFlows(renderer.NewFlows(res, flows)))
	return subcommands.ExitSuccess
}
