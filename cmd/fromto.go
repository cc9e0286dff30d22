package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/invperf/invperf"
	"github.com/invperf/invperf/renderer"
)

// fromToCmd holds the flags for the 'fromto' subcommand.
type fromToCmd struct {
	from, to      string
	portfolioFile string
	currency      string
}

func (*fromToCmd) Name() string     { return "fromto" }
func (*fromToCmd) Synopsis() string { return "display performance over an explicit date range" }
func (*fromToCmd) Usage() string {
	return `ipr fromto -from <date> -to <date> [-p <portfolio>]

  Computes the Modified Dietz return and gain breakdown of every security,
  every account and the whole portfolio over the given date range.

Usage Examples:
$ ipr fromto -from 2025-1-1 -to 2025-6-30

`
}

func (c *fromToCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start of the range (value at that day's close).")
	f.StringVar(&c.to, "to", invperf.Today().String(), "End of the range.")
	f.StringVar(&c.portfolioFile, "p", defaultPortfolioFile, "Portfolio transaction file (JSONL).")
	f.StringVar(&c.currency, "c", "USD", "Display currency.")
}

func (c *fromToCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := invperf.ParseDate(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := invperf.ParseDate(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -to: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := loadPortfolio(c.portfolioFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	rows, err := p.FromToReports(invperf.NewRange(from, to))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.FromToMarkdown(rows, c.currency))
	return subcommands.ExitSuccess
}
