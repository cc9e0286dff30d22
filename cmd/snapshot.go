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

// snapshotCmd holds the flags for the 'snapshot' subcommand.
type snapshotCmd struct {
	date          string
	portfolioFile string
	currency      string
}

func (*snapshotCmd) Name() string { return "snapshot" }
func (*snapshotCmd) Synopsis() string {
	return "display portfolio valuation and trailing returns as of a date"
}
func (*snapshotCmd) Usage() string {
	return `ipr snapshot [-d <date>] [-p <portfolio>]

  Values every position as of the given date and computes trailing returns
  over the standard windows (previous day, week, four weeks, three months,
  year, three years, year to date, inception).
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", invperf.Today().String(), "Snapshot date.")
	f.StringVar(&c.portfolioFile, "p", defaultPortfolioFile, "Portfolio transaction file (JSONL).")
	f.StringVar(&c.currency, "c", "USD", "Display currency.")
}

func (c *snapshotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := invperf.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := loadPortfolio(c.portfolioFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	rows, err := p.SnapshotReports(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SnapshotMarkdown(rows, c.currency))
	return subcommands.ExitSuccess
}
