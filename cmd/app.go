// Package cmd implements the CLI application to compute investment
// performance reports from a portfolio transaction file.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/invperf/invperf"
)

// Commands lists the subcommands a main package registers.
var Commands = []subcommands.Command{
	&fromToCmd{},
	&snapshotCmd{},
	&ledgerCmd{},
	&fmtCmd{},
}

const defaultPortfolioFile = "portfolio.jsonl"

// loadPortfolio reads and decodes the portfolio transaction file.
func loadPortfolio(path string) (*invperf.Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := invperf.DecodePortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return p, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails (for instance when piped to a file).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
