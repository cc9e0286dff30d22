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

// ledgerCmd holds the flags for the 'ledger' subcommand.
type ledgerCmd struct {
	account       string
	security      string
	portfolioFile string
	currency      string
}

func (*ledgerCmd) Name() string { return "ledger" }
func (*ledgerCmd) Synopsis() string {
	return "display the cumulative position ledger of one security"
}
func (*ledgerCmd) Usage() string {
	return `ipr ledger -a <account> -s <security> [-p <portfolio>]

  Shows the running position, cost basis and gain components of one security,
  one row per transaction.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account holding the security.")
	f.StringVar(&c.security, "s", "", "Security ticker.")
	f.StringVar(&c.portfolioFile, "p", defaultPortfolioFile, "Portfolio transaction file (JSONL).")
	f.StringVar(&c.currency, "c", "USD", "Display currency.")
}

func (c *ledgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.security == "" {
		fmt.Fprintln(os.Stderr, "Error: both -a and -s are required")
		return subcommands.ExitUsageError
	}
	p, err := loadPortfolio(c.portfolioFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := p.Normalize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, acct := range p.Accounts {
		if acct.Name != c.account {
			continue
		}
		for hi := range acct.Holdings {
			h := &acct.Holdings[hi]
			if h.Ticker != c.security {
				continue
			}
			var rates invperf.RateSource
			if h.Rates != nil {
				rates = h.Rates
			}
			ledger := invperf.ComputeLedger(h.Transactions, rates)
			printMarkdown(renderer.LedgerMarkdown(acct.Name, h.Ticker, ledger, c.currency))
			return subcommands.ExitSuccess
		}
	}
	fmt.Fprintf(os.Stderr, "Error: no security %q in account %q\n", c.security, c.account)
	return subcommands.ExitFailure
}
