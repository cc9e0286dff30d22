package renderer

import (
	"fmt"
	"strings"

	"github.com/invperf/invperf"
)

// LedgerMarkdown renders one security's cumulative position ledger, one row
// per transaction.
func LedgerMarkdown(account, security string, ledger invperf.Ledger, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Ledger %s / %s\n\n", account, security)
	if len(ledger) == 0 {
		fmt.Fprintln(&b, "(no transactions)")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Position | Price | Open Value | Long Basis | Short Basis | Unrealized | Realized | Inc/Exp | Total Gain |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|")
	for i := range ledger {
		rec := &ledger[i]
		fmt.Fprintf(&b, "| %s | %.4g | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			rec.Values.Date,
			rec.Position,
			money(rec.MarketPrice, currency),
			money(rec.OpenValue, currency),
			money(rec.LongBasis, currency),
			money(rec.ShortBasis, currency),
			gain(rec.CumulativeUnrealized, currency),
			gain(rec.PeriodRealized, currency),
			gain(rec.PeriodIncomeExpense, currency),
			gain(rec.CumulativeTotalGain, currency),
		)
	}
	return b.String()
}
