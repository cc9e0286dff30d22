package renderer

import (
	"fmt"
	"strings"

	"github.com/invperf/invperf"
)

// FromToMarkdown renders the date range report rows as a markdown document.
// Rows are expected in portfolio order: securities first, then the account
// aggregates, with the portfolio-wide rows last.
func FromToMarkdown(rows []*invperf.FromToReport, currency string) string {
	var b strings.Builder
	if len(rows) == 0 {
		return "(no accounts)\n"
	}
	fmt.Fprintf(&b, "# Performance from %s to %s\n\n", rows[0].From, rows[0].To)

	fmt.Fprintln(&b, "| Account | Asset | Start Value | End Value | Income | Expense | Realized | Unrealized | Total Gain | Return | Annualized |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, r := range rows {
		cell := "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n"
		if r.Level >= invperf.LevelAllSecurities {
			cell = "| **%s** | **%s** | **%s** | **%s** | **%s** | **%s** | **%s** | **%s** | **%s** | **%s** | **%s** |\n"
		}
		fmt.Fprintf(&b, cell,
			accountLabel(r.Account, r.Level),
			assetLabel(r.Security, r.Level),
			money(r.StartValue, currency),
			money(r.EndValue, currency),
			gain(r.Income, currency),
			gain(r.Expense, currency),
			gain(r.RealizedGain, currency),
			gain(r.UnrealizedGain, currency),
			gain(r.TotalGain, currency),
			invperf.Percent(r.MdReturn),
			invperf.Percent(r.AnnualReturn),
		)
	}
	return b.String()
}

func accountLabel(account string, level invperf.AggregationLevel) string {
	if level >= invperf.LevelAllSecurities {
		return "All"
	}
	return account
}

func assetLabel(security string, level invperf.AggregationLevel) string {
	switch level {
	case invperf.LevelSecurity:
		return security
	case invperf.LevelAccountSecurities, invperf.LevelAllSecurities:
		return "Securities"
	case invperf.LevelAccountCash, invperf.LevelAllCash:
		return "Cash"
	default:
		return "Total"
	}
}

func money(v float64, currency string) string {
	return invperf.M(v, currency).String()
}

func gain(v float64, currency string) string {
	return invperf.M(v, currency).SignedString()
}
