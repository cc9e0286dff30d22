package renderer

import (
	"fmt"
	"strings"

	"github.com/invperf/invperf"
)

// SnapshotMarkdown renders the snapshot report rows as a markdown document:
// a valuation table followed by the trailing returns over every window.
func SnapshotMarkdown(rows []*invperf.SnapshotReport, currency string) string {
	var b strings.Builder
	if len(rows) == 0 {
		return "(no accounts)\n"
	}
	fmt.Fprintf(&b, "# Portfolio snapshot as of %s\n\n", rows[0].On)

	fmt.Fprint(&b, "## Valuation\n\n")
	fmt.Fprintln(&b, "| Account | Asset | Position | Last Price | Value | Day Change | Cost Basis | Income | Total Gain |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|")
	for _, r := range rows {
		pos, price := "", ""
		if r.Level == invperf.LevelSecurity {
			pos = fmt.Sprintf("%.4g", r.EndPos)
			price = money(r.LastPrice, currency)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			accountLabel(r.Account, r.Level),
			assetLabel(r.Security, r.Level),
			pos,
			price,
			money(r.EndValue, currency),
			gain(r.AbsValueChange, currency),
			money(r.CostBasis, currency),
			gain(r.Income, currency),
			gain(r.TotalGain, currency),
		)
	}

	fmt.Fprint(&b, "\n## Trailing returns\n\n")
	fmt.Fprint(&b, "| Account | Asset |")
	for _, w := range invperf.Windows() {
		fmt.Fprintf(&b, " %s |", w)
	}
	fmt.Fprint(&b, " Annual |\n")
	fmt.Fprint(&b, "|:---|:---|")
	for range invperf.Windows() {
		fmt.Fprint(&b, "---:|")
	}
	fmt.Fprint(&b, "---:|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s |", accountLabel(r.Account, r.Level), assetLabel(r.Security, r.Level))
		for _, w := range invperf.Windows() {
			fmt.Fprintf(&b, " %s |", invperf.Percent(r.Returns[w]))
		}
		fmt.Fprintf(&b, " %s |\n", invperf.Percent(r.AnnualReturnAll))
	}
	return b.String()
}
