package invperf

import (
	"testing"
	"time"
)

func snapshotLedger() (Ledger, *RateHistory) {
	rates := priceTable(map[Date]float64{
		day(2025, time.January, 15): 10,
		day(2025, time.June, 20):    11,
		day(2025, time.June, 30):    12,
	})
	txns := []TransactionValues{
		buyTx(day(2025, time.January, 15), 1, 1000, 10, 100),
	}
	return ComputeLedger(txns, rates), rates
}

func TestNewSnapshotReport(t *testing.T) {
	ledger, rates := snapshotLedger()
	on := day(2025, time.June, 30) // a Monday
	r := NewSnapshotReport("broker", "ACME", ledger, rates, on)

	approx(t, "EndPos", r.EndPos, 100)
	approx(t, "LastPrice", r.LastPrice, 12)
	approx(t, "EndValue", r.EndValue, 1200)
	approx(t, "CostBasis", r.CostBasis, 1010)
	approx(t, "TotalGain", r.TotalGain, 190)

	approx(t, "AbsPriceChange", r.AbsPriceChange, 1)
	approx(t, "PctPriceChange", r.PctPriceChange, 0.09090909090909091)
	approx(t, "AbsValueChange", r.AbsValueChange, 100)

	if got := r.StartDates[WindowAll]; got != day(2025, time.January, 14) {
		t.Errorf("StartDates[All] = %s, want 2025-01-14", got)
	}
	approx(t, "StartValues[Prev]", r.StartValues[WindowPrev], 1100)
	approx(t, "StartValues[All]", r.StartValues[WindowAll], 0)

	// a window holding the whole history measures from zero capital
	approx(t, "Returns[All]", r.Returns[WindowAll], 0.18811881188118812)
	approx(t, "Returns[YTD]", r.Returns[WindowYTD], 0.18811881188118812)
	// quiet windows only see the price move
	approx(t, "Returns[Prev]", r.Returns[WindowPrev], 0.09090909090909091)
	approx(t, "Returns[Week]", r.Returns[WindowWeek], 0.09090909090909091)

	approx(t, "AnnualReturnAll", r.AnnualReturnAll, 0.4608362137324795)

	// annualization pins removed again
	approx(t, "ArMaps[All][on]", r.ArMaps[WindowAll][on], 0)
}

func TestNewSnapshotReport_EmptyLedger(t *testing.T) {
	r := NewSnapshotReport("broker", "ACME", nil, nil, day(2025, time.June, 30))
	approx(t, "EndValue", r.EndValue, 0)
	for _, w := range Windows() {
		if IsAvailable(r.Returns[w]) {
			t.Errorf("Returns[%s] = %v, want undefined", w, r.Returns[w])
		}
	}
	if IsAvailable(r.AnnualReturnAll) {
		t.Errorf("AnnualReturnAll = %v, want undefined", r.AnnualReturnAll)
	}
}
