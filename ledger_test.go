package invperf

import (
	"testing"
	"time"
)

func TestComputeLedger_LongLifecycle(t *testing.T) {
	rates := priceTable(map[Date]float64{
		day(2025, time.January, 10):  10,
		day(2025, time.February, 10): 11,
	})
	txns := []TransactionValues{
		buyTx(day(2025, time.January, 10), 1, 1000, 10, 100),
		sellTx(day(2025, time.February, 10), 1, 550, 5, 50),
	}
	ledger := ComputeLedger(txns, rates)
	if len(ledger) != 2 {
		t.Fatalf("len(ledger) = %d, want 2", len(ledger))
	}

	open := ledger[0]
	approx(t, "open.Position", open.Position, 100)
	approx(t, "open.MarketPrice", open.MarketPrice, 10)
	approx(t, "open.LongBasis", open.LongBasis, 1010)
	approx(t, "open.ShortBasis", open.ShortBasis, 0)
	approx(t, "open.OpenValue", open.OpenValue, 1000)
	approx(t, "open.CumulativeUnrealized", open.CumulativeUnrealized, -10)
	approx(t, "open.PeriodRealized", open.PeriodRealized, 0)
	approx(t, "open.CumulativeTotalGain", open.CumulativeTotalGain, -10)

	sell := ledger[1]
	approx(t, "sell.Position", sell.Position, 50)
	approx(t, "sell.LongBasis", sell.LongBasis, 505)
	approx(t, "sell.OpenValue", sell.OpenValue, 550)
	approx(t, "sell.CumulativeUnrealized", sell.CumulativeUnrealized, 45)
	// proceeds less the basis given up, commission included: 550 - 505 - 5
	approx(t, "sell.PeriodRealized", sell.PeriodRealized, 40)
	// price move on the 50 remaining shares
	approx(t, "sell.PeriodUnrealized", sell.PeriodUnrealized, 50)
	approx(t, "sell.CumulativeTotalGain", sell.CumulativeTotalGain, 85)
}

func TestComputeLedger_ShortLifecycle(t *testing.T) {
	rates := priceTable(map[Date]float64{
		day(2025, time.March, 3): 20,
		day(2025, time.April, 1): 15,
	})
	txns := []TransactionValues{
		shortTx(day(2025, time.March, 3), 1, 2000, 10, 100),
		coverTx(day(2025, time.April, 1), 1, 1500, 10, 100),
	}
	ledger := ComputeLedger(txns, rates)

	short := ledger[0]
	approx(t, "short.Position", short.Position, -100)
	approx(t, "short.LongBasis", short.LongBasis, 0)
	approx(t, "short.ShortBasis", short.ShortBasis, -1990)
	approx(t, "short.OpenValue", short.OpenValue, -2000)
	approx(t, "short.CumulativeUnrealized", short.CumulativeUnrealized, -10)

	cover := ledger[1]
	approx(t, "cover.Position", cover.Position, 0)
	approx(t, "cover.ShortBasis", cover.ShortBasis, 0)
	approx(t, "cover.CumulativeUnrealized", cover.CumulativeUnrealized, 0)
	// shorted at 20, covered at 15, less both commissions
	approx(t, "cover.PeriodRealized", cover.PeriodRealized, 480)
	approx(t, "cover.CumulativeTotalGain", cover.CumulativeTotalGain, 480)
}

func TestComputeLedger_BasisExclusivity(t *testing.T) {
	rates := priceTable(map[Date]float64{day(2025, time.January, 2): 10})
	txns := []TransactionValues{
		buyTx(day(2025, time.January, 2), 1, 100, 0, 10),
		sellTx(day(2025, time.January, 3), 1, 100, 0, 10),
		shortTx(day(2025, time.January, 6), 1, 50, 0, 5),
		coverTx(day(2025, time.January, 7), 1, 50, 0, 5),
	}
	for i, rec := range ComputeLedger(txns, rates) {
		if rec.LongBasis < 0 {
			t.Errorf("record %d: LongBasis = %v, want >= 0", i, rec.LongBasis)
		}
		if rec.ShortBasis > 0 {
			t.Errorf("record %d: ShortBasis = %v, want <= 0", i, rec.ShortBasis)
		}
		if rec.LongBasis != 0 && rec.ShortBasis != 0 {
			t.Errorf("record %d: both bases non-zero: %v / %v", i, rec.LongBasis, rec.ShortBasis)
		}
	}
}

func TestComputeLedger_PositionSnap(t *testing.T) {
	rates := priceTable(map[Date]float64{day(2025, time.May, 1): 10})
	txns := []TransactionValues{
		buyTx(day(2025, time.May, 1), 1, 30, 0, 3),
		sellTx(day(2025, time.May, 2), 1, 29.996, 0, 2.9996),
	}
	ledger := ComputeLedger(txns, rates)
	closed := ledger[1]
	if closed.Position != 0 {
		t.Errorf("Position = %v, want exactly 0", closed.Position)
	}
	approx(t, "closed.LongBasis", closed.LongBasis, 0)
	approx(t, "closed.CumulativeUnrealized", closed.CumulativeUnrealized, 0)
}

func TestComputeLedger_SplitCarriesPositionNotBasis(t *testing.T) {
	rates := priceTable(map[Date]float64{
		day(2025, time.January, 10):  10,
		day(2025, time.February, 2):  5,
		day(2025, time.February, 15): 5,
	}, Split{Date: day(2025, time.February, 1), Numerator: 2, Denominator: 1})
	txns := []TransactionValues{
		buyTx(day(2025, time.January, 10), 1, 1000, 10, 100),
		incomeTx(day(2025, time.February, 15), 1, 5),
	}
	ledger := ComputeLedger(txns, rates)

	rec := ledger[1]
	approx(t, "rec.Position", rec.Position, 200)
	approx(t, "rec.MarketPrice", rec.MarketPrice, 5)
	approx(t, "rec.LongBasis", rec.LongBasis, 1010)
	approx(t, "rec.OpenValue", rec.OpenValue, 1000)
	// a split moves no value
	approx(t, "rec.CumulativeUnrealized", rec.CumulativeUnrealized, -10)
	approx(t, "rec.PeriodUnrealized", rec.PeriodUnrealized, 0)
	approx(t, "rec.PeriodIncomeExpense", rec.PeriodIncomeExpense, 5)
	approx(t, "rec.CumulativeTotalGain", rec.CumulativeTotalGain, -5)
}

func TestLedger_PositionAsOf_AdjustsForSplits(t *testing.T) {
	rates := priceTable(map[Date]float64{
		day(2025, time.January, 10): 10,
		day(2025, time.February, 2): 5,
	}, Split{Date: day(2025, time.February, 1), Numerator: 2, Denominator: 1})
	ledger := ComputeLedger([]TransactionValues{
		buyTx(day(2025, time.January, 10), 1, 1000, 0, 100),
	}, rates)

	pos, price := ledger.positionAsOf(day(2025, time.February, 10), rates)
	approx(t, "pos", pos, 200)
	approx(t, "price", price, 5)

	pos, price = ledger.positionAsOf(day(2025, time.January, 20), rates)
	approx(t, "pos before split", pos, 100)
	approx(t, "price before split", price, 10)
}

func TestComputeLedger_Empty(t *testing.T) {
	if got := ComputeLedger(nil, nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestLedger_CashAsOf(t *testing.T) {
	ledger := ComputeLedger([]TransactionValues{
		depositTx(day(2025, time.January, 2), 1, 500),
		depositTx(day(2025, time.March, 3), 1, 1000),
	}, nil)
	approx(t, "cash before", ledger.cashAsOf(day(2025, time.January, 1)), 0)
	approx(t, "cash mid", ledger.cashAsOf(day(2025, time.February, 1)), 500)
	approx(t, "cash after", ledger.cashAsOf(day(2025, time.December, 31)), 1500)
}
