package invperf

// positionEpsilon snaps a near-zero running position to exactly zero, so that
// rounding noise never leaves an apparent open position behind a full close.
const positionEpsilon = 0.0005

// basisEpsilon classifies a position as long/short/flat for basis purposes.
const basisEpsilon = 0.00001

// CumulativePositionRecord is one entry of a security's ledger: the running
// position, cost bases and gain components after completion of one
// transaction. Each record's derived fields depend only on the immediately
// preceding record of the same series.
type CumulativePositionRecord struct {
	Values *TransactionValues // originating transaction

	Position    float64 // net signed share count after the transaction
	MarketPrice float64 // market price on the transaction date (1 for cash-equivalents)

	// Running cost bases, commissions included. A long basis is positive,
	// a short basis negative. At most one of the two is non-zero.
	LongBasis  float64
	ShortBasis float64

	OpenValue            float64 // Position * MarketPrice
	CumulativeUnrealized float64 // open value less the applicable basis
	PeriodUnrealized     float64 // unrealized gain since the previous record
	PeriodRealized       float64 // realized gain booked by this transaction
	PeriodIncomeExpense  float64 // net income and expense of this transaction
	PeriodTotalGain      float64 // sum of the three period components
	CumulativeTotalGain  float64 // unrealized plus running realized and income totals
}

// Ledger is the chronological sequence of cumulative position records for one
// security (or for a cash pseudo-security).
type Ledger []CumulativePositionRecord

// ComputeLedger folds a security's chronologically sorted transactions into
// its ledger, one record per transaction, in order.
//
// The input must already be sorted (see SortTransactions); the engine does not
// re-sort and produces undefined balances on out-of-order input. rates may be
// nil for a cash-equivalent, in which case the market price is identically 1.
// An empty input yields an empty ledger.
func ComputeLedger(txns []TransactionValues, rates RateSource) Ledger {
	ledger := make(Ledger, 0, len(txns))

	var cumRealized, cumIncomeExpense float64
	for i := range txns {
		tv := &txns[i]
		rec := CumulativePositionRecord{Values: tv}

		currentRate := 1.0
		if rates != nil {
			currentRate = rates.Rate(tv.Date)
		}
		rec.MarketPrice = 1 / currentRate

		var prev *CumulativePositionRecord
		if i > 0 {
			prev = &ledger[i-1]
		}

		// position, carrying the previous one through any share splits
		splitAdjust := 1.0
		prevMktPrice := 0.0
		if prev == nil {
			rec.Position = tv.SecQuantity
		} else {
			prevMktPrice = prev.MarketPrice
			if rates != nil {
				splitAdjust = rates.AdjustForSplits(prev.Values.Date, currentRate, tv.Date) / currentRate
			}
			rec.Position = prev.Position*splitAdjust + tv.SecQuantity
			if abs(rec.Position) < positionEpsilon {
				rec.Position = 0
			}
		}

		prevPosition := 0.0
		prevLongBasis := 0.0
		prevShortBasis := 0.0
		prevCumUnrealized := 0.0
		if prev != nil {
			prevPosition = prev.Position
			prevLongBasis = prev.LongBasis
			prevShortBasis = prev.ShortBasis
			prevCumUnrealized = prev.CumulativeUnrealized
		}

		// long basis (includes commission)
		switch {
		case rec.Position <= basisEpsilon: // position short or closed
			rec.LongBasis = 0
		case rec.Position >= prevPosition: // same-direction addition
			rec.LongBasis = prevLongBasis - tv.Buy - tv.Commission
		default: // position reduced but still long: scale proportionally
			rec.LongBasis = prevLongBasis * (rec.Position / prevPosition)
		}

		// short basis, symmetric with the sign flipped
		switch {
		case rec.Position >= -basisEpsilon: // position long or closed
			rec.ShortBasis = 0
		case rec.Position <= prevPosition: // same-direction increase in short magnitude
			rec.ShortBasis = prevShortBasis - tv.ShortSell - tv.Commission
		default:
			rec.ShortBasis = prevShortBasis * (rec.Position / prevPosition)
		}

		rec.OpenValue = rec.Position * rec.MarketPrice

		// cumulative unrealized gain against the applicable basis
		switch {
		case rec.Position > 0:
			rec.CumulativeUnrealized = rec.OpenValue - rec.LongBasis
		case rec.Position < 0:
			rec.CumulativeUnrealized = rec.OpenValue - rec.ShortBasis
		default:
			rec.CumulativeUnrealized = 0
		}

		// period unrealized gain
		switch {
		case rec.Position == 0:
			rec.PeriodUnrealized = 0
		case tv.SecQuantity == 0:
			// pure income/expense entry: gain is the change in cumulative
			rec.PeriodUnrealized = rec.CumulativeUnrealized - prevCumUnrealized
		case tv.SecQuantity*rec.Position > 0:
			// added to the existing direction
			rec.PeriodUnrealized = rec.CumulativeUnrealized - prevCumUnrealized
		default:
			// reduced long or short: isolate the price move on the remaining
			// position; the realized part is booked separately below
			rec.PeriodUnrealized = rec.Position * (rec.MarketPrice - prevMktPrice/splitAdjust)
		}

		// period realized gain
		switch {
		case tv.Sell > 0: // sale transaction
			rec.PeriodRealized = tv.Sell + (rec.LongBasis - prevLongBasis) + tv.Commission
		case tv.CoverShort < 0: // cover transaction
			rec.PeriodRealized = tv.CoverShort + (rec.ShortBasis - prevShortBasis) + tv.Commission
		default:
			rec.PeriodRealized = 0
		}
		cumRealized += rec.PeriodRealized

		rec.PeriodIncomeExpense = tv.Income + tv.Expense
		cumIncomeExpense += rec.PeriodIncomeExpense

		rec.PeriodTotalGain = rec.PeriodUnrealized + rec.PeriodRealized + rec.PeriodIncomeExpense
		rec.CumulativeTotalGain = rec.CumulativeUnrealized + cumRealized + cumIncomeExpense

		ledger = append(ledger, rec)
	}
	return ledger
}

// last returns the latest record on or before the given date, or nil.
func (l Ledger) last(on Date) *CumulativePositionRecord {
	var found *CumulativePositionRecord
	for i := range l {
		if l[i].Values.Date.After(on) {
			break
		}
		found = &l[i]
	}
	return found
}

// FirstDate returns the date of the first transaction, or a zero Date for an
// empty ledger.
func (l Ledger) FirstDate() Date {
	if len(l) == 0 {
		return Date{}
	}
	return l[0].Values.Date
}

// positionAsOf returns the split-adjusted position and the market price as of
// the given date, derived from the latest record on or before it.
func (l Ledger) positionAsOf(on Date, rates RateSource) (position, price float64) {
	price = 1.0
	if rates != nil {
		price = 1 / rates.Rate(on)
	}
	rec := l.last(on)
	if rec == nil {
		return 0, price
	}
	adjust := 1.0
	if rates != nil {
		rate := rates.Rate(on)
		adjust = rates.AdjustForSplits(rec.Values.Date, rate, on) / rate
	}
	return rec.Position * adjust, price
}

// cashAsOf returns the cumulated cash effect of all transactions on or before
// the given date.
func (l Ledger) cashAsOf(on Date) float64 {
	var cash float64
	for i := range l {
		if l[i].Values.Date.After(on) {
			break
		}
		cash += l[i].Values.CashEffect
	}
	return cash
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
