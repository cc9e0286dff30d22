package invperf

// FromToReport holds the performance of one security, one cash balance, or an
// aggregate of either, over an explicit date range. Values are end-of-day:
// the opening balance is the value at the close of From, and flows strictly
// after From through To belong to the window.
//
// Reports are built once (leaf) or produced by merging children; a report is
// never mutated once published.
type FromToReport struct {
	Account  string
	Security string // empty for cash and aggregates
	Level    AggregationLevel
	From, To Date

	StartPos, EndPos     float64
	StartPrice, EndPrice float64
	StartValue, EndValue float64
	StartCash, EndCash   float64
	InitBalance          float64 // cash balance predating the first transaction

	Buy, Sell             float64
	ShortSell, CoverShort float64
	Commission            float64
	Income, Expense       float64
	LongBasis, ShortBasis float64
	RealizedGain          float64
	UnrealizedGain        float64
	TotalGain             float64

	// Date-keyed flow maps, in the transaction sign convention.
	MdMap    DateMap // security cash flows, for Modified Dietz weighting
	ArMap    DateMap // flows plus income/expense, for annualization horizons
	TransMap DateMap // external transfers

	MdReturn     float64 // Modified Dietz return over the window
	AnnualReturn float64 // MdReturn compounded to an annual rate
}

// newFromToReport returns an empty report covering the window, with all maps
// allocated and undefined returns.
func newFromToReport(account, security string, from, to Date) *FromToReport {
	return &FromToReport{
		Account:      account,
		Security:     security,
		From:         from,
		To:           to,
		MdMap:        DateMap{},
		ArMap:        DateMap{},
		TransMap:     DateMap{},
		MdReturn:     NotAvailable(),
		AnnualReturn: NotAvailable(),
	}
}

// NewFromToReport builds the leaf report of one security's ledger over
// [from, to]. rates may be nil for a cash-equivalent ledger.
//
// A window with no activity yields a report with all additive fields zero and
// an undefined return.
func NewFromToReport(account, security string, ledger Ledger, rates RateSource, from, to Date) *FromToReport {
	r := newFromToReport(account, security, from, to)

	r.StartPos, r.StartPrice = ledger.positionAsOf(from, rates)
	r.StartValue = r.StartPos * r.StartPrice
	r.EndPos, r.EndPrice = ledger.positionAsOf(to, rates)
	r.EndValue = r.EndPos * r.EndPrice
	r.StartCash = ledger.cashAsOf(from)
	r.EndCash = ledger.cashAsOf(to)

	if rec := ledger.last(to); rec != nil {
		r.LongBasis = rec.LongBasis
		r.ShortBasis = rec.ShortBasis
	}
	r.UnrealizedGain = ledger.unrealizedAsOf(to, rates) - ledger.unrealizedAsOf(from, rates)

	for i := range ledger {
		tv := ledger[i].Values
		if !tv.Date.After(from) || tv.Date.After(to) {
			continue
		}
		r.Buy += tv.Buy
		r.Sell += tv.Sell
		r.ShortSell += tv.ShortSell
		r.CoverShort += tv.CoverShort
		r.Commission += tv.Commission
		r.Income += tv.Income
		r.Expense += tv.Expense
		r.RealizedGain += ledger[i].PeriodRealized

		r.MdMap.Add(tv.Date, tv.flow())
		r.ArMap.Add(tv.Date, tv.flow()+tv.Income+tv.Expense)
		if tv.Transfer != 0 {
			r.TransMap.Add(tv.Date, tv.Transfer)
		}
	}
	r.TotalGain = r.RealizedGain + r.UnrealizedGain + r.Income + r.Expense

	// Pin the measurement window on the maps when a balance exists at either
	// boundary; zero entries do not disturb aggregation sums.
	if abs(r.StartValue) > valueEpsilon {
		r.MdMap.Add(from, 0)
		r.ArMap.Add(from, 0)
	}
	if abs(r.EndValue) > valueEpsilon {
		r.MdMap.Add(to, 0)
		r.ArMap.Add(to, 0)
	}

	r.RecomputeReturns()
	return r
}

// RecomputeReturns derives MdReturn and AnnualReturn from the report's own
// values and flow maps. It is called on every leaf, and again on every merged
// report: an aggregate's return is always re-derived from the combined flows,
// never averaged from its children.
func (r *FromToReport) RecomputeReturns() {
	r.MdReturn = ModifiedDietz(r.StartValue, r.EndValue, r.Income, r.Expense, r.MdMap)

	// The start value enters the annualization map as a negative flow, the
	// end value as a positive one; both are removed right after so the map
	// stays additive for further aggregation.
	if r.StartValue != 0 {
		r.ArMap.Add(r.From, -r.StartValue)
	}
	if r.EndValue != 0 {
		r.ArMap.Add(r.To, r.EndValue)
	}
	r.AnnualReturn = AnnualizedReturn(r.ArMap, r.MdReturn)
	if r.StartValue != 0 {
		r.ArMap.Add(r.From, r.StartValue)
	}
	if r.EndValue != 0 {
		r.ArMap.Add(r.To, -r.EndValue)
	}
}

// unrealizedAsOf values the open position at the given date against the basis
// of the latest record on or before it.
func (l Ledger) unrealizedAsOf(on Date, rates RateSource) float64 {
	rec := l.last(on)
	if rec == nil || rec.Position == 0 {
		return 0
	}
	pos, price := l.positionAsOf(on, rates)
	if pos > 0 {
		return pos*price - rec.LongBasis
	}
	return pos*price - rec.ShortBasis
}
