package invperf

// SnapshotReport holds the position of one security, one cash balance, or an
// aggregate of either, as of a single date, together with trailing returns
// over the standard windows (previous business day, week, four weeks, three
// months, year, three years, year to date, inception).
//
// End-of-window figures are scalars; start-of-window figures are keyed by
// Window since every window opens on a different date.
type SnapshotReport struct {
	Account  string
	Security string // empty for cash and aggregates
	Level    AggregationLevel
	On       Date

	EndPos      float64
	LastPrice   float64
	EndValue    float64
	EndCash     float64
	InitBalance float64
	CostBasis   float64 // open-position basis, long plus short
	Income      float64 // income since inception
	TotalGain   float64 // realized + unrealized + income/expense since inception

	AbsPriceChange float64 // last price against previous business day
	PctPriceChange float64
	AbsValueChange float64

	StartDates  map[Window]Date
	StartPos    map[Window]float64
	StartPrices map[Window]float64
	StartValues map[Window]float64
	StartCash   map[Window]float64
	Incomes     map[Window]float64
	Expenses    map[Window]float64

	MdMaps    map[Window]DateMap
	ArMaps    map[Window]DateMap
	TransMaps map[Window]DateMap

	Returns         map[Window]float64 // Modified Dietz return per window
	AnnualReturnAll float64            // inception return compounded to an annual rate
}

func newSnapshotReport(account, security string, on Date) *SnapshotReport {
	r := &SnapshotReport{
		Account:         account,
		Security:        security,
		On:              on,
		PctPriceChange:  NotAvailable(),
		AnnualReturnAll: NotAvailable(),
		StartDates:      map[Window]Date{},
		StartPos:        map[Window]float64{},
		StartPrices:     map[Window]float64{},
		StartValues:     map[Window]float64{},
		StartCash:       map[Window]float64{},
		Incomes:         map[Window]float64{},
		Expenses:        map[Window]float64{},
		MdMaps:          map[Window]DateMap{},
		ArMaps:          map[Window]DateMap{},
		TransMaps:       map[Window]DateMap{},
		Returns:         map[Window]float64{},
	}
	for _, w := range Windows() {
		r.MdMaps[w] = DateMap{}
		r.ArMaps[w] = DateMap{}
		r.TransMaps[w] = DateMap{}
		r.Returns[w] = NotAvailable()
	}
	return r
}

// NewSnapshotReport builds the leaf snapshot of one security's ledger as of
// the given date. rates may be nil for a cash-equivalent ledger.
func NewSnapshotReport(account, security string, ledger Ledger, rates RateSource, on Date) *SnapshotReport {
	r := newSnapshotReport(account, security, on)
	if len(ledger) == 0 {
		return r
	}

	r.EndPos, r.LastPrice = ledger.positionAsOf(on, rates)
	r.EndValue = r.EndPos * r.LastPrice
	r.EndCash = ledger.cashAsOf(on)
	if rec := ledger.last(on); rec != nil {
		r.CostBasis = rec.LongBasis + rec.ShortBasis
		// Cumulative gain at the last transaction, revalued to the snapshot
		// date's price.
		r.TotalGain = rec.CumulativeTotalGain - rec.CumulativeUnrealized + ledger.unrealizedAsOf(on, rates)
	}

	first := ledger.FirstDate()
	for _, w := range Windows() {
		start := w.Start(on, first)
		r.StartDates[w] = start
		pos, price := ledger.positionAsOf(start, rates)
		r.StartPos[w] = pos
		r.StartPrices[w] = price
		r.StartValues[w] = pos * price
		r.StartCash[w] = ledger.cashAsOf(start)

		for i := range ledger {
			tv := ledger[i].Values
			if !tv.Date.After(start) || tv.Date.After(on) {
				continue
			}
			r.Incomes[w] += tv.Income
			r.Expenses[w] += tv.Expense
			r.MdMaps[w].Add(tv.Date, tv.flow())
			r.ArMaps[w].Add(tv.Date, tv.flow()+tv.Income+tv.Expense)
			if tv.Transfer != 0 {
				r.TransMaps[w].Add(tv.Date, tv.Transfer)
			}
		}
		if abs(r.StartValues[w]) > valueEpsilon {
			r.MdMaps[w].Add(start, 0)
			r.ArMaps[w].Add(start, 0)
		}
		if abs(r.EndValue) > valueEpsilon {
			r.MdMaps[w].Add(on, 0)
			r.ArMaps[w].Add(on, 0)
		}
	}
	r.Income = r.Incomes[WindowAll]

	r.AbsPriceChange = r.LastPrice - r.StartPrices[WindowPrev]
	if r.StartPrices[WindowPrev] != 0 {
		r.PctPriceChange = r.AbsPriceChange / r.StartPrices[WindowPrev]
	}
	r.AbsValueChange = r.EndValue - r.StartValues[WindowPrev]

	r.RecomputeReturns()
	return r
}

// RecomputeReturns derives the per-window returns from the snapshot's own
// values and flow maps, and annualizes the inception window. As with date
// range reports, aggregate returns are re-derived from combined flows rather
// than averaged.
func (r *SnapshotReport) RecomputeReturns() {
	for _, w := range Windows() {
		r.Returns[w] = ModifiedDietz(r.StartValues[w], r.EndValue, r.Incomes[w], r.Expenses[w], r.MdMaps[w])
	}

	all := r.ArMaps[WindowAll]
	start := r.StartDates[WindowAll]
	if r.StartValues[WindowAll] != 0 {
		all.Add(start, -r.StartValues[WindowAll])
	}
	if r.EndValue != 0 {
		all.Add(r.On, r.EndValue)
	}
	r.AnnualReturnAll = AnnualizedReturn(all, r.Returns[WindowAll])
	if r.StartValues[WindowAll] != 0 {
		all.Add(start, r.StartValues[WindowAll])
	}
	if r.EndValue != 0 {
		all.Add(r.On, -r.EndValue)
	}
}
