package invperf

// AggregationLevel tags a report row with the scope it covers.
type AggregationLevel int

const (
	LevelSecurity          AggregationLevel = iota // one security in one account
	LevelAccountSecurities                         // all securities of one account
	LevelAccountCash                               // one account's cash balance
	LevelAccountTotal                              // one account, securities plus cash
	LevelAllSecurities                             // all securities across accounts
	LevelAllCash                                   // cash across accounts
	LevelAllTotal                                  // everything
)

var levelNames = [...]string{"Sec", "AcctSec", "AcctCash", "AcctSecPlusCash", "AllSec", "AllCash", "AllSecPlusCash"}

func (l AggregationLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "?"
	}
	return levelNames[l]
}

// MergeFromTo combines two reports over the same window into a new one.
// Additive fields are summed and the flow maps merged key-wise; positions and
// prices are dropped since they do not add across securities, and the returns
// are left undefined until RecomputeReturns derives them from the merged
// maps. Neither argument is modified.
func MergeFromTo(a, b *FromToReport) *FromToReport {
	r := newFromToReport(a.Account, a.Security, a.From, a.To)
	if a.Account != b.Account {
		r.Account = ""
	}
	if a.Security != b.Security {
		r.Security = ""
	}

	r.StartValue = a.StartValue + b.StartValue
	r.EndValue = a.EndValue + b.EndValue
	r.StartCash = a.StartCash + b.StartCash
	r.EndCash = a.EndCash + b.EndCash
	r.InitBalance = a.InitBalance + b.InitBalance
	r.Buy = a.Buy + b.Buy
	r.Sell = a.Sell + b.Sell
	r.ShortSell = a.ShortSell + b.ShortSell
	r.CoverShort = a.CoverShort + b.CoverShort
	r.Commission = a.Commission + b.Commission
	r.Income = a.Income + b.Income
	r.Expense = a.Expense + b.Expense
	r.LongBasis = a.LongBasis + b.LongBasis
	r.ShortBasis = a.ShortBasis + b.ShortBasis
	r.RealizedGain = a.RealizedGain + b.RealizedGain
	r.UnrealizedGain = a.UnrealizedGain + b.UnrealizedGain
	r.TotalGain = a.TotalGain + b.TotalGain

	r.MdMap = a.MdMap.Plus(b.MdMap)
	r.ArMap = a.ArMap.Plus(b.ArMap)
	r.TransMap = a.TransMap.Plus(b.TransMap)
	return r
}

// CashFromTo derives the return on an account's cash balance from the
// account's aggregated security report and its cash ledger report. Security
// activity is reflected into the cash balance with its sign reversed: a
// purchase drains cash, income and sale proceeds feed it. External transfers
// move capital in or out of the balance.
func CashFromTo(sec, cash *FromToReport) *FromToReport {
	r := newFromToReport(cash.Account, "", cash.From, cash.To)
	r.InitBalance = cash.InitBalance
	r.StartCash = sec.StartCash + cash.StartCash
	r.EndCash = sec.EndCash + cash.EndCash
	r.StartValue = cleanValue(r.StartCash + r.InitBalance)
	r.EndValue = cleanValue(r.EndCash + r.InitBalance)
	r.StartPos = r.StartValue
	r.EndPos = r.EndValue
	r.Income = cash.Income
	r.Expense = cash.Expense
	r.TransMap = sec.TransMap.Plus(cash.TransMap)
	r.TotalGain = r.Income + r.Expense

	flows := DateMap{}.Minus(cash.TransMap).Minus(sec.ArMap)
	from := adjustedCashStart(r.From, r.StartValue, r.InitBalance, flows)

	if abs(r.StartValue) > valueEpsilon {
		flows.Add(from, 0)
	}
	if abs(r.EndValue) > valueEpsilon {
		flows.Add(r.To, 0)
	}
	r.MdMap = flows
	r.MdReturn = ModifiedDietz(r.StartValue, r.EndValue, r.Income, r.Expense, flows)
	r.ArMap = flows.Clone()
	r.AnnualReturn = annualizedOver(r.ArMap, from, r.StartValue, r.To, r.EndValue, r.MdReturn)
	return r
}

// CombinedFromTo derives the return on an account as a whole, securities and
// cash together. Only external transfers count as flows; trades, income and
// expenses move value inside the account.
func CombinedFromTo(sec, cash *FromToReport) *FromToReport {
	r := newFromToReport(cash.Account, "", cash.From, cash.To)
	r.InitBalance = cash.InitBalance
	r.Buy = sec.Buy
	r.Sell = sec.Sell
	r.ShortSell = sec.ShortSell
	r.CoverShort = sec.CoverShort
	r.Commission = sec.Commission
	r.LongBasis = sec.LongBasis
	r.ShortBasis = sec.ShortBasis
	r.RealizedGain = sec.RealizedGain
	r.UnrealizedGain = sec.UnrealizedGain
	r.Income = sec.Income + cash.Income
	r.Expense = sec.Expense + cash.Expense
	r.StartCash = sec.StartCash + cash.StartCash
	r.EndCash = sec.EndCash + cash.EndCash
	r.StartValue = cleanValue(sec.StartValue + cash.StartValue + r.StartCash + r.InitBalance)
	r.EndValue = cleanValue(sec.EndValue + cash.EndValue + r.EndCash + r.InitBalance)
	r.TotalGain = r.RealizedGain + r.UnrealizedGain + r.Income + r.Expense
	r.TransMap = sec.TransMap.Plus(cash.TransMap)

	flows := DateMap{}.Minus(r.TransMap)
	from := adjustedCashStart(r.From, r.StartValue, r.InitBalance, flows)

	if abs(r.StartValue) > valueEpsilon {
		flows.Add(from, 0)
	}
	if abs(r.EndValue) > valueEpsilon {
		flows.Add(r.To, 0)
	}
	r.MdMap = flows
	// Income and expenses stay inside the account, so only the end value
	// carries them.
	r.MdReturn = ModifiedDietz(r.StartValue, r.EndValue, 0, 0, flows)
	r.ArMap = flows.Clone()
	r.AnnualReturn = annualizedOver(r.ArMap, from, r.StartValue, r.To, r.EndValue, r.MdReturn)
	return r
}

// adjustedCashStart moves the window start forward when the opening balance
// is exactly the pre-history balance and nothing happened before the first
// flow: measuring dead time before capital shows up would dilute the return.
func adjustedCashStart(from Date, startValue, initBalance float64, flows DateMap) Date {
	first, ok := flows.First()
	if !ok || startValue != initBalance {
		return from
	}
	if min := first.PrevBusinessDay(); !from.After(min) {
		return min
	}
	return from
}

// annualizedOver annualizes a period return over the horizon spanned by the
// flow map once the start and end values are pinned into it. The map is
// restored before returning.
func annualizedOver(m DateMap, from Date, startValue float64, to Date, endValue, periodReturn float64) float64 {
	if startValue != 0 {
		m.Add(from, -startValue)
	}
	if endValue != 0 {
		m.Add(to, endValue)
	}
	ar := AnnualizedReturn(m, periodReturn)
	if startValue != 0 {
		m.Add(from, startValue)
	}
	if endValue != 0 {
		m.Add(to, -endValue)
	}
	return ar
}

// MergeSnapshot combines two snapshots taken on the same date into a new one.
// Additive fields are summed window by window; the start date of each window
// becomes the earlier of the two, so the merged horizon reaches back to the
// oldest child. Prices and per-unit figures are dropped, and returns are left
// undefined until RecomputeReturns. Neither argument is modified.
func MergeSnapshot(a, b *SnapshotReport) *SnapshotReport {
	r := newSnapshotReport(a.Account, a.Security, a.On)
	if a.Account != b.Account {
		r.Account = ""
	}
	if a.Security != b.Security {
		r.Security = ""
	}

	r.EndValue = a.EndValue + b.EndValue
	r.EndCash = a.EndCash + b.EndCash
	r.InitBalance = a.InitBalance + b.InitBalance
	r.CostBasis = a.CostBasis + b.CostBasis
	r.Income = a.Income + b.Income
	r.TotalGain = a.TotalGain + b.TotalGain
	r.AbsValueChange = a.AbsValueChange + b.AbsValueChange

	for _, w := range Windows() {
		if d, ok := earlierDate(a.StartDates, b.StartDates, w); ok {
			r.StartDates[w] = d
		}
		r.StartPos[w] = a.StartPos[w] + b.StartPos[w]
		r.StartValues[w] = a.StartValues[w] + b.StartValues[w]
		r.StartCash[w] = a.StartCash[w] + b.StartCash[w]
		r.Incomes[w] = a.Incomes[w] + b.Incomes[w]
		r.Expenses[w] = a.Expenses[w] + b.Expenses[w]
		r.MdMaps[w] = a.MdMaps[w].Plus(b.MdMaps[w])
		r.ArMaps[w] = a.ArMaps[w].Plus(b.ArMaps[w])
		r.TransMaps[w] = a.TransMaps[w].Plus(b.TransMaps[w])
	}
	return r
}

// earlierDate picks the earlier of the two window start dates; a snapshot
// with no activity has no entry to contribute, so absence never wins.
func earlierDate(a, b map[Window]Date, w Window) (Date, bool) {
	da, aok := a[w]
	db, bok := b[w]
	switch {
	case !aok:
		return db, bok
	case !bok:
		return da, true
	case db.Before(da):
		return db, true
	default:
		return da, true
	}
}

// CashSnapshot derives the snapshot of an account's cash balance from the
// aggregated security snapshot and the cash ledger snapshot, window by
// window, the same way CashFromTo does for a date range.
func CashSnapshot(sec, cash *SnapshotReport) *SnapshotReport {
	r := newSnapshotReport(cash.Account, "", cash.On)
	r.InitBalance = cash.InitBalance
	r.EndCash = sec.EndCash + cash.EndCash
	r.EndValue = cleanValue(r.EndCash + r.InitBalance)
	r.EndPos = r.EndValue
	r.Income = cash.Income
	r.TotalGain = cash.Income

	for _, w := range Windows() {
		r.StartCash[w] = sec.StartCash[w] + cash.StartCash[w]
		r.StartValues[w] = cleanValue(r.StartCash[w] + r.InitBalance)
		r.StartPos[w] = r.StartValues[w]
		r.Incomes[w] = cash.Incomes[w]
		r.Expenses[w] = cash.Expenses[w]
		r.TransMaps[w] = sec.TransMaps[w].Plus(cash.TransMaps[w])

		flows := DateMap{}.Minus(cash.TransMaps[w]).Minus(sec.ArMaps[w])
		start := adjustedCashStart(startDateOf(sec, cash, w, r.On), r.StartValues[w], r.InitBalance, flows)
		r.StartDates[w] = start

		if abs(r.StartValues[w]) > valueEpsilon {
			flows.Add(start, 0)
		}
		if abs(r.EndValue) > valueEpsilon {
			flows.Add(r.On, 0)
		}
		r.MdMaps[w] = flows
		r.ArMaps[w] = flows.Clone()
		r.Returns[w] = ModifiedDietz(r.StartValues[w], r.EndValue, r.Incomes[w], r.Expenses[w], flows)
	}
	r.AnnualReturnAll = annualizedOver(r.ArMaps[WindowAll], r.StartDates[WindowAll],
		r.StartValues[WindowAll], r.On, r.EndValue, r.Returns[WindowAll])
	r.AbsValueChange = r.EndValue - r.StartValues[WindowPrev]
	return r
}

// CombinedSnapshot derives the whole-account snapshot, securities plus cash,
// window by window. Only external transfers count as flows.
func CombinedSnapshot(sec, cash *SnapshotReport) *SnapshotReport {
	r := newSnapshotReport(cash.Account, "", cash.On)
	r.InitBalance = cash.InitBalance
	r.CostBasis = sec.CostBasis
	r.Income = sec.Income + cash.Income
	r.TotalGain = sec.TotalGain + cash.TotalGain
	r.EndCash = sec.EndCash + cash.EndCash
	r.EndValue = cleanValue(sec.EndValue + cash.EndValue + r.EndCash + r.InitBalance)

	for _, w := range Windows() {
		r.StartCash[w] = sec.StartCash[w] + cash.StartCash[w]
		r.StartValues[w] = cleanValue(sec.StartValues[w] + cash.StartValues[w] + r.StartCash[w] + r.InitBalance)
		r.Incomes[w] = sec.Incomes[w] + cash.Incomes[w]
		r.Expenses[w] = sec.Expenses[w] + cash.Expenses[w]
		r.TransMaps[w] = sec.TransMaps[w].Plus(cash.TransMaps[w])

		flows := DateMap{}.Minus(r.TransMaps[w])
		start := adjustedCashStart(startDateOf(sec, cash, w, r.On), r.StartValues[w], r.InitBalance, flows)
		r.StartDates[w] = start

		if abs(r.StartValues[w]) > valueEpsilon {
			flows.Add(start, 0)
		}
		if abs(r.EndValue) > valueEpsilon {
			flows.Add(r.On, 0)
		}
		r.MdMaps[w] = flows
		r.ArMaps[w] = flows.Clone()
		r.Returns[w] = ModifiedDietz(r.StartValues[w], r.EndValue, 0, 0, flows)
	}
	r.AnnualReturnAll = annualizedOver(r.ArMaps[WindowAll], r.StartDates[WindowAll],
		r.StartValues[WindowAll], r.On, r.EndValue, r.Returns[WindowAll])
	r.AbsValueChange = r.EndValue - r.StartValues[WindowPrev]
	return r
}

// startDateOf picks the window start date from whichever snapshot recorded
// one, preferring the earlier when both did. When neither did the snapshot
// date itself stands in, leaving a zero-length window.
func startDateOf(sec, cash *SnapshotReport, w Window, on Date) Date {
	if d, ok := earlierDate(sec.StartDates, cash.StartDates, w); ok {
		return d
	}
	return on
}
