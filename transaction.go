package invperf

import (
	"cmp"
	"slices"
)

// TransactionValues is the flat, normalized form of one investment
// transaction line.
//
// All monetary fields carry the signed cash effect of the transaction on the
// containing account's cash:
//
//   - Buy, CoverShort, Commission and Expense deploy cash and are <= 0.
//   - Sell, ShortSell and Income receive cash and are >= 0.
//   - Transfer is the external cash moved into (+) or out of (-) the account;
//     it is zero for ordinary security trades, whose cash counterpart stays
//     inside the account.
//   - CashEffect is the net cash impact of the whole transaction.
//
// SecQuantity is the signed share count (zero for pure cash transactions such
// as dividends). Records are immutable once handed to the engine.
type TransactionValues struct {
	Account  string
	Security string // empty for cash-account lines
	Date     Date
	SeqNum   int64 // stable tie-break for transactions sharing a date

	Buy         float64
	Sell        float64
	ShortSell   float64
	CoverShort  float64
	Commission  float64
	Income      float64
	Expense     float64
	Transfer    float64
	CashEffect  float64
	SecQuantity float64
}

// flow returns the net security cash flow of the transaction: the amount used
// by Modified Dietz weighting. Negative values are capital committed to the
// security, positive values capital released from it.
func (t TransactionValues) flow() float64 {
	return t.Buy + t.Sell + t.ShortSell + t.CoverShort + t.Commission
}

// compareTransactions orders two transactions chronologically, using SeqNum
// as a stable tie-break within a date.
func compareTransactions(a, b TransactionValues) int {
	if a.Date.Before(b.Date) {
		return -1
	}
	if a.Date.After(b.Date) {
		return 1
	}
	return cmp.Compare(a.SeqNum, b.SeqNum)
}

// SortTransactions sorts transactions in place into the chronological order
// required by ComputeLedger.
func SortTransactions(txns []TransactionValues) {
	slices.SortStableFunc(txns, compareTransactions)
}

// RateSource provides per-date exchange rates for one security, with a
// split-adjustment helper. The market price of the security on a date is
// 1/Rate(date).
//
// A nil RateSource denotes a cash-equivalent: rate identically 1.
type RateSource interface {
	// Rate returns the exchange rate in effect on the given date.
	Rate(on Date) float64
	// AdjustForSplits carries the given rate from one date to another,
	// applying the share-split factors recorded between the two dates.
	AdjustForSplits(from Date, rate float64, to Date) float64
}

// RateHistory is an in-memory RateSource backed by a sorted rate series and a
// list of share splits.
type RateHistory struct {
	dates  []Date // sorted ascending
	rates  []float64
	splits []Split
}

// Split records a num:den share split effective on a date
// (a 2:1 split doubles the position and doubles the rate).
type Split struct {
	Date        Date    `json:"date"`
	Numerator   float64 `json:"numerator"`
	Denominator float64 `json:"denominator"`
}

// NewRateHistory builds a RateHistory from a date->rate map and optional splits.
func NewRateHistory(rates map[Date]float64, splits []Split) *RateHistory {
	h := &RateHistory{splits: slices.Clone(splits)}
	for d := range rates {
		h.dates = append(h.dates, d)
	}
	slices.SortFunc(h.dates, func(a, b Date) int { return b.DaysUntil(a) })
	h.rates = make([]float64, len(h.dates))
	for i, d := range h.dates {
		h.rates[i] = rates[d]
	}
	slices.SortFunc(h.splits, func(a, b Split) int { return b.Date.DaysUntil(a.Date) })
	return h
}

// Rate returns the last recorded rate on or before the given date, or the
// earliest recorded rate if the date precedes the whole series.
func (h *RateHistory) Rate(on Date) float64 {
	if len(h.dates) == 0 {
		return 1.0
	}
	rate := h.rates[0]
	for i, d := range h.dates {
		if d.After(on) {
			break
		}
		rate = h.rates[i]
	}
	return rate
}

// AdjustForSplits carries rate from one date to another by applying every
// split factor recorded in (from, to].
func (h *RateHistory) AdjustForSplits(from Date, rate float64, to Date) float64 {
	for _, s := range h.splits {
		if s.Date.After(from) && !s.Date.After(to) {
			rate = rate * s.Numerator / s.Denominator
		}
	}
	return rate
}

var _ RateSource = (*RateHistory)(nil)
