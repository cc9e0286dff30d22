package invperf

import (
	"math"
	"testing"
	"time"
)

// USD is a helper for tests to create dollar money from const.
func USD(v float64) Money { return M(v, "USD") }

func day(y int, m time.Month, d int) Date { return NewDate(y, m, d) }

// approx fails the test when got and want differ beyond rounding noise, or
// when exactly one of them is undefined.
func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.IsNaN(got) != math.IsNaN(want) {
		t.Errorf("%s = %v, want %v", name, got, want)
		return
	}
	if !math.IsNaN(want) && math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// priceTable builds a RateHistory from date -> market price pairs.
func priceTable(prices map[Date]float64, splits ...Split) *RateHistory {
	rates := make(map[Date]float64, len(prices))
	for d, p := range prices {
		rates[d] = 1 / p
	}
	return NewRateHistory(rates, splits)
}

func buyTx(on Date, seq int64, amount, commission, qty float64) TransactionValues {
	return TransactionValues{Date: on, SeqNum: seq, Buy: -amount, Commission: -commission, SecQuantity: qty}
}

func sellTx(on Date, seq int64, amount, commission, qty float64) TransactionValues {
	return TransactionValues{Date: on, SeqNum: seq, Sell: amount, Commission: -commission, SecQuantity: -qty}
}

func shortTx(on Date, seq int64, amount, commission, qty float64) TransactionValues {
	return TransactionValues{Date: on, SeqNum: seq, ShortSell: amount, Commission: -commission, SecQuantity: -qty}
}

func coverTx(on Date, seq int64, amount, commission, qty float64) TransactionValues {
	return TransactionValues{Date: on, SeqNum: seq, CoverShort: -amount, Commission: -commission, SecQuantity: qty}
}

func incomeTx(on Date, seq int64, amount float64) TransactionValues {
	return TransactionValues{Date: on, SeqNum: seq, Income: amount}
}

func depositTx(on Date, seq int64, amount float64) TransactionValues {
	return TransactionValues{Date: on, SeqNum: seq, Transfer: amount, CashEffect: amount}
}
