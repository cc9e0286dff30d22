package invperf

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The portfolio file is JSONL: one object per line, discriminated by "kind".
// Transactions carry the signed cash effect of each leg; rate and split lines
// belong to a security regardless of the account holding it; a balance line
// records an account's cash predating the first transaction.
const (
	kindTx      = "tx"
	kindRate    = "rate"
	kindSplit   = "split"
	kindBalance = "balance"
)

type txLine struct {
	Kind        string          `json:"kind"`
	Account     string          `json:"account"`
	Security    string          `json:"security,omitempty"`
	Date        Date            `json:"date"`
	Seq         int64           `json:"seq"`
	Buy         decimal.Decimal `json:"buy"`
	Sell        decimal.Decimal `json:"sell"`
	ShortSell   decimal.Decimal `json:"shortSell"`
	CoverShort  decimal.Decimal `json:"coverShort"`
	Commission  decimal.Decimal `json:"commission"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Transfer    decimal.Decimal `json:"transfer"`
	CashEffect  decimal.Decimal `json:"cashEffect"`
	SecQuantity decimal.Decimal `json:"secQuantity"`
}

func (l txLine) values() TransactionValues {
	return TransactionValues{
		Account:     l.Account,
		Security:    l.Security,
		Date:        l.Date,
		SeqNum:      l.Seq,
		Buy:         l.Buy.InexactFloat64(),
		Sell:        l.Sell.InexactFloat64(),
		ShortSell:   l.ShortSell.InexactFloat64(),
		CoverShort:  l.CoverShort.InexactFloat64(),
		Commission:  l.Commission.InexactFloat64(),
		Income:      l.Income.InexactFloat64(),
		Expense:     l.Expense.InexactFloat64(),
		Transfer:    l.Transfer.InexactFloat64(),
		CashEffect:  l.CashEffect.InexactFloat64(),
		SecQuantity: l.SecQuantity.InexactFloat64(),
	}
}

func newTxLine(tv TransactionValues) txLine {
	return txLine{
		Kind:        kindTx,
		Account:     tv.Account,
		Security:    tv.Security,
		Date:        tv.Date,
		Seq:         tv.SeqNum,
		Buy:         decimal.NewFromFloat(tv.Buy),
		Sell:        decimal.NewFromFloat(tv.Sell),
		ShortSell:   decimal.NewFromFloat(tv.ShortSell),
		CoverShort:  decimal.NewFromFloat(tv.CoverShort),
		Commission:  decimal.NewFromFloat(tv.Commission),
		Income:      decimal.NewFromFloat(tv.Income),
		Expense:     decimal.NewFromFloat(tv.Expense),
		Transfer:    decimal.NewFromFloat(tv.Transfer),
		CashEffect:  decimal.NewFromFloat(tv.CashEffect),
		SecQuantity: decimal.NewFromFloat(tv.SecQuantity),
	}
}

type rateLine struct {
	Kind     string          `json:"kind"`
	Security string          `json:"security"`
	Date     Date            `json:"date"`
	Rate     decimal.Decimal `json:"rate"`
}

type splitLine struct {
	Kind        string  `json:"kind"`
	Security    string  `json:"security"`
	Date        Date    `json:"date"`
	Numerator   float64 `json:"numerator"`
	Denominator float64 `json:"denominator"`
}

type balanceLine struct {
	Kind    string          `json:"kind"`
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// DecodePortfolio reads a JSONL stream and assembles the portfolio. Accounts
// and holdings keep the order of their first appearance in the stream, so
// report rows stay stable across encode/decode round trips.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	var (
		p        Portfolio
		accounts = map[string]int{}
		holdings = map[string]map[string]int{}
		rates    = map[string]map[Date]float64{}
		splits   = map[string][]Split{}
	)

	account := func(name string) *InvestmentAccount {
		i, ok := accounts[name]
		if !ok {
			i = len(p.Accounts)
			accounts[name] = i
			holdings[name] = map[string]int{}
			p.Accounts = append(p.Accounts, InvestmentAccount{Name: name})
		}
		return &p.Accounts[i]
	}
	holding := func(acctName, ticker string) *SecurityHolding {
		a := account(acctName)
		i, ok := holdings[acctName][ticker]
		if !ok {
			i = len(a.Holdings)
			holdings[acctName][ticker] = i
			a.Holdings = append(a.Holdings, SecurityHolding{Ticker: ticker})
		}
		return &a.Holdings[i]
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var head struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		switch head.Kind {
		case kindTx:
			var l txLine
			if err := json.Unmarshal(raw, &l); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			tv := l.values()
			if tv.Security == "" {
				a := account(tv.Account)
				a.Cash = append(a.Cash, tv)
			} else {
				h := holding(tv.Account, tv.Security)
				h.Transactions = append(h.Transactions, tv)
			}
		case kindRate:
			var l rateLine
			if err := json.Unmarshal(raw, &l); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if rates[l.Security] == nil {
				rates[l.Security] = map[Date]float64{}
			}
			rates[l.Security][l.Date] = l.Rate.InexactFloat64()
		case kindSplit:
			var l splitLine
			if err := json.Unmarshal(raw, &l); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			splits[l.Security] = append(splits[l.Security], Split{Date: l.Date, Numerator: l.Numerator, Denominator: l.Denominator})
		case kindBalance:
			var l balanceLine
			if err := json.Unmarshal(raw, &l); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			account(l.Account).InitialBalance = l.Amount.InexactFloat64()
		default:
			return nil, fmt.Errorf("line %d: unknown kind %q", line, head.Kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for ai := range p.Accounts {
		a := &p.Accounts[ai]
		for hi := range a.Holdings {
			h := &a.Holdings[hi]
			if len(rates[h.Ticker]) > 0 || len(splits[h.Ticker]) > 0 {
				h.Rates = NewRateHistory(rates[h.Ticker], splits[h.Ticker])
			}
		}
	}
	return &p, nil
}

// EncodePortfolio writes the portfolio as JSONL: per account a balance line,
// the cash transactions and each holding's transactions, then the rate and
// split history of every security, written once even when the security is
// held in several accounts.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	enc := func(v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		raw = append(raw, '\n')
		_, err = w.Write(raw)
		return err
	}

	written := map[string]bool{}
	for ai := range p.Accounts {
		a := &p.Accounts[ai]
		if a.InitialBalance != 0 {
			if err := enc(balanceLine{Kind: kindBalance, Account: a.Name, Amount: decimal.NewFromFloat(a.InitialBalance)}); err != nil {
				return err
			}
		}
		for _, tv := range a.Cash {
			tv.Account, tv.Security = a.Name, ""
			if err := enc(newTxLine(tv)); err != nil {
				return err
			}
		}
		for hi := range a.Holdings {
			h := &a.Holdings[hi]
			for _, tv := range h.Transactions {
				tv.Account, tv.Security = a.Name, h.Ticker
				if err := enc(newTxLine(tv)); err != nil {
					return err
				}
			}
			if h.Rates == nil || written[h.Ticker] {
				continue
			}
			written[h.Ticker] = true
			for i, d := range h.Rates.dates {
				if err := enc(rateLine{Kind: kindRate, Security: h.Ticker, Date: d, Rate: decimal.NewFromFloat(h.Rates.rates[i])}); err != nil {
					return err
				}
			}
			for _, s := range h.Rates.splits {
				if err := enc(splitLine{Kind: kindSplit, Security: h.Ticker, Date: s.Date, Numerator: s.Numerator, Denominator: s.Denominator}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
