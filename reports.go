package invperf

import (
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// SecurityHolding is the transaction history of one security inside an
// account, together with its price history. Rates may be nil for holdings
// valued at par.
type SecurityHolding struct {
	Ticker       string
	Transactions []TransactionValues
	Rates        *RateHistory
}

func (h *SecurityHolding) rateSource() RateSource {
	if h.Rates == nil {
		return nil
	}
	return h.Rates
}

// InvestmentAccount groups the security holdings of one account with its cash
// ledger. InitialBalance is the cash on hand before the first recorded
// transaction.
type InvestmentAccount struct {
	Name           string
	InitialBalance float64
	Holdings       []SecurityHolding
	Cash           []TransactionValues
}

// Portfolio is the full transaction history across accounts, the input to
// report generation.
type Portfolio struct {
	Accounts []InvestmentAccount
}

// FromToReports computes the date range report rows for the whole portfolio:
// one row per security, then per account the aggregated securities, the cash
// balance and the account total, and finally the same three rows across all
// accounts. Leaf ledgers are computed concurrently; the row order is
// deterministic and follows the portfolio's account and holding order.
func (p *Portfolio) FromToReports(period Range) ([]*FromToReport, error) {
	leaves := make([][]*FromToReport, len(p.Accounts))
	cashLeaves := make([]*FromToReport, len(p.Accounts))

	var g errgroup.Group
	for ai := range p.Accounts {
		acct := &p.Accounts[ai]
		leaves[ai] = make([]*FromToReport, len(acct.Holdings))
		for hi := range acct.Holdings {
			g.Go(func() error {
				h := &acct.Holdings[hi]
				txns, err := orderedTransactions(h.Transactions)
				if err != nil {
					return fmt.Errorf("account %q security %q: %w", acct.Name, h.Ticker, err)
				}
				ledger := ComputeLedger(txns, h.rateSource())
				leaves[ai][hi] = NewFromToReport(acct.Name, h.Ticker, ledger, h.rateSource(), period.From, period.To)
				return nil
			})
		}
		g.Go(func() error {
			txns, err := orderedTransactions(acct.Cash)
			if err != nil {
				return fmt.Errorf("account %q cash: %w", acct.Name, err)
			}
			rep := NewFromToReport(acct.Name, "", ComputeLedger(txns, nil), nil, period.From, period.To)
			rep.InitBalance = acct.InitialBalance
			cashLeaves[ai] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*FromToReport
	allSec := newFromToReport("", "", period.From, period.To)
	allCash := newFromToReport("", "", period.From, period.To)
	for ai := range p.Accounts {
		acct := &p.Accounts[ai]
		acctSec := newFromToReport(acct.Name, "", period.From, period.To)
		for _, leaf := range leaves[ai] {
			leaf.Level = LevelSecurity
			out = append(out, leaf)
			acctSec = MergeFromTo(acctSec, leaf)
		}
		acctSec.RecomputeReturns()
		acctSec.Level = LevelAccountSecurities

		cashRep := CashFromTo(acctSec, cashLeaves[ai])
		cashRep.Level = LevelAccountCash
		combined := CombinedFromTo(acctSec, cashLeaves[ai])
		combined.Level = LevelAccountTotal
		out = append(out, acctSec, cashRep, combined)

		allSec = MergeFromTo(allSec, acctSec)
		allCash = MergeFromTo(allCash, cashLeaves[ai])
	}
	allSec.RecomputeReturns()
	allSec.Level = LevelAllSecurities
	allCashRep := CashFromTo(allSec, allCash)
	allCashRep.Level = LevelAllCash
	allCombined := CombinedFromTo(allSec, allCash)
	allCombined.Level = LevelAllTotal
	out = append(out, allSec, allCashRep, allCombined)
	return out, nil
}

// SnapshotReports computes the snapshot report rows for the whole portfolio
// as of one date, with the same row structure and ordering as FromToReports.
func (p *Portfolio) SnapshotReports(on Date) ([]*SnapshotReport, error) {
	leaves := make([][]*SnapshotReport, len(p.Accounts))
	cashLeaves := make([]*SnapshotReport, len(p.Accounts))

	var g errgroup.Group
	for ai := range p.Accounts {
		acct := &p.Accounts[ai]
		leaves[ai] = make([]*SnapshotReport, len(acct.Holdings))
		for hi := range acct.Holdings {
			g.Go(func() error {
				h := &acct.Holdings[hi]
				txns, err := orderedTransactions(h.Transactions)
				if err != nil {
					return fmt.Errorf("account %q security %q: %w", acct.Name, h.Ticker, err)
				}
				ledger := ComputeLedger(txns, h.rateSource())
				leaves[ai][hi] = NewSnapshotReport(acct.Name, h.Ticker, ledger, h.rateSource(), on)
				return nil
			})
		}
		g.Go(func() error {
			txns, err := orderedTransactions(acct.Cash)
			if err != nil {
				return fmt.Errorf("account %q cash: %w", acct.Name, err)
			}
			rep := NewSnapshotReport(acct.Name, "", ComputeLedger(txns, nil), nil, on)
			rep.InitBalance = acct.InitialBalance
			cashLeaves[ai] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*SnapshotReport
	allSec := newSnapshotReport("", "", on)
	allCash := newSnapshotReport("", "", on)
	for ai := range p.Accounts {
		acct := &p.Accounts[ai]
		acctSec := newSnapshotReport(acct.Name, "", on)
		for _, leaf := range leaves[ai] {
			leaf.Level = LevelSecurity
			out = append(out, leaf)
			acctSec = MergeSnapshot(acctSec, leaf)
		}
		acctSec.RecomputeReturns()
		acctSec.Level = LevelAccountSecurities

		cashRep := CashSnapshot(acctSec, cashLeaves[ai])
		cashRep.Level = LevelAccountCash
		combined := CombinedSnapshot(acctSec, cashLeaves[ai])
		combined.Level = LevelAccountTotal
		out = append(out, acctSec, cashRep, combined)

		allSec = MergeSnapshot(allSec, acctSec)
		allCash = MergeSnapshot(allCash, cashLeaves[ai])
	}
	allSec.RecomputeReturns()
	allSec.Level = LevelAllSecurities
	allCashRep := CashSnapshot(allSec, allCash)
	allCashRep.Level = LevelAllCash
	allCombined := CombinedSnapshot(allSec, allCash)
	allCombined.Level = LevelAllTotal
	out = append(out, allSec, allCashRep, allCombined)
	return out, nil
}

// orderedTransactions returns a sorted copy of the transaction list and
// rejects ambiguous ordering: two transactions of the same security sharing a
// date must carry distinct sequence numbers.
func orderedTransactions(txns []TransactionValues) ([]TransactionValues, error) {
	ordered := slices.Clone(txns)
	SortTransactions(ordered)
	for i := 1; i < len(ordered); i++ {
		if compareTransactions(ordered[i-1], ordered[i]) == 0 {
			return nil, fmt.Errorf("duplicate sequence number %d on %s", ordered[i].SeqNum, ordered[i].Date)
		}
	}
	return ordered, nil
}

// Normalize sorts every transaction list of the portfolio in place into
// canonical order and rejects ambiguous sequence numbering. Encoding a
// normalized portfolio yields a stable, diff-friendly file.
func (p *Portfolio) Normalize() error {
	for ai := range p.Accounts {
		acct := &p.Accounts[ai]
		for hi := range acct.Holdings {
			h := &acct.Holdings[hi]
			txns, err := orderedTransactions(h.Transactions)
			if err != nil {
				return fmt.Errorf("account %q security %q: %w", acct.Name, h.Ticker, err)
			}
			h.Transactions = txns
		}
		txns, err := orderedTransactions(acct.Cash)
		if err != nil {
			return fmt.Errorf("account %q cash: %w", acct.Name, err)
		}
		acct.Cash = txns
	}
	return nil
}
