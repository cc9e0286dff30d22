// Package invperf computes investment performance from raw transaction
// histories.
//
// The package is built around two engines. The cumulative position engine
// folds a security's transactions, in chronological order, into a ledger of
// running state: split-adjusted position, long and short cost basis, and the
// realized, unrealized and income components of gain. The return engine
// derives Modified Dietz returns, optionally annualized, from date-keyed cash
// flow maps, and aggregates securities into accounts and accounts into a
// portfolio by merging the underlying flow maps and re-deriving the return,
// never by averaging child returns.
//
// Returns that cannot be determined (an empty window, or flows that cancel
// the invested capital) are undefined and reported as NaN; they stay
// undefined through aggregation rather than polluting sums.
//
// Portfolios are persisted as JSONL, one transaction, rate point, split or
// opening balance per line; see DecodePortfolio.
package invperf
