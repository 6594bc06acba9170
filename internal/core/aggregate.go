package core

import (
	"sort"
	"time"
)

type (
	// Totals is the three-figure summary shown at the top of the dashboard.
	Totals struct {
		Credit  Money
		Expense Money
		Balance Money
	}

	// MonthKind buckets a sum by calendar month (YYYY-MM) and transaction kind.
	MonthKind struct {
		Month string
		Kind  Kind
	}

	// BalancePoint is one step of the running-balance series.
	BalancePoint struct {
		At      time.Time
		Balance Money
	}

	// Filter narrows a record set. Zero-valued fields match everything;
	// supplied predicates are combined with AND.
	Filter struct {
		Kind     Kind
		Category string
		Month    string // YYYY-MM
	}
)

// All aggregation below is pure: it reads a snapshot and derives transient
// views, recomputed on every request. Empty input yields empty identities,
// never an error.

// TotalsOf sums credits and expenses; Balance = Credit - Expense.
func TotalsOf(txns []Transaction) Totals {
	var t Totals
	for _, txn := range txns {
		switch txn.Kind {
		case Credit:
			t.Credit = t.Credit.Add(txn.Amount)
		case Expense:
			t.Expense = t.Expense.Add(txn.Amount)
		}
	}
	t.Balance = t.Credit.Sub(t.Expense)
	return t
}

// SumByCategory sums amounts per category, restricted to one kind.
// Categories with no matching records are absent from the result.
func SumByCategory(txns []Transaction, kind Kind) map[string]Money {
	sums := make(map[string]Money)
	for _, txn := range txns {
		if txn.Kind != kind {
			continue
		}
		sums[txn.Category] = sums[txn.Category].Add(txn.Amount)
	}
	return sums
}

// SumByMonth sums amounts per (calendar month, kind) bucket.
func SumByMonth(txns []Transaction) map[MonthKind]Money {
	sums := make(map[MonthKind]Money)
	for _, txn := range txns {
		key := MonthKind{Month: MonthOf(txn.CreatedAt), Kind: txn.Kind}
		sums[key] = sums[key].Add(txn.Amount)
	}
	return sums
}

// CumulativeBalance produces the time-ordered running balance: each credit
// adds its amount, each expense subtracts it. Records are ordered by
// CreatedAt; ties are broken by store-assigned ID so the series is the same
// no matter what order the snapshot arrived in. Records without IDs keep
// their input order.
func CumulativeBalance(txns []Transaction) []BalancePoint {
	if len(txns) == 0 {
		return nil
	}
	ordered := make([]Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return idLess(ordered[i].ID, ordered[j].ID)
	})

	points := make([]BalancePoint, 0, len(ordered))
	var balance Money
	for _, txn := range ordered {
		switch txn.Kind {
		case Credit:
			balance = balance.Add(txn.Amount)
		case Expense:
			balance = balance.Sub(txn.Amount)
		}
		points = append(points, BalancePoint{At: txn.CreatedAt, Balance: balance})
	}
	return points
}

// idLess orders store-assigned IDs. Numeric IDs (relational rowids) compare
// by magnitude, which length-then-lexical gives without parsing; everything
// else (UUIDs) compares lexically.
func idLess(a, b string) bool {
	if len(a) != len(b) && allDigits(a) && allDigits(b) {
		return len(a) < len(b)
	}
	return a < b
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Match reports whether a transaction satisfies every supplied predicate.
func (f Filter) Match(txn Transaction) bool {
	if f.Kind != "" && txn.Kind != f.Kind {
		return false
	}
	if f.Category != "" && txn.Category != f.Category {
		return false
	}
	if f.Month != "" && MonthOf(txn.CreatedAt) != f.Month {
		return false
	}
	return true
}

// FilterTransactions returns the subset matching the filter, in input order.
func FilterTransactions(txns []Transaction, f Filter) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, txn := range txns {
		if f.Match(txn) {
			out = append(out, txn)
		}
	}
	return out
}
