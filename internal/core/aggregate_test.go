package core

import (
	"testing"
	"time"
)

func txn(kind Kind, category string, cents int64, at time.Time) Transaction {
	return Transaction{Kind: kind, Category: category, Amount: Money{Cents: cents}, CreatedAt: at}
}

func sampleLedger() []Transaction {
	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	return []Transaction{
		txn(Credit, "Salary", 500000, base),
		txn(Expense, "Food & Dining", 120000, base.Add(24*time.Hour)),
		txn(Expense, "Rent / Accommodation", 200000, base.Add(48*time.Hour)),
	}
}

func TestTotalsOf(t *testing.T) {
	got := TotalsOf(sampleLedger())
	if got.Credit.Cents != 500000 {
		t.Fatalf("expected credit 500000, got %d", got.Credit.Cents)
	}
	if got.Expense.Cents != 320000 {
		t.Fatalf("expected expense 320000, got %d", got.Expense.Cents)
	}
	if got.Balance.Cents != 180000 {
		t.Fatalf("expected balance 180000, got %d", got.Balance.Cents)
	}
}

func TestTotalsBalanceIdentity(t *testing.T) {
	sequences := [][]Transaction{
		nil,
		sampleLedger(),
		{txn(Expense, "Shopping", 50, time.Now())},
		{
			txn(Credit, "Salary", 1, time.Now()),
			txn(Expense, "Education", 300, time.Now()),
			txn(Credit, "Gift Received", 299, time.Now()),
		},
	}
	for i, seq := range sequences {
		tot := TotalsOf(seq)
		if tot.Balance.Cents != tot.Credit.Cents-tot.Expense.Cents {
			t.Fatalf("sequence %d: balance %d != credit %d - expense %d",
				i, tot.Balance.Cents, tot.Credit.Cents, tot.Expense.Cents)
		}
	}
}

func TestTotalsOfEmpty(t *testing.T) {
	got := TotalsOf(nil)
	if got.Credit.Cents != 0 || got.Expense.Cents != 0 || got.Balance.Cents != 0 {
		t.Fatalf("expected zero totals on empty input, got %+v", got)
	}
}

func TestSumByCategory(t *testing.T) {
	got := SumByCategory(sampleLedger(), Expense)
	if len(got) != 2 {
		t.Fatalf("expected 2 expense categories, got %d", len(got))
	}
	if got["Food & Dining"].Cents != 120000 {
		t.Fatalf("expected Food & Dining 120000, got %d", got["Food & Dining"].Cents)
	}
	if got["Rent / Accommodation"].Cents != 200000 {
		t.Fatalf("expected Rent / Accommodation 200000, got %d", got["Rent / Accommodation"].Cents)
	}
	// Keys appear only when at least one matching record exists.
	if _, ok := got["Salary"]; ok {
		t.Fatalf("credit category must not leak into expense breakdown")
	}
	if len(SumByCategory(nil, Expense)) != 0 {
		t.Fatalf("expected empty map on empty input")
	}
}

func TestSumByMonth(t *testing.T) {
	records := []Transaction{
		txn(Credit, "Salary", 100, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)),
		txn(Credit, "Salary", 200, time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC)),
		txn(Expense, "Shopping", 50, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)),
		txn(Expense, "Shopping", 75, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
	}
	got := SumByMonth(records)
	if len(got) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(got))
	}
	if got[MonthKind{"2025-01", Credit}].Cents != 300 {
		t.Fatalf("expected 2025-01 credit 300, got %d", got[MonthKind{"2025-01", Credit}].Cents)
	}
	if got[MonthKind{"2025-01", Expense}].Cents != 50 {
		t.Fatalf("expected 2025-01 expense 50, got %d", got[MonthKind{"2025-01", Expense}].Cents)
	}
	if got[MonthKind{"2025-02", Expense}].Cents != 75 {
		t.Fatalf("expected 2025-02 expense 75, got %d", got[MonthKind{"2025-02", Expense}].Cents)
	}
	if _, ok := got[MonthKind{"2025-02", Credit}]; ok {
		t.Fatalf("bucket with no contributing records must be absent")
	}
}

func TestCumulativeBalance(t *testing.T) {
	records := sampleLedger()
	points := CumulativeBalance(records)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	wantBalances := []int64{500000, 380000, 180000}
	for i, want := range wantBalances {
		if points[i].Balance.Cents != want {
			t.Fatalf("point %d: expected balance %d, got %d", i, want, points[i].Balance.Cents)
		}
	}
	for i := 1; i < len(points); i++ {
		if points[i].At.Before(points[i-1].At) {
			t.Fatalf("points must be ordered by timestamp")
		}
	}
}

func TestCumulativeBalanceOrderStable(t *testing.T) {
	records := sampleLedger()
	shuffled := []Transaction{records[2], records[0], records[1]}

	a := CumulativeBalance(records)
	b := CumulativeBalance(shuffled)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].At.Equal(b[i].At) || a[i].Balance != b[i].Balance {
			t.Fatalf("point %d differs across input orderings: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCumulativeBalanceTiesBrokenByID(t *testing.T) {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	first := txn(Credit, "Salary", 100, at)
	first.ID = "9"
	second := txn(Expense, "Shopping", 30, at)
	second.ID = "10"

	// Tied timestamps must produce the same series whichever way the
	// snapshot arrives (relational backends list newest first).
	for _, records := range [][]Transaction{
		{first, second},
		{second, first},
	} {
		points := CumulativeBalance(records)
		if points[0].Balance.Cents != 100 || points[1].Balance.Cents != 70 {
			t.Fatalf("ties must be broken by id order, got %+v", points)
		}
	}
}

func TestCumulativeBalanceNumericIDOrder(t *testing.T) {
	// Rowid "10" comes after "9" despite sorting before it lexically.
	if idLess("10", "9") {
		t.Fatalf("numeric ids must compare by magnitude")
	}
	if !idLess("9", "10") {
		t.Fatalf("numeric ids must compare by magnitude")
	}
	if !idLess("0a1b", "1a0b") {
		t.Fatalf("non-numeric ids compare lexically")
	}
}

func TestCumulativeBalanceTiesWithoutIDsKeepInputOrder(t *testing.T) {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []Transaction{
		txn(Credit, "Salary", 100, at),
		txn(Expense, "Shopping", 30, at),
	}
	points := CumulativeBalance(records)
	if points[0].Balance.Cents != 100 || points[1].Balance.Cents != 70 {
		t.Fatalf("id-less ties must keep input order, got %+v", points)
	}
}

func TestCumulativeBalanceEmpty(t *testing.T) {
	if got := CumulativeBalance(nil); len(got) != 0 {
		t.Fatalf("expected empty series, got %d points", len(got))
	}
}

func TestFilterTransactions(t *testing.T) {
	records := sampleLedger()

	t.Run("no predicates match everything", func(t *testing.T) {
		if got := FilterTransactions(records, Filter{}); len(got) != 3 {
			t.Fatalf("expected all 3 records, got %d", len(got))
		}
	})

	t.Run("by kind", func(t *testing.T) {
		got := FilterTransactions(records, Filter{Kind: Expense})
		if len(got) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(got))
		}
	})

	t.Run("by category", func(t *testing.T) {
		got := FilterTransactions(records, Filter{Category: "Salary"})
		if len(got) != 1 || got[0].Kind != Credit {
			t.Fatalf("expected the single salary record, got %v", got)
		}
	})

	t.Run("conjunctive predicates", func(t *testing.T) {
		got := FilterTransactions(records, Filter{Kind: Expense, Category: "Salary"})
		if len(got) != 0 {
			t.Fatalf("predicates are ANDed, expected no match, got %d", len(got))
		}
		got = FilterTransactions(records, Filter{Kind: Expense, Category: "Food & Dining", Month: "2025-01"})
		if len(got) != 1 {
			t.Fatalf("expected exactly one match, got %d", len(got))
		}
	})

	t.Run("by month", func(t *testing.T) {
		got := FilterTransactions(records, Filter{Month: "2024-12"})
		if len(got) != 0 {
			t.Fatalf("expected no records in 2024-12, got %d", len(got))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := FilterTransactions(nil, Filter{Kind: Credit}); len(got) != 0 {
			t.Fatalf("expected empty result, got %d", len(got))
		}
	})
}
