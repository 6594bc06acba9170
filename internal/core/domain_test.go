package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestKindValid(t *testing.T) {
	if !Credit.Valid() || !Expense.Valid() {
		t.Fatalf("expected Credit and Expense to be valid")
	}
	if Kind("Income").Valid() {
		t.Fatalf("expected unknown kind to be invalid")
	}
	if Kind("").Valid() {
		t.Fatalf("expected empty kind to be invalid")
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if err := (Money{Cents: -100}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Kind:      Expense,
		Category:  "Shopping",
		Amount:    Money{Cents: 1999},
		Note:      "new shoes",
		CreatedAt: time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		txn  Transaction
		want error
	}{
		{
			name: "zero amount",
			txn:  Transaction{Kind: Credit, Category: "Salary", Amount: Money{Cents: 0}},
			want: ErrInvalidAmount,
		},
		{
			name: "negative amount",
			txn:  Transaction{Kind: Credit, Category: "Salary", Amount: Money{Cents: -5}},
			want: ErrInvalidAmount,
		},
		{
			name: "unknown kind",
			txn:  Transaction{Kind: "Transfer", Category: "Salary", Amount: Money{Cents: 100}},
			want: ErrInvalidKind,
		},
		{
			name: "empty category",
			txn:  Transaction{Kind: Expense, Category: "", Amount: Money{Cents: 100}},
			want: ErrInvalidCategory,
		},
		{
			name: "category from wrong vocabulary",
			txn:  Transaction{Kind: Credit, Category: "Shopping", Amount: Money{Cents: 100}},
			want: ErrInvalidCategory,
		},
		{
			name: "category not in any vocabulary",
			txn:  Transaction{Kind: Expense, Category: "Yachts", Amount: Money{Cents: 100}},
			want: ErrInvalidCategory,
		},
		{
			name: "note too long",
			txn:  Transaction{Kind: Expense, Category: "Shopping", Amount: Money{Cents: 100}, Note: strings.Repeat("x", 201)},
			want: ErrNoteTooLong,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.txn.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCategoryAllowed(t *testing.T) {
	if !CategoryAllowed(Credit, "Salary") {
		t.Fatalf("Salary should be a valid credit category")
	}
	if !CategoryAllowed(Expense, "Food & Dining") {
		t.Fatalf("Food & Dining should be a valid expense category")
	}
	if CategoryAllowed(Expense, "Salary") {
		t.Fatalf("Salary should not be a valid expense category")
	}
	if CategoryAllowed(Kind("Other"), "Salary") {
		t.Fatalf("unknown kind has no categories")
	}
}

func TestMonthOf(t *testing.T) {
	ts := time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)
	if got := MonthOf(ts); got != "2025-03" {
		t.Fatalf("expected 2025-03, got %s", got)
	}
	// Bucketing is in UTC regardless of the timestamp's zone.
	loc := time.FixedZone("UTC+5", 5*3600)
	ts = time.Date(2025, 4, 1, 2, 0, 0, 0, loc)
	if got := MonthOf(ts); got != "2025-03" {
		t.Fatalf("expected 2025-03 after UTC normalization, got %s", got)
	}
}
