package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Credit  Kind = "Credit"
	Expense Kind = "Expense"
)

type (
	// Kind classifies a transaction as money coming in or going out.
	Kind string

	Money struct {
		Cents int64
	}

	// Transaction is a single ledger record. ID and CreatedAt are assigned by
	// the store on creation; records are never updated in place.
	Transaction struct {
		ID        string
		Owner     string
		Kind      Kind
		Category  string
		Amount    Money
		Note      string
		CreatedAt time.Time
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNoteTooLong     = errors.New("note too long (max 200 characters)")
	ErrOwnerRequired   = errors.New("owner required")
)

func (k Kind) Valid() bool {
	return k == Credit || k == Expense
}

// Validate rejects zero and negative amounts. Balances may go negative, but a
// single transaction magnitude is always strictly positive.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	category := strings.TrimSpace(t.Category)
	if category == "" || !CategoryAllowed(t.Kind, category) {
		return ErrInvalidCategory
	}
	if len(t.Note) > 200 {
		return ErrNoteTooLong
	}
	return nil
}

// MonthOf returns the calendar-month bucket of a timestamp as YYYY-MM.
// Lexical order of these keys matches chronological order, so charts can sort
// buckets without locale-dependent month names.
func MonthOf(ts time.Time) string {
	return ts.UTC().Format("2006-01")
}
