// Package sqlite is the embedded relational ledger store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/core"

	_ "modernc.org/sqlite"
)

const (
	insertTransaction = `
INSERT INTO transactions (owner, kind, category, amount_cents, note, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

	selectTransactionsByOwner = `
SELECT id, owner, kind, category, amount_cents, note, created_at
FROM transactions
WHERE owner = ?
ORDER BY created_at DESC, id DESC`

	deleteTransactionsByOwner = `DELETE FROM transactions WHERE owner = ?`

	deleteAllTransactions = `DELETE FROM transactions`
)

type Repository struct {
	db *sql.DB
}

func New(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) Add(ctx context.Context, txn core.Transaction) (core.Transaction, error) {
	if err := txn.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, insertTransaction,
		txn.Owner,
		string(txn.Kind),
		txn.Category,
		txn.Amount.Cents,
		txn.Note,
		txn.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}
	txn.ID = strconv.FormatInt(id, 10)

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", txn.ID,
		"owner", txn.Owner,
		"kind", txn.Kind,
		"category", txn.Category,
		"amount_cents", txn.Amount.Cents)

	return txn, nil
}

func (r *Repository) List(ctx context.Context, owner string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectTransactionsByOwner, owner)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		var (
			id        int64
			kind      string
			createdAt string
			txn       core.Transaction
		)
		if err := rows.Scan(&id, &txn.Owner, &kind, &txn.Category, &txn.Amount.Cents, &txn.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txn.ID = strconv.FormatInt(id, 10)
		txn.Kind = core.Kind(kind)
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		txn.CreatedAt = ts
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txns, nil
}

func (r *Repository) Clear(ctx context.Context, owner string) error {
	res, err := r.db.ExecContext(ctx, deleteTransactionsByOwner, owner)
	if err != nil {
		return fmt.Errorf("delete transactions: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		slog.InfoContext(ctx, "Ledger cleared", "owner", owner, "deleted", n)
	}
	return nil
}

func (r *Repository) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAllTransactions); err != nil {
		return fmt.Errorf("delete all transactions: %w", err)
	}
	slog.InfoContext(ctx, "All ledgers cleared")
	return nil
}
