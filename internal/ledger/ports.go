// Package ledger defines the ports every transaction storage backend
// implements. Owner "" addresses the single shared ledger used by
// deployments without session scoping.
package ledger

import (
	"context"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/core"
)

// Ports for storage backends.
type (
	Writer interface {
		// Add validates and persists a new record, assigning its ID and
		// defaulting CreatedAt. The stored record is returned.
		Add(ctx context.Context, txn core.Transaction) (core.Transaction, error)
	}

	Reader interface {
		// List returns every record for the owner. Backends that can order
		// return newest first; callers must not rely on it.
		List(ctx context.Context, owner string) ([]core.Transaction, error)
	}

	Clearer interface {
		// Clear deletes all records for the owner. Clearing an empty ledger
		// is a no-op, not an error.
		Clear(ctx context.Context, owner string) error
		// ClearAll wipes the whole store.
		ClearAll(ctx context.Context) error
	}

	Store interface {
		Writer
		Reader
		Clearer
	}
)
