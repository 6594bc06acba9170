package backend

import (
	"context"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/ledger"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the store instance and optional lifecycle hooks.
type Result struct {
	Store   ledger.Store
	Cleanup CleanupFunc
	// Degraded reports whether the store is serving from its in-memory
	// fallback tier. Always false for stores without a fallback.
	Degraded func() bool
}

// Factory creates ledger stores based on configuration
type Factory interface {
	CreateStore(ctx context.Context, config Config) (*Result, error)
}

// Type represents the kind of durable store backing the ledger.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
	TableBackend  Type = "table"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend, TableBackend:
		return true
	default:
		return false
	}
}
