// Package memory is the ephemeral ledger store. It backs the "memory" data
// backend and serves as the fallback tier when a durable backend is
// unreachable. Contents are lost on process exit.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

func (s *Store) Add(_ context.Context, txn core.Transaction) (core.Transaction, error) {
	if err := txn.Validate(); err != nil {
		return core.Transaction{}, err
	}
	txn.ID = uuid.NewString()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, txn)
	return txn, nil
}

func (s *Store) List(_ context.Context, owner string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, len(s.items))
	for _, txn := range s.items {
		if txn.Owner == owner {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (s *Store) Clear(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, txn := range s.items {
		if txn.Owner != owner {
			kept = append(kept, txn)
		}
	}
	s.items = kept
	return nil
}

func (s *Store) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

// Len reports the number of stored records across all owners.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
