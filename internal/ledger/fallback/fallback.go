// Package fallback layers an ephemeral in-memory tier over a durable ledger
// store. When the durable backend is unreachable the operation is retried
// against the memory tier, so the interaction cycle keeps working for the
// rest of the session instead of failing.
//
// Rows written to the memory tier are never copied back into the durable
// backend after it recovers; they are lost on process exit. Known data-loss
// gap, kept deliberately.
package fallback

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/core"
	"github.com/Saubhagya-45/smart-finance-tracker/internal/ledger"
	"github.com/Saubhagya-45/smart-finance-tracker/internal/ledger/memory"
)

const defaultOpTimeout = 5 * time.Second

type Store struct {
	durable  ledger.Store
	local    *memory.Store
	timeout  time.Duration
	degraded atomic.Bool
}

func New(durable ledger.Store, opTimeout time.Duration) *Store {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &Store{
		durable: durable,
		local:   memory.New(),
		timeout: opTimeout,
	}
}

// Degraded reports whether the last durable-backend call failed and the
// memory tier served the operation. It resets as soon as a durable call
// succeeds again.
func (s *Store) Degraded() bool {
	return s.degraded.Load()
}

func (s *Store) Add(ctx context.Context, txn core.Transaction) (core.Transaction, error) {
	// Validation failures are the caller's problem, never a backend failure;
	// reject before touching either tier.
	if err := txn.Validate(); err != nil {
		return core.Transaction{}, err
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	stored, err := s.durable.Add(cctx, txn)
	cancel()
	if err == nil {
		s.degraded.Store(false)
		return stored, nil
	}

	slog.WarnContext(ctx, "Durable backend unavailable, saving to in-memory fallback",
		"error", err,
		"owner", txn.Owner)
	s.degraded.Store(true)
	return s.local.Add(ctx, txn)
}

func (s *Store) List(ctx context.Context, owner string) ([]core.Transaction, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	txns, err := s.durable.List(cctx, owner)
	cancel()
	if err == nil {
		s.degraded.Store(false)
		return txns, nil
	}

	slog.WarnContext(ctx, "Durable backend unavailable, listing in-memory fallback",
		"error", err,
		"owner", owner)
	s.degraded.Store(true)
	return s.local.List(ctx, owner)
}

func (s *Store) Clear(ctx context.Context, owner string) error {
	// The memory tier clears unconditionally so a degraded session's reset
	// still takes effect.
	if err := s.local.Clear(ctx, owner); err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	err := s.durable.Clear(cctx, owner)
	cancel()
	if err != nil {
		slog.WarnContext(ctx, "Durable backend unavailable, cleared in-memory fallback only",
			"error", err,
			"owner", owner)
		s.degraded.Store(true)
		return nil
	}
	s.degraded.Store(false)
	return nil
}

func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.local.ClearAll(ctx); err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	err := s.durable.ClearAll(cctx)
	cancel()
	if err != nil {
		slog.WarnContext(ctx, "Durable backend unavailable, cleared in-memory fallback only",
			"error", err)
		s.degraded.Store(true)
		return nil
	}
	s.degraded.Store(false)
	return nil
}
