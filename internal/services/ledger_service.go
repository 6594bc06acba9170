package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/amqp"
	"github.com/Saubhagya-45/smart-finance-tracker/internal/core"
	"github.com/Saubhagya-45/smart-finance-tracker/internal/ledger"
)

// LedgerService orchestrates ledger operations: validate, persist, then
// notify. Event publishing is best-effort; a broker failure never fails the
// user's operation.
type LedgerService struct {
	store        ledger.Store
	events       *amqp.Client
	requireOwner bool
}

// NewLedgerService builds the service. With requireOwner set (session-scoped
// deployments) an empty owner is rejected with core.ErrOwnerRequired instead
// of silently addressing the shared global ledger.
func NewLedgerService(store ledger.Store, events *amqp.Client, requireOwner bool) *LedgerService {
	return &LedgerService{
		store:        store,
		events:       events,
		requireOwner: requireOwner,
	}
}

func (s *LedgerService) checkOwner(owner string) error {
	if s.requireOwner && owner == "" {
		return core.ErrOwnerRequired
	}
	return nil
}

// Record validates and persists a new transaction, then publishes a
// transaction.recorded event.
func (s *LedgerService) Record(ctx context.Context, txn core.Transaction) (core.Transaction, error) {
	if err := s.checkOwner(txn.Owner); err != nil {
		return core.Transaction{}, err
	}
	if err := txn.Validate(); err != nil {
		return core.Transaction{}, err
	}

	stored, err := s.store.Add(ctx, txn)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.publish(ctx, amqp.NewTransactionRecordedEvent(
		stored.ID, stored.Owner, string(stored.Kind), stored.Amount.Cents))

	return stored, nil
}

// Transactions returns the owner's full record set.
func (s *LedgerService) Transactions(ctx context.Context, owner string) ([]core.Transaction, error) {
	if err := s.checkOwner(owner); err != nil {
		return nil, err
	}
	txns, err := s.store.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

// Reset deletes every record for the owner and publishes a ledger.cleared
// event.
func (s *LedgerService) Reset(ctx context.Context, owner string) error {
	if err := s.checkOwner(owner); err != nil {
		return err
	}
	if err := s.store.Clear(ctx, owner); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	s.publish(ctx, amqp.NewLedgerClearedEvent(owner))
	return nil
}

// ResetAll wipes the whole store.
func (s *LedgerService) ResetAll(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear all ledgers: %w", err)
	}
	s.publish(ctx, amqp.NewLedgerClearedEvent(""))
	return nil
}

func (s *LedgerService) publish(ctx context.Context, event *amqp.LedgerEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"type", event.Type,
			"transaction_id", event.TransactionID,
			"error", err)
		// Don't fail the request - the record is saved
	}
}

// Close releases the event publisher. Store cleanup belongs to whoever
// built the store.
func (s *LedgerService) Close() error {
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			return fmt.Errorf("close event publisher: %w", err)
		}
	}
	return nil
}
