package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/ledger"
	"github.com/Saubhagya-45/smart-finance-tracker/internal/ledger/aztable"
	"github.com/Saubhagya-45/smart-finance-tracker/internal/ledger/fallback"
	"github.com/Saubhagya-45/smart-finance-tracker/internal/ledger/memory"
	"github.com/Saubhagya-45/smart-finance-tracker/internal/ledger/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new store factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateStore implements Factory.CreateStore
func (f *DefaultFactory) CreateStore(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryBackend:
		return f.createMemoryStore(config)
	case SQLiteBackend:
		return f.createSQLiteStore(config)
	case TableBackend:
		return f.createTableStore(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createMemoryStore(config Config) (*Result, error) {
	store := memory.New()

	f.logger.Info("Initialized memory backend")

	return &Result{
		Store:    store,
		Cleanup:  nil,
		Degraded: neverDegraded,
	}, nil
}

func (f *DefaultFactory) createSQLiteStore(config Config) (*Result, error) {
	repo, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"fallback_enabled", config.FallbackEnabled)

	return f.wrapDurable(repo, repo.Close, config), nil
}

func (f *DefaultFactory) createTableStore(ctx context.Context, config Config) (*Result, error) {
	store, err := aztable.New(ctx, config.TableServiceURL, config.TableName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize table store: %w", err)
	}

	f.logger.Info("Initialized table backend",
		"service_url", config.TableServiceURL,
		"table", config.TableName,
		"fallback_enabled", config.FallbackEnabled)

	return f.wrapDurable(store, nil, config), nil
}

// wrapDurable layers the in-memory fallback tier over a durable store when
// the configuration asks for it.
func (f *DefaultFactory) wrapDurable(durable ledger.Store, cleanup CleanupFunc, config Config) *Result {
	if !config.FallbackEnabled {
		return &Result{
			Store:    durable,
			Cleanup:  cleanup,
			Degraded: neverDegraded,
		}
	}

	wrapped := fallback.New(durable, config.OpTimeout)
	return &Result{
		Store:    wrapped,
		Cleanup:  cleanup,
		Degraded: wrapped.Degraded,
	}
}

func neverDegraded() bool { return false }
