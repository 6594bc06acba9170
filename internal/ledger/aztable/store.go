// Package aztable is the remote table store backend, persisting ledger
// records in an Azure Storage table. The owner is the partition key, so
// per-owner list and clear stay single-partition operations.
package aztable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/google/uuid"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/core"
)

const (
	// Standard Azurite account name and key
	azuriteAccountName = "devstoreaccount1"
	azuriteAccountKey  = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="

	// globalPartition holds the records of the shared, ownerless ledger.
	// Azure Tables forbids empty partition keys.
	globalPartition = "global"
)

type Store struct {
	client *aztables.Client
	table  string
}

// New connects to the table service and ensures the transactions table
// exists. A plain-http URL selects Azurite shared-key credentials; anything
// else authenticates with the default Azure credential chain.
func New(ctx context.Context, serviceURL, table string) (*Store, error) {
	var serviceClient *aztables.ServiceClient

	if isLocal(serviceURL) {
		slog.Info("using Azurite credentials for table store", "table", table)
		cred, err := aztables.NewSharedKeyCredential(azuriteAccountName, azuriteAccountKey)
		if err != nil {
			return nil, fmt.Errorf("create shared key credential: %w", err)
		}
		serviceClient, err = aztables.NewServiceClientWithSharedKey(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("create table service client with shared key: %w", err)
		}
	} else {
		slog.Info("using default Azure credentials for table store", "table", table)
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("create default azure credential: %w", err)
		}
		serviceClient, err = aztables.NewServiceClient(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("create table service client: %w", err)
		}
	}

	if _, err := serviceClient.CreateTable(ctx, table, nil); err != nil {
		var azErr *azcore.ResponseError
		if !errors.As(err, &azErr) || azErr.ErrorCode != "TableAlreadyExists" {
			return nil, fmt.Errorf("create table %s: %w", table, err)
		}
	}

	return &Store{
		client: serviceClient.NewClient(table),
		table:  table,
	}, nil
}

func isLocal(serviceURL string) bool {
	return strings.HasPrefix(serviceURL, "http://")
}

func (s *Store) Add(ctx context.Context, txn core.Transaction) (core.Transaction, error) {
	if err := txn.Validate(); err != nil {
		return core.Transaction{}, err
	}
	txn.ID = uuid.NewString()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	entityJSON, err := json.Marshal(entityFromTransaction(txn))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("marshal entity: %w", err)
	}
	if _, err := s.client.AddEntity(ctx, entityJSON, nil); err != nil {
		return core.Transaction{}, fmt.Errorf("add entity: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to table store",
		"id", txn.ID,
		"owner", txn.Owner,
		"kind", txn.Kind,
		"amount_cents", txn.Amount.Cents)

	return txn, nil
}

func (s *Store) List(ctx context.Context, owner string) ([]core.Transaction, error) {
	filter := fmt.Sprintf("PartitionKey eq '%s'", escapeFilterValue(partitionKey(owner)))
	pager := s.client.NewListEntitiesPager(&aztables.ListEntitiesOptions{
		Filter: &filter,
	})

	var txns []core.Transaction
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list entities: %w", err)
		}
		for _, entity := range resp.Entities {
			var parsed map[string]any
			if err := json.Unmarshal(entity, &parsed); err != nil {
				continue
			}
			txns = append(txns, transactionFromEntity(parsed))
		}
	}

	// The table service orders by keys, not insertion time; sort newest first
	// to match the relational backend.
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})
	return txns, nil
}

func (s *Store) Clear(ctx context.Context, owner string) error {
	pk := partitionKey(owner)
	rowKeys, err := s.rowKeys(ctx, fmt.Sprintf("PartitionKey eq '%s'", escapeFilterValue(pk)))
	if err != nil {
		return err
	}
	return s.deleteRows(ctx, map[string][]string{pk: rowKeys[pk]})
}

func (s *Store) ClearAll(ctx context.Context) error {
	rowKeys, err := s.rowKeys(ctx, "")
	if err != nil {
		return err
	}
	return s.deleteRows(ctx, rowKeys)
}

// rowKeys collects RowKeys grouped by partition for the given filter
// (empty filter means the whole table).
func (s *Store) rowKeys(ctx context.Context, filter string) (map[string][]string, error) {
	selectFields := "PartitionKey,RowKey"
	opts := &aztables.ListEntitiesOptions{Select: &selectFields}
	if filter != "" {
		opts.Filter = &filter
	}
	pager := s.client.NewListEntitiesPager(opts)

	keys := make(map[string][]string)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list entity keys: %w", err)
		}
		for _, entity := range resp.Entities {
			var parsed map[string]any
			if err := json.Unmarshal(entity, &parsed); err != nil {
				continue
			}
			pk, _ := parsed["PartitionKey"].(string)
			rk, _ := parsed["RowKey"].(string)
			if pk != "" && rk != "" {
				keys[pk] = append(keys[pk], rk)
			}
		}
	}
	return keys, nil
}

// deleteRows submits batched delete transactions, one batch per partition,
// chunked to the service's 100-action limit.
func (s *Store) deleteRows(ctx context.Context, keys map[string][]string) error {
	const batchSize = 100
	for pk, rowKeys := range keys {
		var batch []aztables.TransactionAction
		for _, rk := range rowKeys {
			entityJSON, _ := json.Marshal(map[string]any{
				"PartitionKey": pk,
				"RowKey":       rk,
			})
			batch = append(batch, aztables.TransactionAction{
				ActionType: aztables.TransactionTypeDelete,
				Entity:     entityJSON,
			})
		}
		for i := 0; i < len(batch); i += batchSize {
			end := i + batchSize
			if end > len(batch) {
				end = len(batch)
			}
			if _, err := s.client.SubmitTransaction(ctx, batch[i:end], nil); err != nil {
				return fmt.Errorf("submit delete batch for partition %s: %w", pk, err)
			}
		}
	}
	return nil
}

func partitionKey(owner string) string {
	if owner == "" {
		return globalPartition
	}
	return owner
}

func ownerFromPartition(pk string) string {
	if pk == globalPartition {
		return ""
	}
	return pk
}

// escapeFilterValue doubles single quotes for OData filter literals.
func escapeFilterValue(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

func entityFromTransaction(txn core.Transaction) map[string]any {
	return map[string]any{
		"PartitionKey": partitionKey(txn.Owner),
		"RowKey":       txn.ID,
		"Kind":         string(txn.Kind),
		"Category":     txn.Category,
		// Annotated as Edm.Int64 so the value survives the JSON trip exactly;
		// an unannotated number would come back as a lossy Edm.Double.
		"AmountCents":            strconv.FormatInt(txn.Amount.Cents, 10),
		"AmountCents@odata.type": "Edm.Int64",
		"Note":                   txn.Note,
		"CreatedAt":              txn.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func transactionFromEntity(parsed map[string]any) core.Transaction {
	getString := func(key string) string {
		if v, ok := parsed[key].(string); ok {
			return v
		}
		return ""
	}

	var cents int64
	switch v := parsed["AmountCents"].(type) {
	case string:
		cents, _ = strconv.ParseInt(v, 10, 64)
	case float64:
		// Rows written before the Edm.Int64 annotation.
		cents = int64(v)
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, getString("CreatedAt"))

	return core.Transaction{
		ID:        getString("RowKey"),
		Owner:     ownerFromPartition(getString("PartitionKey")),
		Kind:      core.Kind(getString("Kind")),
		Category:  getString("Category"),
		Amount:    core.Money{Cents: cents},
		Note:      getString("Note"),
		CreatedAt: createdAt,
	}
}
