package aztable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/core"
)

func TestPartitionKey(t *testing.T) {
	assert.Equal(t, "global", partitionKey(""))
	assert.Equal(t, "alice", partitionKey("alice"))
	assert.Equal(t, "", ownerFromPartition("global"))
	assert.Equal(t, "alice", ownerFromPartition("alice"))
}

func TestEscapeFilterValue(t *testing.T) {
	assert.Equal(t, "plain", escapeFilterValue("plain"))
	assert.Equal(t, "o''brien", escapeFilterValue("o'brien"))
}

func TestEntityRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	txn := core.Transaction{
		ID:        "row-1",
		Owner:     "alice",
		Kind:      core.Expense,
		Category:  "Travel / Commute",
		Amount:    core.Money{Cents: 4250},
		Note:      "train",
		CreatedAt: createdAt,
	}

	entity := entityFromTransaction(txn)
	assert.Equal(t, "alice", entity["PartitionKey"])
	assert.Equal(t, "row-1", entity["RowKey"])

	got := transactionFromEntity(entity)
	assert.Equal(t, txn.ID, got.ID)
	assert.Equal(t, txn.Owner, got.Owner)
	assert.Equal(t, txn.Kind, got.Kind)
	assert.Equal(t, txn.Category, got.Category)
	assert.Equal(t, txn.Amount, got.Amount)
	assert.Equal(t, txn.Note, got.Note)
	assert.True(t, txn.CreatedAt.Equal(got.CreatedAt))
}

func TestEntityRoundTripGlobalOwner(t *testing.T) {
	txn := core.Transaction{
		ID:        "row-2",
		Kind:      core.Credit,
		Category:  "Salary",
		Amount:    core.Money{Cents: 100},
		CreatedAt: time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC),
	}
	entity := entityFromTransaction(txn)
	assert.Equal(t, "global", entity["PartitionKey"])

	got := transactionFromEntity(entity)
	assert.Equal(t, "", got.Owner)
}

func TestAmountStoredAsInt64(t *testing.T) {
	// Large balances must survive the JSON trip exactly; doubles lose
	// precision above 2^53.
	big := int64(1) << 60
	txn := core.Transaction{
		ID:        "row-3",
		Owner:     "alice",
		Kind:      core.Credit,
		Category:  "Investment Return",
		Amount:    core.Money{Cents: big},
		CreatedAt: time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC),
	}

	entity := entityFromTransaction(txn)
	assert.Equal(t, "Edm.Int64", entity["AmountCents@odata.type"])
	assert.Equal(t, "1152921504606846976", entity["AmountCents"])

	got := transactionFromEntity(entity)
	assert.Equal(t, big, got.Amount.Cents)
}

func TestAmountReadsLegacyDoubleRows(t *testing.T) {
	entity := map[string]any{
		"PartitionKey": "alice",
		"RowKey":       "row-4",
		"Kind":         "Expense",
		"Category":     "Shopping",
		"AmountCents":  float64(4250),
		"CreatedAt":    "2025-04-02T09:30:00Z",
	}
	got := transactionFromEntity(entity)
	assert.Equal(t, int64(4250), got.Amount.Cents)
}

func TestIsLocal(t *testing.T) {
	assert.True(t, isLocal("http://127.0.0.1:10002/devstoreaccount1"))
	assert.False(t, isLocal("https://myaccount.table.core.windows.net"))
}
