package amqp

import (
	"encoding/json"
	"time"
)

// Event types published to the ledger exchange.
const (
	EventTransactionRecorded = "transaction.recorded"
	EventLedgerCleared       = "ledger.cleared"
)

// LedgerEvent notifies downstream consumers of a ledger mutation. It carries
// identifiers and magnitudes only; consumers needing full records read the
// store themselves.
type LedgerEvent struct {
	Type          string    `json:"type"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Owner         string    `json:"owner,omitempty"`
	Kind          string    `json:"kind,omitempty"`
	AmountCents   int64     `json:"amount_cents,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewTransactionRecordedEvent(transactionID, owner, kind string, amountCents int64) *LedgerEvent {
	return &LedgerEvent{
		Type:          EventTransactionRecorded,
		TransactionID: transactionID,
		Owner:         owner,
		Kind:          kind,
		AmountCents:   amountCents,
		OccurredAt:    time.Now(),
	}
}

func NewLedgerClearedEvent(owner string) *LedgerEvent {
	return &LedgerEvent{
		Type:       EventLedgerCleared,
		Owner:      owner,
		OccurredAt: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON creates an event from JSON bytes
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var event LedgerEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
