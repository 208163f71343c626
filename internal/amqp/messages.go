package amqp

import (
	"encoding/json"
	"time"

	"spendlog/internal/core"
)

// RecordSyncMessage carries one appended expense to the sheet sync worker.
// The ledger file has no row identifiers the worker could refetch by, so the
// message holds the full record.
type RecordSyncMessage struct {
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Note        string    `json:"note"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRecordSyncMessage creates a sync message from an appended record.
func NewRecordSyncMessage(rec core.ExpenseRecord) *RecordSyncMessage {
	return &RecordSyncMessage{
		Date:        rec.Date,
		Category:    rec.Category,
		AmountCents: rec.Amount.Cents,
		Note:        rec.Note,
		Timestamp:   time.Now(),
	}
}

// Record reconstructs the expense record the message describes.
func (m *RecordSyncMessage) Record() core.ExpenseRecord {
	return core.ExpenseRecord{
		Date:     m.Date,
		Category: m.Category,
		Amount:   core.Money{Cents: m.AmountCents},
		Note:     m.Note,
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSyncMessageFromJSON creates a message from JSON bytes
func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
