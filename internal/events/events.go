// Package events publishes transaction lifecycle notifications for
// downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/finance"
)

const (
	TransactionCreated = "transaction.created"
	TransactionDeleted = "transaction.deleted"
)

// TransactionEvent is the JSON message body.
type TransactionEvent struct {
	Type          string        `json:"type"`
	TransactionID uuid.UUID     `json:"transactionId"`
	UserID        uuid.UUID     `json:"userId"`
	Kind          finance.Kind  `json:"kind"`
	Amount        finance.Money `json:"amount"`
	Category      string        `json:"category"`
	Year          int           `json:"year"`
	Month         int           `json:"month"`
	Timestamp     time.Time     `json:"timestamp"`
}

func NewTransactionEvent(eventType string, tx finance.Transaction, now time.Time) TransactionEvent {
	return TransactionEvent{
		Type:          eventType,
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		Kind:          tx.Kind,
		Amount:        tx.Amount,
		Category:      tx.Category,
		Year:          tx.Year(),
		Month:         tx.Month(),
		Timestamp:     now.UTC(),
	}
}

func (e TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event TransactionEvent) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, TransactionEvent) error { return nil }
func (NopPublisher) Close() error                                    { return nil }
