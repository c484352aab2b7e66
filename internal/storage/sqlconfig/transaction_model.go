package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/money-manager/internal/finance"
)

// Transaction represents a transactions row. Year and Month are derived from
// Date on insert and must never be written independently.
type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Year        int             `db:"year"`
	Month       int             `db:"month"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Type        string          `db:"type"`
	Category    string          `db:"category"`
	Date        time.Time       `db:"date"`
	CreatedAt   time.Time       `db:"created_at"`
}

// NewTransactionRow maps a validated transaction onto its row.
func NewTransactionRow(tx finance.Transaction) *Transaction {
	return &Transaction{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Year:        tx.Year(),
		Month:       tx.Month(),
		Description: tx.Description,
		Amount:      tx.Amount.Decimal(),
		Type:        tx.Kind.String(),
		Category:    tx.Category,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
	}
}

// Finance converts the row back into the domain type.
func (t *Transaction) Finance() (finance.Transaction, error) {
	amount, err := finance.MoneyFromDecimal(t.Amount)
	if err != nil {
		return finance.Transaction{}, err
	}
	kind, err := finance.ParseKind(t.Type)
	if err != nil {
		return finance.Transaction{}, err
	}
	return finance.Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		Description: t.Description,
		Amount:      amount,
		Kind:        kind,
		Category:    t.Category,
		Date:        t.Date.UTC(),
		CreatedAt:   t.CreatedAt.UTC(),
	}, nil
}

// ToFinance converts a slice of rows, stopping at the first corrupt row.
func ToFinance(rows []*Transaction) ([]finance.Transaction, error) {
	txs := make([]finance.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := row.Finance()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// ITransactionTable defines the interface for transaction storage operations.
// Every query is scoped to a user.
type ITransactionTable interface {
	Insert(ctx context.Context, tx *Transaction) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	ListByMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]*Transaction, error)
	ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]*Transaction, error)
	// SumBefore totals every transaction strictly before (year, month).
	SumBefore(ctx context.Context, userID uuid.UUID, year, month int) (finance.Totals, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}
