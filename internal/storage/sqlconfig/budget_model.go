package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// MonthlyBudget represents a monthly_budgets row, unique per (user, year, month).
type MonthlyBudget struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	Year          int             `db:"year"`
	Month         int             `db:"month"`
	InitialAmount decimal.Decimal `db:"initial_amount"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

type IBudgetTable interface {
	Find(ctx context.Context, userID uuid.UUID, year, month int) (*MonthlyBudget, error)
	// Upsert inserts or replaces the initial amount, keeping the original id
	// and created_at, and returns the stored row.
	Upsert(ctx context.Context, budget *MonthlyBudget) (*MonthlyBudget, error)
	// List orders newest period first.
	List(ctx context.Context, userID uuid.UUID) ([]*MonthlyBudget, error)
}
