package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/operator/actions"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// BudgetService stores the initial amount a user records per month. The
// figure is informational: admission and carry-over never read it.
type BudgetService struct {
	storage  *storage.Storage
	operator ActionProcessor
	now      func() time.Time
}

func NewBudgetService(store *storage.Storage, operator ActionProcessor, now func() time.Time) *BudgetService {
	return &BudgetService{storage: store, operator: operator, now: now}
}

func (s *BudgetService) Get(ctx context.Context, userID uuid.UUID, year, month int) (Budget, error) {
	if err := finance.ValidateYearMonth(year, month); err != nil {
		return Budget{}, err
	}

	row, err := s.storage.Budgets.Find(ctx, userID, year, month)
	if err != nil {
		return Budget{}, err
	}
	if row == nil {
		return Budget{}, &finance.NotFoundError{Resource: "Budget"}
	}
	return newBudget(row), nil
}

// Set creates or replaces the budget of a month.
func (s *BudgetService) Set(ctx context.Context, userID uuid.UUID, year, month int, initialAmount float64) (Budget, error) {
	if err := finance.ValidateYearMonth(year, month); err != nil {
		return Budget{}, err
	}
	amount, err := finance.NewMoney(initialAmount)
	if err != nil {
		return Budget{}, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return Budget{}, err
	}
	now := s.now().UTC()
	action := &actions.SetBudget{Budget: &sqlconfig.MonthlyBudget{
		ID:            id,
		UserID:        userID,
		Year:          year,
		Month:         month,
		InitialAmount: amount.Decimal(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}}
	if err := s.operator.Process(ctx, action); err != nil {
		return Budget{}, err
	}
	return newBudget(action.Stored), nil
}

// History lists every budget of the user, newest period first.
func (s *BudgetService) History(ctx context.Context, userID uuid.UUID) ([]Budget, error) {
	rows, err := s.storage.Budgets.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	budgets := make([]Budget, len(rows))
	for i, row := range rows {
		budgets[i] = newBudget(row)
	}
	return budgets, nil
}

// Carryover is the net balance of every month strictly before year/month.
func (s *BudgetService) Carryover(ctx context.Context, userID uuid.UUID, year, month int) (decimal.Decimal, error) {
	if err := finance.ValidateYearMonth(year, month); err != nil {
		return decimal.Zero, err
	}

	totals, err := s.storage.Transactions.SumBefore(ctx, userID, year, month)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Balance(), nil
}
