package actions

import (
	"context"

	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// SetBudget upserts a monthly budget. Stored holds the persisted row.
type SetBudget struct {
	Budget *sqlconfig.MonthlyBudget

	Stored *sqlconfig.MonthlyBudget
	IAction
}

func (s *SetBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	stored, err := writer.Budgets.Upsert(ctx, s.Budget)
	if err != nil {
		return err
	}
	s.Stored = stored
	return nil
}
