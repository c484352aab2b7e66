package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const budgetsTable = "monthly_budgets"

var budgetColumns = []string{"id", "user_id", "year", "month", "initial_amount", "created_at", "updated_at"}

var _ IBudgetTable = (*BudgetsTable)(nil)

type BudgetsTable struct {
	exec bob.Executor
}

func NewBudgetsTable(exec bob.Executor) *BudgetsTable {
	return &BudgetsTable{exec: exec}
}

func (t *BudgetsTable) Find(ctx context.Context, userID uuid.UUID, year, month int) (*MonthlyBudget, error) {
	query := psql.Select(
		sm.Columns(columnList(budgetColumns)...),
		sm.From(budgetsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("year").EQ(psql.Arg(year))),
		sm.Where(psql.Quote("month").EQ(psql.Arg(month))),
	)
	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[MonthlyBudget]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find budget: %w", err)
	}
	return &row, nil
}

func (t *BudgetsTable) Upsert(ctx context.Context, budget *MonthlyBudget) (*MonthlyBudget, error) {
	query := psql.Insert(
		im.Into(budgetsTable, budgetColumns...),
		im.Values(psql.Arg(
			budget.ID, budget.UserID, budget.Year, budget.Month,
			budget.InitialAmount, budget.CreatedAt, budget.UpdatedAt,
		)),
		im.OnConflict("user_id", "year", "month").DoUpdate(
			im.SetExcluded("initial_amount", "updated_at"),
		),
		im.Returning(columnList(budgetColumns)...),
	)
	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[MonthlyBudget]())
	if err != nil {
		return nil, fmt.Errorf("upsert budget: %w", err)
	}
	return &row, nil
}

func (t *BudgetsTable) List(ctx context.Context, userID uuid.UUID) ([]*MonthlyBudget, error) {
	query := psql.Select(
		sm.Columns(columnList(budgetColumns)...),
		sm.From(budgetsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("year")).Desc(),
		sm.OrderBy(psql.Quote("month")).Desc(),
	)
	rows, err := bob.All(ctx, t.exec, query, scan.StructMapper[MonthlyBudget]())
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	result := make([]*MonthlyBudget, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
