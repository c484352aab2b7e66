package memstore

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

var _ sqlconfig.IBudgetTable = (*budgetsTable)(nil)

type budgetsTable struct {
	sess *session
}

func (t *budgetsTable) Find(_ context.Context, userID uuid.UUID, year, month int) (*sqlconfig.MonthlyBudget, error) {
	var found *sqlconfig.MonthlyBudget
	t.sess.read(func(d *data) {
		if row, ok := d.budgets[budgetKey{userID, year, month}]; ok {
			found = &row
		}
	})
	return found, nil
}

func (t *budgetsTable) Upsert(_ context.Context, budget *sqlconfig.MonthlyBudget) (*sqlconfig.MonthlyBudget, error) {
	key := budgetKey{budget.UserID, budget.Year, budget.Month}
	var stored sqlconfig.MonthlyBudget
	t.sess.write(func(d *data) func(*data) {
		previous, existed := d.budgets[key]
		stored = *budget
		if existed {
			stored.ID = previous.ID
			stored.CreatedAt = previous.CreatedAt
		}
		d.budgets[key] = stored
		return func(d *data) {
			if existed {
				d.budgets[key] = previous
			} else {
				delete(d.budgets, key)
			}
		}
	})
	return &stored, nil
}

func (t *budgetsTable) List(_ context.Context, userID uuid.UUID) ([]*sqlconfig.MonthlyBudget, error) {
	var result []*sqlconfig.MonthlyBudget
	t.sess.read(func(d *data) {
		for key, row := range d.budgets {
			if key.userID == userID {
				row := row
				result = append(result, &row)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].Month > result[j].Month
	})
	return result, nil
}
