package memstore

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

var _ sqlconfig.ITransactionTable = (*transactionsTable)(nil)

type transactionsTable struct {
	sess *session
}

func (t *transactionsTable) Insert(_ context.Context, tx *sqlconfig.Transaction) error {
	row := *tx
	t.sess.write(func(d *data) func(*data) {
		d.transactions[row.ID] = row
		return func(d *data) { delete(d.transactions, row.ID) }
	})
	return nil
}

func (t *transactionsTable) FindByID(_ context.Context, userID, id uuid.UUID) (*sqlconfig.Transaction, error) {
	var found *sqlconfig.Transaction
	t.sess.read(func(d *data) {
		if row, ok := d.transactions[id]; ok && row.UserID == userID {
			found = &row
		}
	})
	return found, nil
}

func (t *transactionsTable) ListByMonth(_ context.Context, userID uuid.UUID, year, month int) ([]*sqlconfig.Transaction, error) {
	return t.filter(func(row sqlconfig.Transaction) bool {
		return row.UserID == userID && row.Year == year && row.Month == month
	}), nil
}

func (t *transactionsTable) ListByYear(_ context.Context, userID uuid.UUID, year int) ([]*sqlconfig.Transaction, error) {
	return t.filter(func(row sqlconfig.Transaction) bool {
		return row.UserID == userID && row.Year == year
	}), nil
}

func (t *transactionsTable) SumBefore(_ context.Context, userID uuid.UUID, year, month int) (finance.Totals, error) {
	var totals finance.Totals
	rows := t.filter(func(row sqlconfig.Transaction) bool {
		return row.UserID == userID && finance.Before(row.Year, row.Month, year, month)
	})
	for _, row := range rows {
		totals.Add(finance.Kind(row.Type), row.Amount)
	}
	return totals, nil
}

func (t *transactionsTable) Delete(_ context.Context, userID, id uuid.UUID) (bool, error) {
	deleted := false
	t.sess.write(func(d *data) func(*data) {
		row, ok := d.transactions[id]
		if !ok || row.UserID != userID {
			return nil
		}
		delete(d.transactions, id)
		deleted = true
		return func(d *data) { d.transactions[id] = row }
	})
	return deleted, nil
}

func (t *transactionsTable) filter(match func(sqlconfig.Transaction) bool) []*sqlconfig.Transaction {
	var result []*sqlconfig.Transaction
	t.sess.read(func(d *data) {
		for _, row := range d.transactions {
			if match(row) {
				row := row
				result = append(result, &row)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
