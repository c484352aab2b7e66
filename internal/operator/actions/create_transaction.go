package actions

import (
	"context"

	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// CreateTransaction admits and stores a validated transaction. The owning
// user row is locked first so concurrent admissions for the same user see
// each other's writes.
type CreateTransaction struct {
	Transaction finance.Transaction
	IAction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	tx := t.Transaction

	user, err := writer.Users.FindByIDForUpdate(ctx, tx.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return &finance.NotFoundError{Resource: "User", ID: tx.UserID.String()}
	}

	if !tx.Kind.IsIncome() {
		totals, err := writer.Transactions.SumBefore(ctx, tx.UserID, tx.Year(), tx.Month())
		if err != nil {
			return err
		}

		rows, err := writer.Transactions.ListByMonth(ctx, tx.UserID, tx.Year(), tx.Month())
		if err != nil {
			return err
		}
		existing, err := sqlconfig.ToFinance(rows)
		if err != nil {
			return err
		}

		month := finance.Aggregate(existing)
		if err := finance.Admit(tx.Kind, tx.Amount, totals.Balance(), month); err != nil {
			return err
		}
	}

	return writer.Transactions.Insert(ctx, sqlconfig.NewTransactionRow(tx))
}
