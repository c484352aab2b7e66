package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// DeleteTransaction removes one of the user's transactions. Deleted holds
// the removed row on success.
type DeleteTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID

	Deleted *sqlconfig.Transaction
	IAction
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Transactions.FindByID(ctx, d.UserID, d.ID)
	if err != nil {
		return err
	}
	if row == nil {
		return &finance.NotFoundError{Resource: "Transaction", ID: d.ID.String()}
	}

	deleted, err := writer.Transactions.Delete(ctx, d.UserID, d.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return &finance.NotFoundError{Resource: "Transaction", ID: d.ID.String()}
	}

	d.Deleted = row
	return nil
}
