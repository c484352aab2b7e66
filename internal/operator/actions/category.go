package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

type CreateCategory struct {
	Category *sqlconfig.Category
	IAction
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	err := writer.Categories.Insert(ctx, c.Category)
	if errors.Is(err, sqlconfig.ErrDuplicate) {
		return &finance.ConflictError{Resource: "Category", Message: "Category already exists"}
	}
	return err
}

// DeleteCategory never touches transactions; they reference categories by name.
type DeleteCategory struct {
	UserID uuid.UUID
	ID     uuid.UUID
	IAction
}

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	deleted, err := writer.Categories.Delete(ctx, d.UserID, d.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return &finance.NotFoundError{Resource: "Category", ID: d.ID.String()}
	}
	return nil
}
