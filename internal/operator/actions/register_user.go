package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// RegisterUser creates a user together with their starting categories.
type RegisterUser struct {
	User       *sqlconfig.User
	Categories []*sqlconfig.Category
	IAction
}

func (r *RegisterUser) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.Users.Insert(ctx, r.User); err != nil {
		if errors.Is(err, sqlconfig.ErrDuplicate) {
			return &finance.ConflictError{Resource: "User", Message: "Email already registered"}
		}
		return err
	}

	for _, category := range r.Categories {
		if err := writer.Categories.Insert(ctx, category); err != nil {
			return err
		}
	}
	return nil
}
