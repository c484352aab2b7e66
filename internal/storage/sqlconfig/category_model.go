package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// Category represents a categories row. Names are unique per user.
type Category struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`
	Name   string    `db:"name"`
	Color  string    `db:"color"`
	Icon   string    `db:"icon"`
}

type ICategoryTable interface {
	// Insert returns ErrDuplicate when the user already has the name.
	Insert(ctx context.Context, category *Category) error
	// List orders by name.
	List(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}
