package actions

import (
	"context"

	"github.com/carson-networks/money-manager/internal/storage"
)

// IAction is a unit of work run inside one storage write transaction. An
// error rolls the whole action back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
