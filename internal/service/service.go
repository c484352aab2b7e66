package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-manager/internal/events"
	"github.com/carson-networks/money-manager/internal/mailer"
	"github.com/carson-networks/money-manager/internal/operator/actions"
	"github.com/carson-networks/money-manager/internal/storage"
)

// ActionProcessor runs a write action inside one storage transaction.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// TokenIssuer signs session tokens for logged-in users.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// Dependencies are the collaborators shared by the services.
type Dependencies struct {
	Mailer    mailer.Mailer
	Publisher events.Publisher
	Tokens    TokenIssuer
	Logger    logrus.FieldLogger
	Now       func() time.Time
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Category    *CategoryService
	Budget      *BudgetService
	Auth        *AuthService
	Profile     *ProfileService
}

// NewService wires the services. Reads go straight to store, writes are
// handed to operator.
func NewService(store *storage.Storage, operator ActionProcessor, deps Dependencies) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NopPublisher{}
	}

	categories := NewCategoryService(store, operator)
	return &Service{
		Transaction: NewTransactionService(store, operator, deps.Publisher, deps.Logger, deps.Now),
		Category:    categories,
		Budget:      NewBudgetService(store, operator, deps.Now),
		Auth:        NewAuthService(store, operator, deps.Tokens, deps.Mailer, deps.Logger, deps.Now),
		Profile:     NewProfileService(store, operator),
	}
}
