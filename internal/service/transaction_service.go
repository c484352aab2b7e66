package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/money-manager/internal/events"
	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/operator/actions"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage   *storage.Storage
	operator  ActionProcessor
	publisher events.Publisher
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, operator ActionProcessor, publisher events.Publisher, logger logrus.FieldLogger, now func() time.Time) *TransactionService {
	return &TransactionService{
		storage:   store,
		operator:  operator,
		publisher: publisher,
		logger:    logger,
		now:       now,
	}
}

// CreateTransaction validates params, runs admission control and stores the
// transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, params finance.NewTransactionParams) (finance.Transaction, error) {
	tx, err := finance.NewTransaction(params, s.now())
	if err != nil {
		return finance.Transaction{}, err
	}

	if err := s.operator.Process(ctx, &actions.CreateTransaction{Transaction: tx}); err != nil {
		return finance.Transaction{}, err
	}

	s.publish(ctx, events.TransactionCreated, tx)
	return tx, nil
}

// ListMonth returns the user's transactions of one month, newest first.
func (s *TransactionService) ListMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]finance.Transaction, error) {
	if err := finance.ValidateYearMonth(year, month); err != nil {
		return nil, err
	}

	rows, err := s.storage.Transactions.ListByMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	return sqlconfig.ToFinance(rows)
}

// DeleteTransaction removes one of the user's transactions.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	action := &actions.DeleteTransaction{UserID: userID, ID: id}
	if err := s.operator.Process(ctx, action); err != nil {
		return err
	}

	deleted, err := action.Deleted.Finance()
	if err != nil {
		s.logger.WithError(err).WithField("transactionId", id).Warn("TransactionService.DeleteTransaction: event skipped")
		return nil
	}
	s.publish(ctx, events.TransactionDeleted, deleted)
	return nil
}

// MonthlySummary aggregates one month and the carry-over into it.
func (s *TransactionService) MonthlySummary(ctx context.Context, userID uuid.UUID, year, month int) (MonthlySummary, error) {
	if err := finance.ValidateYearMonth(year, month); err != nil {
		return MonthlySummary{}, err
	}

	var (
		rows   []*sqlconfig.Transaction
		before finance.Totals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.storage.Transactions.ListByMonth(gctx, userID, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		before, err = s.storage.Transactions.SumBefore(gctx, userID, year, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return MonthlySummary{}, err
	}

	txs, err := sqlconfig.ToFinance(rows)
	if err != nil {
		return MonthlySummary{}, err
	}

	return MonthlySummary{
		Year:      year,
		Month:     month,
		Carryover: before.Balance(),
		Summary:   finance.Aggregate(txs),
	}, nil
}

// Annual buckets the user's transactions of year by month.
func (s *TransactionService) Annual(ctx context.Context, userID uuid.UUID, year int) (finance.AnnualSummary, error) {
	if err := finance.ValidateYear(year); err != nil {
		return finance.AnnualSummary{}, err
	}

	rows, err := s.storage.Transactions.ListByYear(ctx, userID, year)
	if err != nil {
		return finance.AnnualSummary{}, err
	}
	txs, err := sqlconfig.ToFinance(rows)
	if err != nil {
		return finance.AnnualSummary{}, err
	}
	return finance.Annual(txs, year), nil
}

// publish never fails the request; delivery problems are only logged.
func (s *TransactionService) publish(ctx context.Context, eventType string, tx finance.Transaction) {
	event := events.NewTransactionEvent(eventType, tx, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event":         eventType,
			"transactionId": tx.ID,
		}).Warn("TransactionService.publish")
	}
}
