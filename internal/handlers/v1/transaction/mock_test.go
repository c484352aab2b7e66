package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/handlers/v1/handlertest"
	"github.com/carson-networks/money-manager/internal/service"
)

var (
	testUserID = uuid.Must(uuid.NewV4())
	fixedNow   = time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
)

// mockTransactionService is a mock for every transaction service interface.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, params finance.NewTransactionParams) (finance.Transaction, error) {
	args := m.Called(ctx, params)
	tx, _ := args.Get(0).(finance.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) ListMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]finance.Transaction, error) {
	args := m.Called(ctx, userID, year, month)
	txs, _ := args.Get(0).([]finance.Transaction)
	return txs, args.Error(1)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *mockTransactionService) MonthlySummary(ctx context.Context, userID uuid.UUID, year, month int) (service.MonthlySummary, error) {
	args := m.Called(ctx, userID, year, month)
	summary, _ := args.Get(0).(service.MonthlySummary)
	return summary, args.Error(1)
}

func (m *mockTransactionService) Annual(ctx context.Context, userID uuid.UUID, year int) (finance.AnnualSummary, error) {
	args := m.Called(ctx, userID, year)
	annual, _ := args.Get(0).(finance.AnnualSummary)
	return annual, args.Error(1)
}

// newTestAPI registers every transaction handler against an authenticated
// humatest API.
func newTestAPI(t *testing.T, svc *mockTransactionService) humatest.TestAPI {
	t.Helper()
	api := handlertest.NewAPI(t, testUserID)

	NewCreateTransactionHandler(svc).Register(api)

	list := NewListTransactionsHandler(svc)
	list.now = func() time.Time { return fixedNow }
	list.Register(api)

	NewDeleteTransactionHandler(svc).Register(api)

	summary := NewSummaryHandler(svc)
	summary.now = func() time.Time { return fixedNow }
	summary.Register(api)

	NewAnnualHandler(svc).Register(api)
	return api
}

func sampleTransaction(t *testing.T) finance.Transaction {
	t.Helper()
	tx, err := finance.NewTransaction(finance.NewTransactionParams{
		UserID:      testUserID,
		Description: "Coffee",
		Amount:      2.5,
		Kind:        "EXPENSE",
		Category:    "Ocio",
		Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}, fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	return tx
}

func decimalFrom(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
