package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/handlers/v1/apierror"
	"github.com/carson-networks/money-manager/internal/logging"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Year  int `query:"year" minimum:"1900" maximum:"9999" doc:"Year, defaults to the current one"`
	Month int `query:"month" minimum:"1" maximum:"12" doc:"Month 1-12, defaults to the current one"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Transactions of the month, newest first"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]finance.Transaction, error)
}

// ListTransactionsHandler handles GET /v1/transaction.
type ListTransactionsHandler struct {
	TransactionService transactionLister
	now                func() time.Time
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc, now: time.Now}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transaction",
		Summary:     "List transactions",
		Description: "Returns the transactions of one month.",
		Tags:        []string{"Transactions"},
		Security:    auth.Protected(),
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	year, month := period(h.now(), input.Year, input.Month)

	logData := logging.GetLogData(ctx)
	stopTimer := logData.AddTiming("listTransactionsMs")
	transactions, err := h.TransactionService.ListMonth(ctx, userID, year, month)
	stopTimer()
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	logData.AddData("transactionCount", len(transactions))

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}
	for i, tx := range transactions {
		resp.Transactions[i] = newTransaction(tx)
	}
	return &ListTransactionsOutput{Body: resp}, nil
}
