package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/handlers/v1/apierror"
	"github.com/carson-networks/money-manager/internal/logging"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Description string  `json:"description" required:"true" minLength:"1" doc:"What the money was for"`
	Amount      float64 `json:"amount" required:"true" doc:"Positive amount, rounded to cents"`
	Type        string  `json:"type" required:"true" doc:"INCOME, EXPENSE or SAVING"`
	Category    string  `json:"category" required:"true" minLength:"1" doc:"Category name"`
	Date        string  `json:"date,omitempty" doc:"YYYY-MM-DD or RFC3339 date, defaults to now"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, params finance.NewTransactionParams) (finance.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Creates a transaction. Expenses and savings are rejected when they exceed the available balance of their month.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
		Security:      auth.Protected(),
	}, h.handle)
}

// parseDate accepts a calendar date or a full RFC3339 timestamp. An empty
// value yields the zero time, which the service replaces with now; any
// given date must fall in a listable year.
func parseDate(ctx context.Context, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, raw); err != nil {
			return time.Time{}, huma.Error400BadRequest("invalid date", err)
		}
	}
	if err := finance.ValidateDate(date.UTC()); err != nil {
		return time.Time{}, apierror.Convert(ctx, err)
	}
	return date, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	date, err := parseDate(ctx, input.Body.Date)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	stopTimer := logData.AddTiming("createTransactionMs")
	tx, err := h.TransactionService.CreateTransaction(ctx, finance.NewTransactionParams{
		UserID:      userID,
		Description: input.Body.Description,
		Amount:      input.Body.Amount,
		Kind:        input.Body.Type,
		Category:    input.Body.Category,
		Date:        date,
	})
	stopTimer()
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}

	logData.AddData("transactionId", tx.ID.String())
	return &CreateTransactionOutput{Body: newTransaction(tx)}, nil
}
