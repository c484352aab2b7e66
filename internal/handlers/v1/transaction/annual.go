package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/handlers/v1/apierror"
)

type AnnualInput struct {
	Year int `path:"year" minimum:"1900" maximum:"9999" doc:"Year to roll up"`
}

// AnnualMonth is one month of the annual rollup.
type AnnualMonth struct {
	Month    int     `json:"month" minimum:"1" maximum:"12"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Saving   float64 `json:"saving"`
	Balance  float64 `json:"balance"`
}

type AnnualBody struct {
	Year   int           `json:"year"`
	Months []AnnualMonth `json:"months" doc:"Twelve entries, January first"`
}

type AnnualOutput struct {
	Body AnnualBody
}

type annualGetter interface {
	Annual(ctx context.Context, userID uuid.UUID, year int) (finance.AnnualSummary, error)
}

// AnnualHandler handles GET /v1/transaction/annual/{year}.
type AnnualHandler struct {
	TransactionService annualGetter
}

func NewAnnualHandler(svc annualGetter) *AnnualHandler {
	return &AnnualHandler{TransactionService: svc}
}

func (h *AnnualHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transaction-annual",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/annual/{year}",
		Summary:     "Annual rollup",
		Description: "Income, expenses, saving and balance of each month of a year. Carry-over is not included.",
		Tags:        []string{"Transactions"},
		Security:    auth.Protected(),
	}, h.handle)
}

func (h *AnnualHandler) handle(ctx context.Context, input *AnnualInput) (*AnnualOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}

	annual, err := h.TransactionService.Annual(ctx, userID, input.Year)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}

	body := AnnualBody{Year: annual.Year, Months: make([]AnnualMonth, 0, 12)}
	for month := 1; month <= 12; month++ {
		totals := annual.Months[month]
		body.Months = append(body.Months, AnnualMonth{
			Month:    month,
			Income:   toFloat(totals.Income),
			Expenses: toFloat(totals.Expenses),
			Saving:   toFloat(totals.Saving),
			Balance:  toFloat(totals.Balance),
		})
	}
	return &AnnualOutput{Body: body}, nil
}
