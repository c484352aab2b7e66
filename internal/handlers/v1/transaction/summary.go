package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/handlers/v1/apierror"
	"github.com/carson-networks/money-manager/internal/logging"
	"github.com/carson-networks/money-manager/internal/service"
)

// SummaryInput is the Huma input for the monthly summary.
type SummaryInput struct {
	Year  int `query:"year" minimum:"1900" maximum:"9999" doc:"Year, defaults to the current one"`
	Month int `query:"month" minimum:"1" maximum:"12" doc:"Month 1-12, defaults to the current one"`
}

// SummaryBody is the monthly summary response.
type SummaryBody struct {
	Year               int                `json:"year"`
	Month              int                `json:"month"`
	Carryover          float64            `json:"carryover" doc:"Net balance of every earlier month"`
	TotalIncome        float64            `json:"totalIncome"`
	TotalExpenses      float64            `json:"totalExpenses"`
	TotalSaving        float64            `json:"totalSaving"`
	Balance            float64            `json:"balance" doc:"Income minus expenses minus saving of this month"`
	ExpensesByCategory map[string]float64 `json:"expensesByCategory"`
	IncomeByCategory   map[string]float64 `json:"incomeByCategory"`
	SavingByCategory   map[string]float64 `json:"savingByCategory"`
	TransactionCount   int                `json:"transactionCount"`
}

type SummaryOutput struct {
	Body SummaryBody
}

type summaryGetter interface {
	MonthlySummary(ctx context.Context, userID uuid.UUID, year, month int) (service.MonthlySummary, error)
}

// SummaryHandler handles GET /v1/transaction/summary.
type SummaryHandler struct {
	TransactionService summaryGetter
	now                func() time.Time
}

func NewSummaryHandler(svc summaryGetter) *SummaryHandler {
	return &SummaryHandler{TransactionService: svc, now: time.Now}
}

func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transaction-summary",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/summary",
		Summary:     "Monthly summary",
		Description: "Totals of one month by type and category, plus the balance carried over from earlier months.",
		Tags:        []string{"Transactions"},
		Security:    auth.Protected(),
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	year, month := period(h.now(), input.Year, input.Month)

	stopTimer := logging.GetLogData(ctx).AddTiming("summaryMs")
	summary, err := h.TransactionService.MonthlySummary(ctx, userID, year, month)
	stopTimer()
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}

	return &SummaryOutput{Body: SummaryBody{
		Year:               summary.Year,
		Month:              summary.Month,
		Carryover:          toFloat(summary.Carryover),
		TotalIncome:        toFloat(summary.TotalIncome),
		TotalExpenses:      toFloat(summary.TotalExpenses),
		TotalSaving:        toFloat(summary.TotalSaving),
		Balance:            toFloat(summary.Balance),
		ExpensesByCategory: toFloatMap(summary.ExpensesByCategory),
		IncomeByCategory:   toFloatMap(summary.IncomeByCategory),
		SavingByCategory:   toFloatMap(summary.SavingByCategory),
		TransactionCount:   summary.TransactionCount,
	}}, nil
}
