// Package budget serves the per-month initial amounts and carry-over.
package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/handlers/v1/apierror"
	"github.com/carson-networks/money-manager/internal/service"
)

// Budget is the API response model for a monthly budget.
type Budget struct {
	ID            string  `json:"id"`
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	InitialAmount float64 `json:"initialAmount"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func newBudget(b service.Budget) Budget {
	return Budget{
		ID:            b.ID.String(),
		Year:          b.Year,
		Month:         b.Month,
		InitialAmount: b.InitialAmount.InexactFloat64(),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}

type budgetService interface {
	Get(ctx context.Context, userID uuid.UUID, year, month int) (service.Budget, error)
	Set(ctx context.Context, userID uuid.UUID, year, month int, initialAmount float64) (service.Budget, error)
	History(ctx context.Context, userID uuid.UUID) ([]service.Budget, error)
	Carryover(ctx context.Context, userID uuid.UUID, year, month int) (decimal.Decimal, error)
}

type PeriodInput struct {
	Year  int `path:"year" minimum:"1900" maximum:"9999"`
	Month int `path:"month" minimum:"1" maximum:"12"`
}

type SetInput struct {
	PeriodInput
	Body struct {
		InitialAmount float64 `json:"initialAmount" minimum:"0" doc:"Amount available at the start of the month"`
	}
}

type BudgetOutput struct {
	Body Budget
}

type HistoryOutput struct {
	Body struct {
		Budgets []Budget `json:"budgets" doc:"Newest period first"`
	}
}

type CarryoverOutput struct {
	Body struct {
		Year      int     `json:"year"`
		Month     int     `json:"month"`
		Carryover float64 `json:"carryover" doc:"Net balance of every month before this one"`
	}
}

// Handler serves /v1/budget.
type Handler struct {
	BudgetService budgetService
}

func NewHandler(svc budgetService) *Handler {
	return &Handler{BudgetService: svc}
}

// Register adds the fixed paths before /v1/budget/{year}/{month}.
func (h *Handler) Register(api huma.API) {
	tags := []string{"Budget"}
	huma.Register(api, huma.Operation{
		OperationID: "budget-history",
		Method:      http.MethodGet,
		Path:        "/v1/budget/history",
		Summary:     "Budget history",
		Tags:        tags,
		Security:    auth.Protected(),
	}, h.history)
	huma.Register(api, huma.Operation{
		OperationID: "budget-carryover",
		Method:      http.MethodGet,
		Path:        "/v1/budget/carryover/{year}/{month}",
		Summary:     "Carry-over into a month",
		Tags:        tags,
		Security:    auth.Protected(),
	}, h.carryover)
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{year}/{month}",
		Summary:     "Get monthly budget",
		Tags:        tags,
		Security:    auth.Protected(),
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "set-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget/{year}/{month}",
		Summary:     "Set monthly budget",
		Description: "Creates or replaces the initial amount of a month. It does not affect balances or admission.",
		Tags:        tags,
		Security:    auth.Protected(),
	}, h.set)
}

func (h *Handler) get(ctx context.Context, input *PeriodInput) (*BudgetOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	b, err := h.BudgetService.Get(ctx, userID, input.Year, input.Month)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	return &BudgetOutput{Body: newBudget(b)}, nil
}

func (h *Handler) set(ctx context.Context, input *SetInput) (*BudgetOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	b, err := h.BudgetService.Set(ctx, userID, input.Year, input.Month, input.Body.InitialAmount)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	return &BudgetOutput{Body: newBudget(b)}, nil
}

func (h *Handler) history(ctx context.Context, _ *struct{}) (*HistoryOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	budgets, err := h.BudgetService.History(ctx, userID)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}

	out := &HistoryOutput{}
	out.Body.Budgets = make([]Budget, len(budgets))
	for i, b := range budgets {
		out.Body.Budgets[i] = newBudget(b)
	}
	return out, nil
}

func (h *Handler) carryover(ctx context.Context, input *PeriodInput) (*CarryoverOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	carryover, err := h.BudgetService.Carryover(ctx, userID, input.Year, input.Month)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}

	out := &CarryoverOutput{}
	out.Body.Year = input.Year
	out.Body.Month = input.Month
	out.Body.Carryover = carryover.InexactFloat64()
	return out, nil
}
