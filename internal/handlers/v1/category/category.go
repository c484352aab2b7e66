// Package category serves the user's category list.
package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/handlers/v1/apierror"
	"github.com/carson-networks/money-manager/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID    string `json:"id" doc:"Category UUID"`
	Name  string `json:"name"`
	Color string `json:"color" doc:"CSS colour"`
	Icon  string `json:"icon" doc:"Emoji shown next to the name"`
}

func newCategory(c service.Category) Category {
	return Category{ID: c.ID.String(), Name: c.Name, Color: c.Color, Icon: c.Icon}
}

type categoryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]service.Category, error)
	Create(ctx context.Context, userID uuid.UUID, name, color, icon string) (service.Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type ListOutput struct {
	Body struct {
		Categories []Category `json:"categories" doc:"Categories ordered by name"`
	}
}

type CreateBody struct {
	Name  string `json:"name" required:"true" minLength:"1" maxLength:"50"`
	Color string `json:"color,omitempty" doc:"Defaults to grey"`
	Icon  string `json:"icon,omitempty" doc:"Defaults to a box"`
}

type CreateInput struct {
	Body CreateBody
}

type CreateOutput struct {
	Body Category
}

type DeleteInput struct {
	ID string `path:"id" format:"uuid" doc:"Category UUID"`
}

// Handler serves /v1/category.
type Handler struct {
	CategoryService categoryService
}

func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Categories"}
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/category",
		Summary:     "List categories",
		Tags:        tags,
		Security:    auth.Protected(),
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/category",
		Summary:       "Create category",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
		Security:      auth.Protected(),
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/v1/category/{id}",
		Summary:       "Delete category",
		Description:   "Deletes a category. Transactions filed under its name keep that name.",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
		Security:      auth.Protected(),
	}, h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	categories, err := h.CategoryService.List(ctx, userID)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}

	out := &ListOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = newCategory(c)
	}
	return out, nil
}

func (h *Handler) create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	created, err := h.CategoryService.Create(ctx, userID, input.Body.Name, input.Body.Color, input.Body.Icon)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	return &CreateOutput{Body: newCategory(created)}, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteInput) (*struct{}, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid id", err)
	}
	if err := h.CategoryService.Delete(ctx, userID, id); err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	return nil, nil
}
