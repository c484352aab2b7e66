package service

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/operator/actions"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

const (
	defaultCategoryColor = "#94a3b8"
	defaultCategoryIcon  = "📦"
)

// defaultCategories are seeded for every new user.
var defaultCategories = []Category{
	{Name: "Ahorro", Color: "#a78bfa", Icon: "🐷"},
	{Name: "Alimentación", Color: "#f97316", Icon: "🍔"},
	{Name: "Educación", Color: "#84cc16", Icon: "📚"},
	{Name: "Freelance", Color: "#6366f1", Icon: "🖥️"},
	{Name: "Gastos", Color: "#f43f5e", Icon: "💸"},
	{Name: "Inversiones", Color: "#eab308", Icon: "📈"},
	{Name: "Niño", Color: "#a78bfa", Icon: "🧒"},
	{Name: "Ocio", Color: "#ec4899", Icon: "🎉"},
	{Name: "Otros", Color: defaultCategoryColor, Icon: defaultCategoryIcon},
	{Name: "Ropa", Color: "#f59e0b", Icon: "👕"},
	{Name: "Salario", Color: "#10b981", Icon: "💼"},
	{Name: "Salud", Color: "#22c55e", Icon: "💊"},
	{Name: "Tecnología", Color: "#06b6d4", Icon: "💻"},
	{Name: "Transporte", Color: "#3b82f6", Icon: "🚗"},
	{Name: "Vivienda", Color: "#8b5cf6", Icon: "🏠"},
}

// DefaultCategories returns fresh rows of the starter set for userID.
func DefaultCategories(userID uuid.UUID) ([]*sqlconfig.Category, error) {
	rows := make([]*sqlconfig.Category, 0, len(defaultCategories))
	for _, c := range defaultCategories {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		rows = append(rows, &sqlconfig.Category{ID: id, UserID: userID, Name: c.Name, Color: c.Color, Icon: c.Icon})
	}
	return rows, nil
}

// CategoryService manages a user's categories.
type CategoryService struct {
	storage  *storage.Storage
	operator ActionProcessor
}

func NewCategoryService(store *storage.Storage, operator ActionProcessor) *CategoryService {
	return &CategoryService{storage: store, operator: operator}
}

// List returns the user's categories ordered by name.
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	rows, err := s.storage.Categories.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = newCategory(row)
	}
	return categories, nil
}

// Create adds a category. Empty color and icon fall back to defaults.
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, name, color, icon string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, &finance.ValidationError{Field: "name", Message: "Category name is required"}
	}
	if color = strings.TrimSpace(color); color == "" {
		color = defaultCategoryColor
	}
	if icon = strings.TrimSpace(icon); icon == "" {
		icon = defaultCategoryIcon
	}

	id, err := uuid.NewV4()
	if err != nil {
		return Category{}, err
	}
	row := &sqlconfig.Category{ID: id, UserID: userID, Name: name, Color: color, Icon: icon}
	if err := s.operator.Process(ctx, &actions.CreateCategory{Category: row}); err != nil {
		return Category{}, err
	}
	return newCategory(row), nil
}

// Delete removes a category. Transactions filed under its name are kept.
func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteCategory{UserID: userID, ID: id})
}
