package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// Profile is the public view of a user.
type Profile struct {
	ID            uuid.UUID
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool
	CreatedAt     time.Time
}

func newProfile(user *sqlconfig.User) Profile {
	return Profile{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		AvatarURL:     user.AvatarURL,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}

// Category is a user-defined label. Transactions refer to it by name.
type Category struct {
	ID    uuid.UUID
	Name  string
	Color string
	Icon  string
}

func newCategory(row *sqlconfig.Category) Category {
	return Category{ID: row.ID, Name: row.Name, Color: row.Color, Icon: row.Icon}
}

// Budget is the initial amount a user recorded for a month.
type Budget struct {
	ID            uuid.UUID
	Year          int
	Month         int
	InitialAmount decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func newBudget(row *sqlconfig.MonthlyBudget) Budget {
	return Budget{
		ID:            row.ID,
		Year:          row.Year,
		Month:         row.Month,
		InitialAmount: row.InitialAmount,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token   string
	Profile Profile
}
