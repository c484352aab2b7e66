package finance

import (
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = uuid.Must(uuid.FromString("6f1c2b7e-2d4a-4d0e-9a59-1b2c3d4e5f60"))

func validParams() NewTransactionParams {
	return NewTransactionParams{
		UserID:      testUser,
		Description: "  Groceries ",
		Amount:      42.129,
		Kind:        "expense",
		Category:    " Alimentación ",
		Date:        time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewTransaction_Valid(t *testing.T) {
	now := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	tx, err := NewTransaction(validParams(), now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, "Groceries", tx.Description)
	assert.Equal(t, "Alimentación", tx.Category)
	assert.Equal(t, KindExpense, tx.Kind)
	assert.Equal(t, "42.13", tx.Amount.String())
	assert.Equal(t, 2025, tx.Year())
	assert.Equal(t, 3, tx.Month())
	assert.Equal(t, now, tx.CreatedAt)
}

func TestNewTransaction_DefaultsDateToNow(t *testing.T) {
	params := validParams()
	params.Date = time.Time{}
	now := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)

	tx, err := NewTransaction(params, now)
	require.NoError(t, err)
	assert.True(t, tx.Date.Equal(now))
	assert.Equal(t, 12, tx.Month())
}

func TestNewTransaction_GeneratesDistinctIDs(t *testing.T) {
	a, err := NewTransaction(validParams(), time.Now())
	require.NoError(t, err)
	b, err := NewTransaction(validParams(), time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewTransaction_Invalid(t *testing.T) {
	cases := map[string]func(p *NewTransactionParams){
		"description": func(p *NewTransactionParams) { p.Description = "   " },
		"category":    func(p *NewTransactionParams) { p.Category = "" },
		"amount":      func(p *NewTransactionParams) { p.Amount = -5 },
		"type":        func(p *NewTransactionParams) { p.Kind = "gift" },
		"userId":      func(p *NewTransactionParams) { p.UserID = uuid.Nil },
		"date":        func(p *NewTransactionParams) { p.Date = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC) },
	}

	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			params := validParams()
			mutate(&params)
			_, err := NewTransaction(params, time.Now())

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, field, validationErr.Field)
		})
	}
}

func TestValidateYearMonth(t *testing.T) {
	assert.NoError(t, ValidateYearMonth(2025, 1))
	assert.NoError(t, ValidateYearMonth(2025, 12))
	assert.Error(t, ValidateYearMonth(2025, 0))
	assert.Error(t, ValidateYearMonth(2025, 13))
	assert.Error(t, ValidateYearMonth(10, 5))
}
