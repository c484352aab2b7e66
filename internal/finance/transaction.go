package finance

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Transaction is a single income, expense or saving entry. It is never
// modified after creation.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      Money
	Kind        Kind
	// Category is matched by name; it does not reference a category record.
	Category  string
	Date      time.Time
	CreatedAt time.Time
}

// NewTransactionParams carries unvalidated input for NewTransaction.
type NewTransactionParams struct {
	UserID      uuid.UUID
	Description string
	Amount      float64
	Kind        string
	Category    string
	// Date defaults to now when zero.
	Date time.Time
}

// NewTransaction validates the input and assigns a fresh id. Dates are stored
// in UTC so that Year and Month agree with the persisted columns.
func NewTransaction(params NewTransactionParams, now time.Time) (Transaction, error) {
	if params.UserID == uuid.Nil {
		return Transaction{}, newValidationError("userId", "user is required")
	}

	description := strings.TrimSpace(params.Description)
	if description == "" {
		return Transaction{}, newValidationError("description", "description cannot be empty")
	}

	amount, err := NewMoney(params.Amount)
	if err != nil {
		return Transaction{}, err
	}

	kind, err := ParseKind(params.Kind)
	if err != nil {
		return Transaction{}, err
	}

	category := strings.TrimSpace(params.Category)
	if category == "" {
		return Transaction{}, newValidationError("category", "category cannot be empty")
	}

	date := params.Date
	if date.IsZero() {
		date = now
	}
	date = date.UTC()
	if err := ValidateDate(date); err != nil {
		return Transaction{}, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return Transaction{}, err
	}

	return Transaction{
		ID:          id,
		UserID:      params.UserID,
		Description: description,
		Amount:      amount,
		Kind:        kind,
		Category:    category,
		Date:        date,
		CreatedAt:   now.UTC(),
	}, nil
}

func (t Transaction) Year() int {
	return t.Date.Year()
}

func (t Transaction) Month() int {
	return int(t.Date.Month())
}

// ValidateYearMonth checks a calendar period used to scope queries.
func ValidateYearMonth(year, month int) error {
	if err := ValidateYear(year); err != nil {
		return err
	}
	if month < 1 || month > 12 {
		return newValidationError("month", "month must be between 1 and 12")
	}
	return nil
}

func ValidateYear(year int) error {
	if year < 1900 || year > 9999 {
		return newValidationError("year", "year must be between 1900 and 9999")
	}
	return nil
}

// ValidateDate keeps transaction dates inside the years that can be listed
// and summarised.
func ValidateDate(date time.Time) error {
	if ValidateYear(date.Year()) != nil {
		return newValidationError("date", "date must fall between the years 1900 and 9999")
	}
	return nil
}
