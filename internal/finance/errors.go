package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports malformed input to a value type or entity.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference to a resource that does not exist for the user.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// InsufficientBalanceError is returned by admission control. Available is the
// balance the rejected amount was checked against.
type InsufficientBalanceError struct {
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Saldo insuficiente. Saldo disponible: %s €", e.Available.StringFixed(2))
}

// ConflictError reports a write that collides with existing data, such as a
// duplicate email or category name.
type ConflictError struct {
	Resource string
	Message  string
}

func (e *ConflictError) Error() string {
	return e.Message
}
