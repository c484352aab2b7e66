package finance

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// maxMoney is the first amount that no longer fits a NUMERIC(14, 2) column.
var maxMoney = decimal.New(1, 12)

// Money is a non-negative amount below 1,000,000,000,000 held with two
// decimal places. The zero value is 0.00.
type Money struct {
	value decimal.Decimal
}

// NewMoney builds Money from a float as round(raw*100)/100, with the
// multiplication done in floating point.
func NewMoney(raw float64) (Money, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return Money{}, newValidationError("amount", "amount must be a finite number")
	}
	if raw < 0 {
		return Money{}, newValidationError("amount", "amount cannot be negative")
	}
	cents := raw * 100
	if math.IsInf(cents, 0) {
		return Money{}, newValidationError("amount", "amount is out of range")
	}
	return MoneyFromDecimal(decimal.NewFromFloat(cents).Round(0).Shift(-2))
}

// ParseMoney builds Money from its decimal string form.
func ParseMoney(raw string) (Money, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Money{}, newValidationError("amount", "amount is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, newValidationError("amount", "amount must be a number")
	}
	return MoneyFromDecimal(d)
}

// MoneyFromDecimal rounds to cents and rejects negative or oversized values.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, newValidationError("amount", "amount cannot be negative")
	}
	d = d.Round(2)
	if d.GreaterThanOrEqual(maxMoney) {
		return Money{}, newValidationError("amount", "amount must be less than 1000000000000")
	}
	return Money{value: d}, nil
}

// MustMoney panics on invalid input. Intended for constants and tests.
func MustMoney(raw string) Money {
	m, err := ParseMoney(raw)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) (Money, error) {
	return MoneyFromDecimal(m.value.Add(other.value))
}

// Subtract fails when the result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	return MoneyFromDecimal(m.value.Sub(other.value))
}

func (m Money) Equal(other Money) bool {
	return m.value.Equal(other.value)
}

func (m Money) GreaterThan(d decimal.Decimal) bool {
	return m.value.GreaterThan(d)
}

func (m Money) Decimal() decimal.Decimal {
	return m.value
}

func (m Money) Float64() float64 {
	return m.value.InexactFloat64()
}

func (m Money) String() string {
	return m.value.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMoney(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
