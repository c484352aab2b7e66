package finance

import "github.com/shopspring/decimal"

// Available is the ceiling for a new expense or saving in a month.
func Available(carryover decimal.Decimal, month Summary) decimal.Decimal {
	return carryover.Add(month.Balance).Round(2)
}

// Admit decides whether a new transaction may be recorded. month must be the
// aggregate of the transactions already in the target month, excluding the
// candidate. Income is always admitted; an amount equal to the available
// balance is admitted.
func Admit(kind Kind, amount Money, carryover decimal.Decimal, month Summary) error {
	if kind.IsIncome() {
		return nil
	}

	available := Available(carryover, month)
	if amount.GreaterThan(available) {
		return &InsufficientBalanceError{Available: available}
	}
	return nil
}
