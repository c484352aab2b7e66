package finance

import "github.com/shopspring/decimal"

// Before reports whether the period (year, month) precedes (refYear, refMonth).
func Before(year, month, refYear, refMonth int) bool {
	return year < refYear || (year == refYear && month < refMonth)
}

// TotalsBefore accumulates every transaction dated strictly before the given
// month. txs is expected to belong to a single user.
func TotalsBefore(txs []Transaction, year, month int) Totals {
	var totals Totals
	for _, tx := range txs {
		if Before(tx.Year(), tx.Month(), year, month) {
			totals.Add(tx.Kind, tx.Amount.Decimal())
		}
	}
	return totals
}

// Carryover is the net balance brought forward into (year, month): income
// minus expenses minus saving over all earlier months, rounded once.
func Carryover(txs []Transaction, year, month int) decimal.Decimal {
	return TotalsBefore(txs, year, month).Balance()
}
