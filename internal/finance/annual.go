package finance

import "github.com/shopspring/decimal"

// MonthTotals is one bucket of an annual rollup.
type MonthTotals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Saving   decimal.Decimal
	Balance  decimal.Decimal
}

// AnnualSummary holds a bucket for every month 1..12 of Year.
type AnnualSummary struct {
	Year   int
	Months map[int]MonthTotals
}

// Annual buckets the transactions of year by month. Other years are ignored
// and carry-over plays no part.
func Annual(txs []Transaction, year int) AnnualSummary {
	var buckets [12]Totals
	for _, tx := range txs {
		if tx.Year() != year {
			continue
		}
		buckets[tx.Month()-1].Add(tx.Kind, tx.Amount.Decimal())
	}

	summary := AnnualSummary{Year: year, Months: make(map[int]MonthTotals, 12)}
	for i, bucket := range buckets {
		income := bucket.Income.Round(2)
		expenses := bucket.Expenses.Round(2)
		saving := bucket.Saving.Round(2)
		summary.Months[i+1] = MonthTotals{
			Income:   income,
			Expenses: expenses,
			Saving:   saving,
			Balance:  income.Sub(expenses).Sub(saving),
		}
	}
	return summary
}
