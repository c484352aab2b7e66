package finance

import "github.com/shopspring/decimal"

// Totals accumulates amounts per kind. Sums are exact; rounding happens when
// a figure is read.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Saving   decimal.Decimal
}

// Add records amount under kind.
func (t *Totals) Add(kind Kind, amount decimal.Decimal) {
	switch kind {
	case KindIncome:
		t.Income = t.Income.Add(amount)
	case KindExpense:
		t.Expenses = t.Expenses.Add(amount)
	case KindSaving:
		t.Saving = t.Saving.Add(amount)
	}
}

// Balance is income minus expenses minus saving, rounded to cents.
func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expenses).Sub(t.Saving).Round(2)
}

// Summary is the aggregate view of one month of transactions.
type Summary struct {
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	TotalSaving        decimal.Decimal
	Balance            decimal.Decimal
	ExpensesByCategory map[string]decimal.Decimal
	IncomeByCategory   map[string]decimal.Decimal
	SavingByCategory   map[string]decimal.Decimal
	TransactionCount   int
}

// Aggregate totals txs by kind and by category. The caller is responsible for
// scoping txs to a single user and month.
func Aggregate(txs []Transaction) Summary {
	var totals Totals
	summary := Summary{
		ExpensesByCategory: map[string]decimal.Decimal{},
		IncomeByCategory:   map[string]decimal.Decimal{},
		SavingByCategory:   map[string]decimal.Decimal{},
		TransactionCount:   len(txs),
	}

	for _, tx := range txs {
		amount := tx.Amount.Decimal()
		totals.Add(tx.Kind, amount)

		var byCategory map[string]decimal.Decimal
		switch tx.Kind {
		case KindIncome:
			byCategory = summary.IncomeByCategory
		case KindExpense:
			byCategory = summary.ExpensesByCategory
		case KindSaving:
			byCategory = summary.SavingByCategory
		default:
			continue
		}
		byCategory[tx.Category] = byCategory[tx.Category].Add(amount)
	}

	for _, byCategory := range []map[string]decimal.Decimal{
		summary.IncomeByCategory, summary.ExpensesByCategory, summary.SavingByCategory,
	} {
		for category, amount := range byCategory {
			byCategory[category] = amount.Round(2)
		}
	}

	summary.TotalIncome = totals.Income.Round(2)
	summary.TotalExpenses = totals.Expenses.Round(2)
	summary.TotalSaving = totals.Saving.Round(2)
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses).Sub(summary.TotalSaving)
	return summary
}
