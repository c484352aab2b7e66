package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/money-manager/internal/finance"
)

const dateLayout = "2006-01-02"

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string  `json:"id" doc:"Transaction UUID"`
	Description string  `json:"description" doc:"What the money was for"`
	Amount      float64 `json:"amount" doc:"Amount rounded to cents"`
	Type        string  `json:"type" enum:"INCOME,EXPENSE,SAVING" doc:"Transaction type"`
	Category    string  `json:"category" doc:"Category name"`
	Date        string  `json:"date" doc:"RFC3339 transaction date"`
	CreatedAt   string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func newTransaction(tx finance.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID.String(),
		Description: tx.Description,
		Amount:      tx.Amount.Float64(),
		Type:        tx.Kind.String(),
		Category:    tx.Category,
		Date:        tx.Date.Format(time.RFC3339),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func toFloatMap(m map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for key, value := range m {
		out[key] = toFloat(value)
	}
	return out
}

// period resolves optional year/month query values, defaulting to the
// current month.
func period(now time.Time, year, month int) (int, int) {
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, month
}
