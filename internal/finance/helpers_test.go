package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(t *testing.T, kind Kind, amount string, category string, year, month int) Transaction {
	t.Helper()
	tx, err := NewTransaction(NewTransactionParams{
		UserID:      testUser,
		Description: "entry",
		Amount:      MustMoney(amount).Float64(),
		Kind:        string(kind),
		Category:    category,
		Date:        time.Date(year, time.Month(month), 10, 12, 0, 0, 0, time.UTC),
	}, time.Now())
	require.NoError(t, err)
	return tx
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
