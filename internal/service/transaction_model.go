package service

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/money-manager/internal/finance"
)

// MonthlySummary is the aggregate of one month plus the balance carried into it.
type MonthlySummary struct {
	Year      int
	Month     int
	Carryover decimal.Decimal
	finance.Summary
}
