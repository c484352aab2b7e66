package storage

import (
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// Reader groups the tables of one storage backend.
type Reader struct {
	Transactions sqlconfig.ITransactionTable
	Categories   sqlconfig.ICategoryTable
	Budgets      sqlconfig.IBudgetTable
	Users        sqlconfig.IUserTable
}
