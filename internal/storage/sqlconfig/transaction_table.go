package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/money-manager/internal/finance"
)

const transactionsTable = "transactions"

var transactionColumns = []string{
	"id", "user_id", "year", "month", "description", "amount", "type", "category", "date", "created_at",
}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// Insert writes a new transaction row.
func (t *TransactionsTable) Insert(ctx context.Context, tx *Transaction) error {
	query := psql.Insert(
		im.Into(transactionsTable, transactionColumns...),
		im.Values(psql.Arg(
			tx.ID, tx.UserID, tx.Year, tx.Month, tx.Description,
			tx.Amount, tx.Type, tx.Category, tx.Date, tx.CreatedAt,
		)),
	)
	if _, err := bob.Exec(ctx, t.exec, query); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// FindByID returns nil when no transaction with id belongs to userID.
func (t *TransactionsTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	query := selectTransactions(
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return &row, nil
}

// ListByMonth returns the month's transactions, newest date first.
func (t *TransactionsTable) ListByMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]*Transaction, error) {
	return t.list(ctx,
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("year").EQ(psql.Arg(year))),
		sm.Where(psql.Quote("month").EQ(psql.Arg(month))),
	)
}

func (t *TransactionsTable) ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]*Transaction, error) {
	return t.list(ctx,
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("year").EQ(psql.Arg(year))),
	)
}

type kindTotal struct {
	Type  string          `db:"type"`
	Total decimal.Decimal `db:"total"`
}

// SumBefore pushes the carry-over sum into the database using the
// denormalized year and month columns.
func (t *TransactionsTable) SumBefore(ctx context.Context, userID uuid.UUID, year, month int) (finance.Totals, error) {
	query := psql.Select(
		sm.Columns("type", "SUM(amount) AS total"),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Or(
			psql.Quote("year").LT(psql.Arg(year)),
			psql.And(
				psql.Quote("year").EQ(psql.Arg(year)),
				psql.Quote("month").LT(psql.Arg(month)),
			),
		)),
		sm.GroupBy("type"),
	)

	rows, err := bob.All(ctx, t.exec, query, scan.StructMapper[kindTotal]())
	if err != nil {
		return finance.Totals{}, fmt.Errorf("sum transactions: %w", err)
	}

	var totals finance.Totals
	for _, row := range rows {
		kind, err := finance.ParseKind(row.Type)
		if err != nil {
			return finance.Totals{}, err
		}
		totals.Add(kind, row.Total)
	}
	return totals, nil
}

func (t *TransactionsTable) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From(transactionsTable),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (t *TransactionsTable) list(ctx context.Context, where ...bob.Mod[*dialect.SelectQuery]) ([]*Transaction, error) {
	queryMods := append(where,
		sm.OrderBy(psql.Quote("date")).Desc(),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
	)
	rows, err := bob.All(ctx, t.exec, selectTransactions(queryMods...), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func selectTransactions(queryMods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	return psql.Select(append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnList(transactionColumns)...),
		sm.From(transactionsTable),
	}, queryMods...)...)
}
