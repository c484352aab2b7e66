package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/money-manager/internal/config"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// TxBeginner opens a write transaction and returns tables bound to it.
type TxBeginner interface {
	BeginWrite(ctx context.Context) (*Writer, error)
}

// Storage exposes the tables for reads outside a transaction and opens
// writers for the operator.
type Storage struct {
	DB *sql.DB
	Reader
	Beginner TxBeginner
}

// Write opens a write transaction. The caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.Beginner.BeginWrite(ctx)
}

// Ping checks the database connection. The in-memory backend is always up.
func (s *Storage) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return s.DB.PingContext(ctx)
}

// Close releases the database handle, if any.
func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// NewStorage connects to Postgres and binds the tables to the pool.
func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewPostgresStorage(db), nil
}

// NewPostgresStorage wraps an open database handle.
func NewPostgresStorage(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		DB:       db,
		Reader:   *NewReader(bobDB),
		Beginner: postgresBeginner{db: bobDB},
	}
}

type postgresBeginner struct {
	db bob.DB
}

func (b postgresBeginner) BeginWrite(ctx context.Context) (*Writer, error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return NewWriter(tx, *NewReader(tx)), nil
}

// NewReader binds every table to exec, which may be the pool or a transaction.
func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Transactions: sqlconfig.NewTransactionsTable(exec),
		Categories:   sqlconfig.NewCategoriesTable(exec),
		Budgets:      sqlconfig.NewBudgetsTable(exec),
		Users:        sqlconfig.NewUsersTable(exec),
	}
}
