package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// newPostgresStorage starts a throwaway Postgres, migrates it and returns a
// Storage bound to it.
func newPostgresStorage(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("money"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("testpassword"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	result, err := RunMigrations(db)
	require.NoError(t, err)
	assert.Equal(t, uint(0), result.PreVersion)
	assert.Equal(t, uint(3), result.PostVersion)

	return NewPostgresStorage(db)
}

func insertUser(t *testing.T, s *Storage, email string) *sqlconfig.User {
	t.Helper()
	user := &sqlconfig.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        email,
		Name:         "Test",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.Users.Insert(context.Background(), user))
	return user
}

func txRow(userID uuid.UUID, kind, amount string, year, month int) *sqlconfig.Transaction {
	date := time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC)
	return &sqlconfig.Transaction{
		ID:          uuid.Must(uuid.NewV4()),
		UserID:      userID,
		Year:        year,
		Month:       month,
		Description: "row",
		Amount:      decimal.RequireFromString(amount),
		Type:        kind,
		Category:    "Otros",
		Date:        date,
		CreatedAt:   date,
	}
}

func TestPostgres_Tables(t *testing.T) {
	s := newPostgresStorage(t)
	ctx := context.Background()
	user := insertUser(t, s, "ana@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		err := s.Users.Insert(ctx, &sqlconfig.User{ID: uuid.Must(uuid.NewV4()), Email: "ana@example.com", CreatedAt: time.Now()})
		assert.ErrorIs(t, err, sqlconfig.ErrDuplicate)
	})

	t.Run("transactions and carry-over", func(t *testing.T) {
		for _, row := range []*sqlconfig.Transaction{
			txRow(user.ID, "INCOME", "500", 2024, 12),
			txRow(user.ID, "EXPENSE", "400", 2024, 12),
			txRow(user.ID, "SAVING", "0.50", 2025, 1),
			txRow(user.ID, "INCOME", "20", 2025, 2),
		} {
			require.NoError(t, s.Transactions.Insert(ctx, row))
		}

		totals, err := s.Transactions.SumBefore(ctx, user.ID, 2025, 2)
		require.NoError(t, err)
		assert.True(t, totals.Balance().Equal(decimal.RequireFromString("99.50")))

		rows, err := s.Transactions.ListByYear(ctx, user.ID, 2025)
		require.NoError(t, err)
		assert.Len(t, rows, 2)

		rows, err = s.Transactions.ListByMonth(ctx, user.ID, 2024, 12)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		deleted, err := s.Transactions.Delete(ctx, user.ID, rows[0].ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = s.Transactions.Delete(ctx, user.ID, rows[0].ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("writer rollback", func(t *testing.T) {
		writer, err := s.Write(ctx)
		require.NoError(t, err)
		locked, err := writer.Users.FindByIDForUpdate(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, locked)
		row := txRow(user.ID, "INCOME", "1", 2030, 1)
		require.NoError(t, writer.Transactions.Insert(ctx, row))
		require.NoError(t, writer.Rollback())

		found, err := s.Transactions.FindByID(ctx, user.ID, row.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("categories", func(t *testing.T) {
		category := &sqlconfig.Category{ID: uuid.Must(uuid.NewV4()), UserID: user.ID, Name: "Ocio", Color: "#ec4899", Icon: "🎉"}
		require.NoError(t, s.Categories.Insert(ctx, category))
		err := s.Categories.Insert(ctx, &sqlconfig.Category{ID: uuid.Must(uuid.NewV4()), UserID: user.ID, Name: "Ocio", Color: "#000000", Icon: "x"})
		assert.ErrorIs(t, err, sqlconfig.ErrDuplicate)

		list, err := s.Categories.List(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "🎉", list[0].Icon)
	})

	t.Run("budget upsert", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		first, err := s.Budgets.Upsert(ctx, &sqlconfig.MonthlyBudget{
			ID: uuid.Must(uuid.NewV4()), UserID: user.ID, Year: 2025, Month: 4,
			InitialAmount: decimal.RequireFromString("10"), CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
		second, err := s.Budgets.Upsert(ctx, &sqlconfig.MonthlyBudget{
			ID: uuid.Must(uuid.NewV4()), UserID: user.ID, Year: 2025, Month: 4,
			InitialAmount: decimal.RequireFromString("20"), CreatedAt: now, UpdatedAt: now.Add(time.Minute),
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.InitialAmount.Equal(decimal.RequireFromString("20")))
	})
}
