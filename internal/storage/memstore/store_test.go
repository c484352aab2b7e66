package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

func newRow(userID uuid.UUID, kind string, amount string, year, month int) *sqlconfig.Transaction {
	date := time.Date(year, time.Month(month), 5, 0, 0, 0, 0, time.UTC)
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

// -- write transaction tests --

func TestWriter_CommitPersists(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	userID := uuid.Must(uuid.NewV4())
	row := newRow(userID, "INCOME", "10", 2025, 1)

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, writer.Transactions.Insert(ctx, row))
	require.NoError(t, writer.Commit())

	found, err := store.Transactions.FindByID(ctx, userID, row.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, row.Description, found.Description)
}

func TestWriter_RollbackUndoesEveryChange(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	userID := uuid.Must(uuid.NewV4())
	kept := newRow(userID, "INCOME", "10", 2025, 1)
	require.NoError(t, store.Transactions.Insert(ctx, kept))

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, writer.Transactions.Insert(ctx, newRow(userID, "EXPENSE", "3", 2025, 1)))
	deleted, err := writer.Transactions.Delete(ctx, userID, kept.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = writer.Budgets.Upsert(ctx, &sqlconfig.MonthlyBudget{UserID: userID, Year: 2025, Month: 1})
	require.NoError(t, err)
	require.NoError(t, writer.Rollback())

	rows, err := store.Transactions.ListByMonth(ctx, userID, 2025, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, kept.ID, rows[0].ID)

	budget, err := store.Budgets.Find(ctx, userID, 2025, 1)
	require.NoError(t, err)
	assert.Nil(t, budget)
}

func TestWriter_SerializesWriters(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()

	first, err := store.Write(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	acquired := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		second, err := store.Write(ctx)
		if err == nil {
			close(acquired)
			_ = second.Commit()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second writer acquired the store while the first was open")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, first.Commit())
	wg.Wait()
	<-acquired
}

func TestWriter_HonoursContextWhileWaiting(t *testing.T) {
	store := NewStorage()
	first, err := store.Write(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = store.Write(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, first.Commit())
	second, err := store.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, second.Rollback())
}

// -- table tests --

func TestTransactions_ScopedToUser(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	owner := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())
	row := newRow(owner, "INCOME", "10", 2025, 2)
	require.NoError(t, store.Transactions.Insert(ctx, row))

	found, err := store.Transactions.FindByID(ctx, other, row.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	deleted, err := store.Transactions.Delete(ctx, other, row.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	rows, err := store.Transactions.ListByYear(ctx, other, 2025)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTransactions_SumBefore(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	userID := uuid.Must(uuid.NewV4())
	for _, row := range []*sqlconfig.Transaction{
		newRow(userID, "INCOME", "500", 2024, 12),
		newRow(userID, "EXPENSE", "400", 2024, 12),
		newRow(userID, "SAVING", "25", 2025, 1),
		newRow(userID, "INCOME", "1000", 2025, 2),
		newRow(uuid.Must(uuid.NewV4()), "INCOME", "999", 2024, 1),
	} {
		require.NoError(t, store.Transactions.Insert(ctx, row))
	}

	totals, err := store.Transactions.SumBefore(ctx, userID, 2025, 2)
	require.NoError(t, err)
	assert.True(t, totals.Balance().Equal(decimal.RequireFromString("75")))

	totals, err = store.Transactions.SumBefore(ctx, userID, 2025, 1)
	require.NoError(t, err)
	assert.True(t, totals.Balance().Equal(decimal.RequireFromString("100")))
}

func TestTransactions_ListByMonthNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	userID := uuid.Must(uuid.NewV4())
	older := newRow(userID, "INCOME", "1", 2025, 6)
	newer := newRow(userID, "INCOME", "2", 2025, 6)
	newer.Date = newer.Date.Add(48 * time.Hour)
	require.NoError(t, store.Transactions.Insert(ctx, older))
	require.NoError(t, store.Transactions.Insert(ctx, newer))

	rows, err := store.Transactions.ListByMonth(ctx, userID, 2025, 6)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID)
}

func TestUsersAndCategories_Duplicates(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	user := &sqlconfig.User{ID: uuid.Must(uuid.NewV4()), Email: "ana@example.com", Name: "Ana"}
	require.NoError(t, store.Users.Insert(ctx, user))
	err := store.Users.Insert(ctx, &sqlconfig.User{ID: uuid.Must(uuid.NewV4()), Email: "ana@example.com"})
	assert.ErrorIs(t, err, sqlconfig.ErrDuplicate)

	category := &sqlconfig.Category{ID: uuid.Must(uuid.NewV4()), UserID: user.ID, Name: "Ocio"}
	require.NoError(t, store.Categories.Insert(ctx, category))
	err = store.Categories.Insert(ctx, &sqlconfig.Category{ID: uuid.Must(uuid.NewV4()), UserID: user.ID, Name: "Ocio"})
	assert.ErrorIs(t, err, sqlconfig.ErrDuplicate)

	otherUser := uuid.Must(uuid.NewV4())
	require.NoError(t, store.Categories.Insert(ctx, &sqlconfig.Category{ID: uuid.Must(uuid.NewV4()), UserID: otherUser, Name: "Ocio"}))
}

func TestBudgets_UpsertKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	userID := uuid.Must(uuid.NewV4())
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first, err := store.Budgets.Upsert(ctx, &sqlconfig.MonthlyBudget{
		ID: uuid.Must(uuid.NewV4()), UserID: userID, Year: 2025, Month: 3,
		InitialAmount: decimal.RequireFromString("100"), CreatedAt: created, UpdatedAt: created,
	})
	require.NoError(t, err)

	second, err := store.Budgets.Upsert(ctx, &sqlconfig.MonthlyBudget{
		ID: uuid.Must(uuid.NewV4()), UserID: userID, Year: 2025, Month: 3,
		InitialAmount: decimal.RequireFromString("250"), CreatedAt: created.Add(time.Hour), UpdatedAt: created.Add(time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, created, second.CreatedAt)
	assert.True(t, second.InitialAmount.Equal(decimal.RequireFromString("250")))

	_, err = store.Budgets.Upsert(ctx, &sqlconfig.MonthlyBudget{ID: uuid.Must(uuid.NewV4()), UserID: userID, Year: 2024, Month: 12})
	require.NoError(t, err)
	history, err := store.Budgets.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 2025, history[0].Year)
}
