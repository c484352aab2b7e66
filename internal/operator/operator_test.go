package operator

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/operator/actions"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/memstore"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

func newTestDelegator(t *testing.T, workers int) (*OperatorDelegator, *storage.Storage) {
	t.Helper()
	logger := logrus.New()
	logger.Out = io.Discard

	store := memstore.NewStorage()
	delegator := NewOperatorDelegator(store, workers, logger)
	delegator.Start()
	t.Cleanup(delegator.Stop)
	return delegator, store
}

type funcAction struct {
	fn func(ctx context.Context, writer *storage.Writer) error
}

func (f funcAction) Perform(ctx context.Context, writer *storage.Writer) error {
	return f.fn(ctx, writer)
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	delegator, store := newTestDelegator(t, 1)
	user := &sqlconfig.User{ID: uuid.Must(uuid.NewV4()), Email: "ana@example.com"}

	require.NoError(t, delegator.Process(context.Background(), &actions.RegisterUser{User: user}))

	found, err := store.Users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestProcess_RollsBackOnError(t *testing.T) {
	delegator, store := newTestDelegator(t, 1)
	user := &sqlconfig.User{ID: uuid.Must(uuid.NewV4()), Email: "ana@example.com"}

	err := delegator.Process(context.Background(), funcAction{fn: func(ctx context.Context, w *storage.Writer) error {
		assert.NoError(t, w.Users.Insert(ctx, user))
		return errors.New("abort")
	}})
	assert.EqualError(t, err, "abort")

	found, err := store.Users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProcess_CancelledContext(t *testing.T) {
	delegator, _ := newTestDelegator(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := delegator.Process(ctx, funcAction{fn: func(context.Context, *storage.Writer) error {
		ran = true
		return nil
	}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

func TestProcess_CancelAfterPickupWaitsForCommit(t *testing.T) {
	delegator, store := newTestDelegator(t, 1)
	user := &sqlconfig.User{ID: uuid.Must(uuid.NewV4()), Email: "ana@example.com"}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	running := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- delegator.Process(ctx, funcAction{fn: func(ctx context.Context, w *storage.Writer) error {
			close(running)
			<-release
			return w.Users.Insert(context.Background(), user)
		}})
	}()

	<-running
	cancel()
	select {
	case err := <-done:
		t.Fatalf("Process returned before the action finished: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	close(release)

	require.NoError(t, <-done)
	found, err := store.Users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestProcess_AfterStop(t *testing.T) {
	delegator, _ := newTestDelegator(t, 1)
	delegator.Stop()

	err := delegator.Process(context.Background(), funcAction{fn: func(context.Context, *storage.Writer) error { return nil }})
	assert.ErrorIs(t, err, ErrStopped)
}

// Concurrent admissions for one user must never spend more than the
// available balance.
func TestProcess_ConcurrentAdmissionsAreSerialized(t *testing.T) {
	delegator, store := newTestDelegator(t, 8)
	ctx := context.Background()
	user := &sqlconfig.User{ID: uuid.Must(uuid.NewV4()), Email: "ana@example.com"}
	require.NoError(t, delegator.Process(ctx, &actions.RegisterUser{User: user}))

	newTx := func(kind string, amount float64) finance.Transaction {
		tx, err := finance.NewTransaction(finance.NewTransactionParams{
			UserID:      user.ID,
			Description: "entry",
			Amount:      amount,
			Kind:        kind,
			Category:    "Otros",
			Date:        time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		}, time.Now())
		require.NoError(t, err)
		return tx
	}
	require.NoError(t, delegator.Process(ctx, &actions.CreateTransaction{Transaction: newTx("INCOME", 100)}))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		rejected int
	)
	for i := 0; i < 20; i++ {
		tx := newTx("EXPENSE", 20)
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := delegator.Process(ctx, &actions.CreateTransaction{Transaction: tx})
			mu.Lock()
			defer mu.Unlock()
			var insufficient *finance.InsufficientBalanceError
			switch {
			case err == nil:
				admitted++
			case errors.As(err, &insufficient):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, admitted)
	assert.Equal(t, 15, rejected)

	rows, err := store.Transactions.ListByMonth(ctx, user.ID, 2025, 5)
	require.NoError(t, err)
	txs, err := sqlconfig.ToFinance(rows)
	require.NoError(t, err)
	assert.True(t, finance.Aggregate(txs).Balance.IsZero())
}
