// Package memstore is an in-process storage backend used for tests and for
// running the server without Postgres.
package memstore

import (
	"context"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

type data struct {
	users        map[uuid.UUID]sqlconfig.User
	transactions map[uuid.UUID]sqlconfig.Transaction
	categories   map[uuid.UUID]sqlconfig.Category
	budgets      map[budgetKey]sqlconfig.MonthlyBudget
}

type budgetKey struct {
	userID uuid.UUID
	year   int
	month  int
}

// Store holds all rows in memory. A write transaction holds the lock for
// its whole lifetime, so writers are fully serialized.
type Store struct {
	mu   sync.RWMutex
	data data
}

func New() *Store {
	return &Store{
		data: data{
			users:        map[uuid.UUID]sqlconfig.User{},
			transactions: map[uuid.UUID]sqlconfig.Transaction{},
			categories:   map[uuid.UUID]sqlconfig.Category{},
			budgets:      map[budgetKey]sqlconfig.MonthlyBudget{},
		},
	}
}

// NewStorage returns a storage.Storage backed by a fresh Store.
func NewStorage() *storage.Storage {
	return New().Storage()
}

func (s *Store) Storage() *storage.Storage {
	return &storage.Storage{
		Reader:   s.reader(&session{store: s}),
		Beginner: s,
	}
}

// BeginWrite blocks until no other writer is active.
func (s *Store) BeginWrite(ctx context.Context) (*storage.Writer, error) {
	locked := make(chan struct{})
	go func() {
		s.mu.Lock()
		close(locked)
	}()

	select {
	case <-locked:
	case <-ctx.Done():
		go func() {
			<-locked
			s.mu.Unlock()
		}()
		return nil, ctx.Err()
	}

	sess := &session{store: s, inTx: true}
	return storage.NewWriter(sess, s.reader(sess)), nil
}

func (s *Store) reader(sess *session) storage.Reader {
	return storage.Reader{
		Transactions: &transactionsTable{sess: sess},
		Categories:   &categoriesTable{sess: sess},
		Budgets:      &budgetsTable{sess: sess},
		Users:        &usersTable{sess: sess},
	}
}

// session scopes table access either to short-lived locks or to an open
// write transaction that already holds the store lock.
type session struct {
	store *Store
	inTx  bool
	done  bool
	undo  []func(*data)
}

func (s *session) read(fn func(d *data)) {
	if !s.inTx {
		s.store.mu.RLock()
		defer s.store.mu.RUnlock()
	}
	fn(&s.store.data)
}

// write applies fn and records its undo step when inside a transaction.
func (s *session) write(fn func(d *data) (undo func(*data))) {
	if !s.inTx {
		s.store.mu.Lock()
		defer s.store.mu.Unlock()
		fn(&s.store.data)
		return
	}
	if undo := fn(&s.store.data); undo != nil {
		s.undo = append(s.undo, undo)
	}
}

func (s *session) Commit(context.Context) error {
	if s.done {
		return nil
	}
	s.done = true
	s.undo = nil
	s.store.mu.Unlock()
	return nil
}

func (s *session) Rollback(context.Context) error {
	if s.done {
		return nil
	}
	s.done = true
	for i := len(s.undo) - 1; i >= 0; i-- {
		s.undo[i](&s.store.data)
	}
	s.undo = nil
	s.store.mu.Unlock()
	return nil
}
