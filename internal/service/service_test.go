package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/events"
	"github.com/carson-networks/money-manager/internal/operator"
	"github.com/carson-networks/money-manager/internal/operator/actions"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/memstore"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

type sentMail struct {
	To    string
	Name  string
	Token string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendVerification(_ context.Context, to, name, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Name: name, Token: token})
	return nil
}

func (m *fakeMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.TransactionEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event events.TransactionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []events.TransactionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.TransactionEvent(nil), p.events...)
}

type testEnv struct {
	store     *storage.Storage
	operator  *operator.OperatorDelegator
	service   *Service
	mailer    *fakeMailer
	publisher *fakePublisher
	tokens    *auth.TokenIssuer
	logs      *logtest.Hook
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	store := memstore.NewStorage()
	op := operator.NewOperatorDelegator(store, 2, logger)
	op.Start()
	t.Cleanup(op.Stop)

	env := &testEnv{
		store:     store,
		operator:  op,
		mailer:    &fakeMailer{},
		publisher: &fakePublisher{},
		tokens:    auth.NewTokenIssuer(testSecret, time.Hour),
		logs:      hook,
	}
	env.service = NewService(store, op, Dependencies{
		Mailer:    env.mailer,
		Publisher: env.publisher,
		Tokens:    env.tokens,
		Logger:    logger,
		Now:       func() time.Time { return testNow },
	})
	return env
}

// newUser stores a verified user directly, skipping the sign-up flow.
func (e *testEnv) newUser(t *testing.T) uuid.UUID {
	t.Helper()
	hash, err := auth.HashPassword("Valid#Pass1")
	require.NoError(t, err)

	user := &sqlconfig.User{
		ID:            uuid.Must(uuid.NewV4()),
		Email:         uuid.Must(uuid.NewV4()).String() + "@example.com",
		Name:          "Ana",
		PasswordHash:  hash,
		EmailVerified: true,
		CreatedAt:     testNow,
	}
	require.NoError(t, e.operator.Process(context.Background(), &actions.RegisterUser{User: user}))
	return user.ID
}

func requireErrorAs[T error](t *testing.T, err error) T {
	t.Helper()
	var target T
	require.True(t, errors.As(err, &target), "expected %T, got %v", target, err)
	return target
}
