package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-manager/internal/operator"
	"github.com/carson-networks/money-manager/internal/operator/actions"
	"github.com/carson-networks/money-manager/internal/storage/memstore"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

func TestServeThenStop_DrainsBeforeStoppingOperator(t *testing.T) {
	logger := logrus.New()
	logger.Out = io.Discard
	delegator := operator.NewOperatorDelegator(memstore.NewStorage(), 1, logger)
	delegator.Start()

	newUser := func() *sqlconfig.User {
		return &sqlconfig.User{ID: uuid.Must(uuid.NewV4()), Email: uuid.Must(uuid.NewV4()).String() + "@example.com"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var drainErr error
	err := serveThenStop(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		// A request still being drained after the signal.
		drainErr = delegator.Process(context.Background(), &actions.RegisterUser{User: newUser()})
		return nil
	}, delegator.Stop)

	require.NoError(t, err)
	assert.NoError(t, drainErr)
	assert.ErrorIs(t, delegator.Process(context.Background(), &actions.RegisterUser{User: newUser()}), operator.ErrStopped)
}

func TestServeThenStop_StopsOperatorOnServeError(t *testing.T) {
	stopped := false
	err := serveThenStop(context.Background(), func(context.Context) error {
		return errors.New("listen tcp: address in use")
	}, func() { stopped = true })

	assert.EqualError(t, err, "listen tcp: address in use")
	assert.True(t, stopped)
}
