package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-manager/api"
	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/config"
	"github.com/carson-networks/money-manager/internal/events"
	"github.com/carson-networks/money-manager/internal/logging"
	"github.com/carson-networks/money-manager/internal/mailer"
	"github.com/carson-networks/money-manager/internal/operator"
	"github.com/carson-networks/money-manager/internal/service"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/memstore"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.WithField("storage", envConfig.StorageBackend).Info("money-manager starting")

	store, err := openStorage(envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("openStorage")
		return
	}
	defer store.Close()

	publisher := openPublisher(envConfig, logger)
	defer publisher.Close()

	operatorDelegator := operator.NewOperatorDelegator(store, envConfig.OperatorWorkers, logger)
	operatorDelegator.Start()

	tokens := auth.NewTokenIssuer(envConfig.JWTSecret, envConfig.JWTTTL)
	svc := service.NewService(store, operatorDelegator, service.Dependencies{
		Mailer:    newMailer(envConfig, logger),
		Publisher: publisher,
		Tokens:    tokens,
		Logger:    logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:   logger,
		Port:     envConfig.HTTPPort,
		Storage:  store,
		Service:  svc,
		Verifier: tokens,
	}
	if err := serveThenStop(ctx, httpRest.Serve, operatorDelegator.Stop); err != nil {
		logger.WithError(err).Error("money-manager stopped with error")
		return
	}
	logger.Info("money-manager stopped")
}

// serveThenStop stops the operator only once serve has returned, after the
// server has drained its requests.
func serveThenStop(ctx context.Context, serve func(context.Context) error, stopOperator func()) error {
	defer stopOperator()
	return serve(ctx)
}

func openStorage(env *config.Config, logger *logrus.Logger) (*storage.Storage, error) {
	if env.StorageBackend == config.BackendMemory {
		return memstore.NewStorage(), nil
	}

	store, err := storage.NewStorage(env)
	if err != nil {
		return nil, err
	}
	result, err := storage.RunMigrations(store.DB)
	if err != nil {
		store.Close()
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  result.PreVersion,
		"postMigrationVersion": result.PostVersion,
	}).Info("Migration status")
	return store, nil
}

func openPublisher(env *config.Config, logger *logrus.Logger) events.Publisher {
	if env.AMQPURL == "" {
		return events.NopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(env.AMQPURL, env.AMQPExchange, env.AMQPQueue, logger)
	if err != nil {
		logger.WithError(err).Warn("events.NewAMQPPublisher: events disabled")
		return events.NopPublisher{}
	}
	return publisher
}

func newMailer(env *config.Config, logger *logrus.Logger) mailer.Mailer {
	if env.SMTPHost == "" {
		return &mailer.LogMailer{Logger: logger, AppURL: env.AppURL}
	}
	return mailer.NewSMTPMailer(env.SMTPHost, env.SMTPPort, env.SMTPUsername, env.SMTPPassword, env.SMTPFrom, env.AppURL)
}
