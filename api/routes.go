package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-manager/internal/auth"
	authhandlers "github.com/carson-networks/money-manager/internal/handlers/v1/auth"
	"github.com/carson-networks/money-manager/internal/handlers/v1/budget"
	"github.com/carson-networks/money-manager/internal/handlers/v1/category"
	"github.com/carson-networks/money-manager/internal/handlers/v1/profile"
	"github.com/carson-networks/money-manager/internal/handlers/v1/status"
	"github.com/carson-networks/money-manager/internal/handlers/v1/transaction"
	"github.com/carson-networks/money-manager/internal/logging"
	"github.com/carson-networks/money-manager/internal/service"
	"github.com/carson-networks/money-manager/internal/storage"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Storage  *storage.Storage
	Service  *service.Service
	Verifier auth.Verifier
}

// Handler builds the router: /status plus every /v1 operation.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	config := huma.DefaultConfig("Money Manager API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		auth.SecurityScheme: {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humago.New(mux, config)
	api.UseMiddleware(logging.HumaMiddleware(r.Logger), auth.NewMiddleware(api, r.Verifier))

	authhandlers.NewRegisterHandler(r.Service.Auth).Register(api)
	authhandlers.NewLoginHandler(r.Service.Auth).Register(api)
	authhandlers.NewVerifyEmailHandler(r.Service.Auth).Register(api)

	profile.NewHandler(r.Service.Profile).Register(api)

	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewSummaryHandler(r.Service.Transaction).Register(api)
	transaction.NewAnnualHandler(r.Service.Transaction).Register(api)

	category.NewHandler(r.Service.Category).Register(api)
	budget.NewHandler(r.Service.Budget).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
