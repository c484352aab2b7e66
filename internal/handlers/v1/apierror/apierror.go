// Package apierror maps domain and service errors onto HTTP problems.
package apierror

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/logging"
	"github.com/carson-networks/money-manager/internal/service"
)

const internalMessage = "Internal server error"

// Convert returns the huma error for err. Anything unrecognised becomes a 500
// with a generic message; the cause is only recorded on the request log.
func Convert(ctx context.Context, err error) error {
	var (
		validation   *finance.ValidationError
		insufficient *finance.InsufficientBalanceError
		notFound     *finance.NotFoundError
		conflict     *finance.ConflictError
	)

	switch {
	case errors.As(err, &validation):
		return huma.Error400BadRequest(validation.Message, &huma.ErrorDetail{
			Message:  validation.Message,
			Location: validation.Field,
		})
	case errors.As(err, &insufficient):
		return huma.Error400BadRequest(insufficient.Error())
	case errors.As(err, &notFound):
		return huma.Error404NotFound(notFound.Error())
	case errors.As(err, &conflict):
		return huma.Error409Conflict(conflict.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return huma.Error401Unauthorized("Invalid credentials")
	case errors.Is(err, auth.ErrUnauthenticated):
		return huma.Error401Unauthorized("Token required")
	case errors.Is(err, service.ErrEmailNotVerified):
		return huma.Error403Forbidden("Please verify your email before logging in")
	}

	logging.GetLogData(ctx).AddData("error", err.Error())
	return huma.Error500InternalServerError(internalMessage)
}
