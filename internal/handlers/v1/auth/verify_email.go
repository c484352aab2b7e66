package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/money-manager/internal/handlers/v1/apierror"
)

type VerifyEmailInput struct {
	Token string `query:"token" required:"true" doc:"Token from the verification email"`
}

type VerifyEmailResponseBody struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type VerifyEmailOutput struct {
	Body VerifyEmailResponseBody
}

// VerifyEmailHandler handles GET /v1/auth/verify-email.
type VerifyEmailHandler struct {
	AuthService authService
}

func NewVerifyEmailHandler(svc authService) *VerifyEmailHandler {
	return &VerifyEmailHandler{AuthService: svc}
}

func (h *VerifyEmailHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "verify-email",
		Method:      http.MethodGet,
		Path:        "/v1/auth/verify-email",
		Summary:     "Verify email",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *VerifyEmailHandler) handle(ctx context.Context, input *VerifyEmailInput) (*VerifyEmailOutput, error) {
	profile, err := h.AuthService.VerifyEmail(ctx, input.Token)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	return &VerifyEmailOutput{Body: VerifyEmailResponseBody{
		Message: "Email verified. You can now log in.",
		User:    NewUser(profile),
	}}, nil
}
