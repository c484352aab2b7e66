package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/money-manager/internal/handlers/v1/apierror"
	"github.com/carson-networks/money-manager/internal/logging"
	"github.com/carson-networks/money-manager/internal/service"
)

type RegisterBody struct {
	Email    string `json:"email" required:"true" maxLength:"254" doc:"Login email"`
	Password string `json:"password" required:"true" doc:"At least 8 characters with an upper-case letter, a digit and a symbol"`
	Name     string `json:"name" required:"true" maxLength:"100" doc:"Display name"`
}

type RegisterInput struct {
	Body RegisterBody
}

type RegisterResponseBody struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type RegisterOutput struct {
	Body RegisterResponseBody
}

// RegisterHandler handles POST /v1/auth/register.
type RegisterHandler struct {
	AuthService authService
}

func NewRegisterHandler(svc authService) *RegisterHandler {
	return &RegisterHandler{AuthService: svc}
}

func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/v1/auth/register",
		Summary:       "Sign up",
		Description:   "Creates an account and emails a verification link. Login is refused until the email is verified.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	profile, err := h.AuthService.Register(ctx, service.RegisterRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
		Name:     input.Body.Name,
	})
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}

	logging.GetLogData(ctx).AddData("userId", profile.ID.String())
	return &RegisterOutput{Body: RegisterResponseBody{
		Message: "Registration successful. Check your email to verify your account.",
		User:    NewUser(profile),
	}}, nil
}
