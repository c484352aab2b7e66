package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/money-manager/internal/handlers/v1/apierror"
	"github.com/carson-networks/money-manager/internal/logging"
)

type LoginBody struct {
	Email    string `json:"email" required:"true"`
	Password string `json:"password" required:"true"`
}

type LoginInput struct {
	Body LoginBody
}

type LoginResponseBody struct {
	Token string `json:"token" doc:"Bearer token for protected endpoints"`
	User  User   `json:"user"`
}

type LoginOutput struct {
	Body LoginResponseBody
}

// LoginHandler handles POST /v1/auth/login.
type LoginHandler struct {
	AuthService authService
}

func NewLoginHandler(svc authService) *LoginHandler {
	return &LoginHandler{AuthService: svc}
}

func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/auth/login",
		Summary:     "Log in",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	result, err := h.AuthService.Login(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}

	logging.GetLogData(ctx).AddData("userId", result.Profile.ID.String())
	return &LoginOutput{Body: LoginResponseBody{
		Token: result.Token,
		User:  NewUser(result.Profile),
	}}, nil
}
