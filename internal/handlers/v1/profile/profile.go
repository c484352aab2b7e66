// Package profile holds the endpoints a user calls on their own account.
package profile

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/handlers/v1/apierror"
	authhandlers "github.com/carson-networks/money-manager/internal/handlers/v1/auth"
	"github.com/carson-networks/money-manager/internal/service"
)

type profileService interface {
	Get(ctx context.Context, userID uuid.UUID) (service.Profile, error)
	UpdateName(ctx context.Context, userID uuid.UUID, name string) (service.Profile, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (service.Profile, error)
}

type ProfileOutput struct {
	Body authhandlers.User
}

type UpdateNameInput struct {
	Body struct {
		Name string `json:"name" required:"true" maxLength:"100"`
	}
}

type ChangePasswordInput struct {
	Body struct {
		CurrentPassword string `json:"currentPassword" required:"true"`
		NewPassword     string `json:"newPassword" required:"true"`
	}
}

type UpdateAvatarInput struct {
	Body struct {
		AvatarURL string `json:"avatarUrl" doc:"http(s) URL, empty to clear"`
	}
}

type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

// Handler serves /v1/profile.
type Handler struct {
	ProfileService profileService
}

func NewHandler(svc profileService) *Handler {
	return &Handler{ProfileService: svc}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Profile"}
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/v1/profile",
		Summary:     "Get profile",
		Tags:        tags,
		Security:    auth.Protected(),
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "update-profile-name",
		Method:      http.MethodPut,
		Path:        "/v1/profile/name",
		Summary:     "Update name",
		Tags:        tags,
		Security:    auth.Protected(),
	}, h.updateName)
	huma.Register(api, huma.Operation{
		OperationID: "change-password",
		Method:      http.MethodPut,
		Path:        "/v1/profile/password",
		Summary:     "Change password",
		Tags:        tags,
		Security:    auth.Protected(),
	}, h.changePassword)
	huma.Register(api, huma.Operation{
		OperationID: "update-profile-avatar",
		Method:      http.MethodPut,
		Path:        "/v1/profile/avatar",
		Summary:     "Update avatar",
		Tags:        tags,
		Security:    auth.Protected(),
	}, h.updateAvatar)
}

func (h *Handler) get(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	return h.respond(ctx)(h.ProfileService.Get(ctx, userID))
}

func (h *Handler) updateName(ctx context.Context, input *UpdateNameInput) (*ProfileOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	return h.respond(ctx)(h.ProfileService.UpdateName(ctx, userID, input.Body.Name))
}

func (h *Handler) changePassword(ctx context.Context, input *ChangePasswordInput) (*MessageOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	if err := h.ProfileService.ChangePassword(ctx, userID, input.Body.CurrentPassword, input.Body.NewPassword); err != nil {
		return nil, apierror.Convert(ctx, err)
	}

	out := &MessageOutput{}
	out.Body.Message = "Password updated"
	return out, nil
}

func (h *Handler) updateAvatar(ctx context.Context, input *UpdateAvatarInput) (*ProfileOutput, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, apierror.Convert(ctx, err)
	}
	return h.respond(ctx)(h.ProfileService.UpdateAvatar(ctx, userID, input.Body.AvatarURL))
}

func (h *Handler) respond(ctx context.Context) func(service.Profile, error) (*ProfileOutput, error) {
	return func(p service.Profile, err error) (*ProfileOutput, error) {
		if err != nil {
			return nil, apierror.Convert(ctx, err)
		}
		return &ProfileOutput{Body: authhandlers.NewUser(p)}, nil
	}
}
