// Package auth holds the public sign-up, verification and login endpoints.
package auth

import (
	"context"
	"time"

	"github.com/carson-networks/money-manager/internal/service"
)

// User is the API response model for the signed-in user.
type User struct {
	ID            string `json:"id" doc:"User UUID"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     string `json:"createdAt" doc:"RFC3339 sign-up time"`
}

// NewUser converts a service profile for responses.
func NewUser(p service.Profile) User {
	return User{
		ID:            p.ID.String(),
		Email:         p.Email,
		Name:          p.Name,
		AvatarURL:     p.AvatarURL,
		EmailVerified: p.EmailVerified,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

// authService is the interface the auth endpoints need.
type authService interface {
	Register(ctx context.Context, req service.RegisterRequest) (service.Profile, error)
	VerifyEmail(ctx context.Context, token string) (service.Profile, error)
	Login(ctx context.Context, email, password string) (service.LoginResult, error)
}
