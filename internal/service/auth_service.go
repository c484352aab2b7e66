package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/mailer"
	"github.com/carson-networks/money-manager/internal/operator/actions"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterRequest is the input of AuthService.Register.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

// AuthService handles sign-up, email verification and login.
type AuthService struct {
	storage  *storage.Storage
	operator ActionProcessor
	tokens   TokenIssuer
	mailer   mailer.Mailer
	logger   logrus.FieldLogger
	now      func() time.Time
}

func NewAuthService(store *storage.Storage, operator ActionProcessor, tokens TokenIssuer, m mailer.Mailer, logger logrus.FieldLogger, now func() time.Time) *AuthService {
	return &AuthService{
		storage:  store,
		operator: operator,
		tokens:   tokens,
		mailer:   m,
		logger:   logger,
		now:      now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified user with the default categories and sends
// the verification email. A mail failure does not undo the registration.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (Profile, error) {
	email := normalizeEmail(req.Email)
	if !emailPattern.MatchString(email) {
		return Profile{}, &finance.ValidationError{Field: "email", Message: "Invalid email"}
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Profile{}, &finance.ValidationError{Field: "name", Message: "Name is required"}
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return Profile{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return Profile{}, err
	}
	token, err := newVerificationToken()
	if err != nil {
		return Profile{}, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return Profile{}, err
	}
	categories, err := DefaultCategories(id)
	if err != nil {
		return Profile{}, err
	}

	user := &sqlconfig.User{
		ID:                id,
		Email:             email,
		Name:              name,
		PasswordHash:      hash,
		VerificationToken: token,
		CreatedAt:         s.now().UTC(),
	}
	if err := s.operator.Process(ctx, &actions.RegisterUser{User: user, Categories: categories}); err != nil {
		return Profile{}, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendVerification(ctx, user.Email, user.Name, token); err != nil {
			s.logger.WithError(err).WithField("userId", user.ID).Error("AuthService.Register: verification email not sent")
		}
	}
	return newProfile(user), nil
}

// VerifyEmail marks the owner of token as verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (Profile, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Profile{}, &finance.ValidationError{Field: "token", Message: "Token is required"}
	}

	action := &actions.VerifyEmail{Token: token}
	if err := s.operator.Process(ctx, action); err != nil {
		return Profile{}, err
	}
	return newProfile(action.Verified), nil
}

// Login checks the credentials of a verified user and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.storage.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return LoginResult{}, err
	}
	if user == nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return LoginResult{}, err
	}
	if !ok {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return LoginResult{}, ErrEmailNotVerified
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, Profile: newProfile(user)}, nil
}

func newVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
