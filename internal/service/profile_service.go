package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/auth"
	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/operator/actions"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// ProfileService reads and edits the authenticated user's own account.
type ProfileService struct {
	storage  *storage.Storage
	operator ActionProcessor
}

func NewProfileService(store *storage.Storage, operator ActionProcessor) *ProfileService {
	return &ProfileService{storage: store, operator: operator}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (Profile, error) {
	user, err := s.storage.Users.FindByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	if user == nil {
		return Profile{}, &finance.NotFoundError{Resource: "User", ID: userID.String()}
	}
	return newProfile(user), nil
}

func (s *ProfileService) UpdateName(ctx context.Context, userID uuid.UUID, name string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, &finance.ValidationError{Field: "name", Message: "Name is required"}
	}
	return s.update(ctx, userID, func(u *sqlconfig.User) error {
		u.Name = name
		return nil
	})
}

// ChangePassword replaces the password after checking the current one.
func (s *ProfileService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if err := auth.ValidatePassword(next); err != nil {
		return err
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}

	_, err = s.update(ctx, userID, func(u *sqlconfig.User) error {
		ok, err := auth.CheckPassword(u.PasswordHash, current)
		if err != nil {
			return err
		}
		if !ok {
			return &finance.ValidationError{Field: "currentPassword", Message: "Current password is incorrect"}
		}
		u.PasswordHash = hash
		return nil
	})
	return err
}

// UpdateAvatar sets the avatar URL. An empty value clears it.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (Profile, error) {
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL != "" {
		parsed, err := url.Parse(avatarURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return Profile{}, &finance.ValidationError{Field: "avatarUrl", Message: "Invalid avatar URL"}
		}
	}
	return s.update(ctx, userID, func(u *sqlconfig.User) error {
		u.AvatarURL = avatarURL
		return nil
	})
}

func (s *ProfileService) update(ctx context.Context, userID uuid.UUID, mutate func(*sqlconfig.User) error) (Profile, error) {
	action := &actions.UpdateUser{UserID: userID, Mutate: mutate}
	if err := s.operator.Process(ctx, action); err != nil {
		return Profile{}, err
	}
	return newProfile(action.Updated), nil
}
