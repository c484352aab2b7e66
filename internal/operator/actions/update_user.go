package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/finance"
	"github.com/carson-networks/money-manager/internal/storage"
	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

// UpdateUser locks a user, applies Mutate and stores the result. Updated
// holds the stored row on success.
type UpdateUser struct {
	UserID uuid.UUID
	Mutate func(user *sqlconfig.User) error

	Updated *sqlconfig.User
	IAction
}

func (u *UpdateUser) Perform(ctx context.Context, writer *storage.Writer) error {
	user, err := writer.Users.FindByIDForUpdate(ctx, u.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return &finance.NotFoundError{Resource: "User", ID: u.UserID.String()}
	}

	if err := u.Mutate(user); err != nil {
		return err
	}
	if err := writer.Users.Update(ctx, user); err != nil {
		return err
	}

	u.Updated = user
	return nil
}

// VerifyEmail marks the user holding Token as verified and clears the token.
type VerifyEmail struct {
	Token string

	Verified *sqlconfig.User
	IAction
}

func (v *VerifyEmail) Perform(ctx context.Context, writer *storage.Writer) error {
	user, err := writer.Users.FindByVerificationToken(ctx, v.Token)
	if err != nil {
		return err
	}
	if user == nil {
		return &finance.NotFoundError{Resource: "Verification token"}
	}

	user.EmailVerified = true
	user.VerificationToken = ""
	if err := writer.Users.Update(ctx, user); err != nil {
		return err
	}

	v.Verified = user
	return nil
}
