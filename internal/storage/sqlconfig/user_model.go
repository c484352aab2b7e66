package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents a users row.
type User struct {
	ID                uuid.UUID `db:"id"`
	Email             string    `db:"email"`
	Name              string    `db:"name"`
	PasswordHash      string    `db:"password_hash"`
	AvatarURL         string    `db:"avatar_url"`
	EmailVerified     bool      `db:"email_verified"`
	VerificationToken string    `db:"verification_token"`
	CreatedAt         time.Time `db:"created_at"`
}

// IUserTable defines the interface for user storage operations. Finders
// return nil when nothing matches.
type IUserTable interface {
	Insert(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByIDForUpdate locks the row until the enclosing write commits.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByVerificationToken(ctx context.Context, token string) (*User, error)
	// Update overwrites the mutable columns of an existing user.
	Update(ctx context.Context, user *User) error
}
