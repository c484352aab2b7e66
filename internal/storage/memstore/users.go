package memstore

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

var _ sqlconfig.IUserTable = (*usersTable)(nil)

type usersTable struct {
	sess *session
}

func (t *usersTable) Insert(_ context.Context, user *sqlconfig.User) error {
	row := *user
	var err error
	t.sess.write(func(d *data) func(*data) {
		for _, existing := range d.users {
			if existing.Email == row.Email {
				err = sqlconfig.ErrDuplicate
				return nil
			}
		}
		d.users[row.ID] = row
		return func(d *data) { delete(d.users, row.ID) }
	})
	return err
}

func (t *usersTable) FindByID(_ context.Context, id uuid.UUID) (*sqlconfig.User, error) {
	return t.find(func(u sqlconfig.User) bool { return u.ID == id }), nil
}

// FindByIDForUpdate needs no extra locking; writers already hold the store lock.
func (t *usersTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sqlconfig.User, error) {
	return t.FindByID(ctx, id)
}

func (t *usersTable) FindByEmail(_ context.Context, email string) (*sqlconfig.User, error) {
	return t.find(func(u sqlconfig.User) bool { return u.Email == email }), nil
}

func (t *usersTable) FindByVerificationToken(_ context.Context, token string) (*sqlconfig.User, error) {
	if token == "" {
		return nil, nil
	}
	return t.find(func(u sqlconfig.User) bool { return u.VerificationToken == token }), nil
}

func (t *usersTable) Update(_ context.Context, user *sqlconfig.User) error {
	t.sess.write(func(d *data) func(*data) {
		previous, ok := d.users[user.ID]
		if !ok {
			return nil
		}
		updated := previous
		updated.Name = user.Name
		updated.PasswordHash = user.PasswordHash
		updated.AvatarURL = user.AvatarURL
		updated.EmailVerified = user.EmailVerified
		updated.VerificationToken = user.VerificationToken
		d.users[user.ID] = updated
		return func(d *data) { d.users[user.ID] = previous }
	})
	return nil
}

func (t *usersTable) find(match func(sqlconfig.User) bool) *sqlconfig.User {
	var found *sqlconfig.User
	t.sess.read(func(d *data) {
		for _, u := range d.users {
			if match(u) {
				u := u
				found = &u
				return
			}
		}
	})
	return found
}
