package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const usersTable = "users"

var userColumns = []string{
	"id", "email", "name", "password_hash", "avatar_url", "email_verified", "verification_token", "created_at",
}

var _ IUserTable = (*UsersTable)(nil)

type UsersTable struct {
	exec bob.Executor
}

func NewUsersTable(exec bob.Executor) *UsersTable {
	return &UsersTable{exec: exec}
}

// Insert returns ErrDuplicate when the email is taken.
func (t *UsersTable) Insert(ctx context.Context, user *User) error {
	query := psql.Insert(
		im.Into(usersTable, userColumns...),
		im.Values(psql.Arg(
			user.ID, user.Email, user.Name, user.PasswordHash, user.AvatarURL,
			user.EmailVerified, user.VerificationToken, user.CreatedAt,
		)),
	)
	if _, err := bob.Exec(ctx, t.exec, query); err != nil {
		return fmt.Errorf("insert user: %w", wrapUnique(err))
	}
	return nil
}

func (t *UsersTable) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return t.findOne(ctx, sm.Where(psql.Quote("id").EQ(psql.Arg(id))))
}

func (t *UsersTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*User, error) {
	return t.findOne(ctx,
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
}

func (t *UsersTable) FindByEmail(ctx context.Context, email string) (*User, error) {
	return t.findOne(ctx, sm.Where(psql.Quote("email").EQ(psql.Arg(email))))
}

func (t *UsersTable) FindByVerificationToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, nil
	}
	return t.findOne(ctx, sm.Where(psql.Quote("verification_token").EQ(psql.Arg(token))))
}

func (t *UsersTable) Update(ctx context.Context, user *User) error {
	query := psql.Update(
		um.Table(usersTable),
		um.SetCol("name").ToArg(user.Name),
		um.SetCol("password_hash").ToArg(user.PasswordHash),
		um.SetCol("avatar_url").ToArg(user.AvatarURL),
		um.SetCol("email_verified").ToArg(user.EmailVerified),
		um.SetCol("verification_token").ToArg(user.VerificationToken),
		um.Where(psql.Quote("id").EQ(psql.Arg(user.ID))),
	)
	if _, err := bob.Exec(ctx, t.exec, query); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (t *UsersTable) findOne(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) (*User, error) {
	query := psql.Select(append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnList(userColumns)...),
		sm.From(usersTable),
	}, queryMods...)...)

	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[User]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &row, nil
}
