package repository

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/errs"
	"github.com/seminarroom/bookdesk/internal/model"
)

const usersTableName = `users`

var userColumns = []string{"id", "name", "username", "email", "password_hash", "created_at"}

type userRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewUserRepository(db *sqlx.DB, log *zap.Logger) *userRepository {
	return &userRepository{
		db:  db,
		log: log.Named("user-repo"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query, args, err := qb.Insert(usersTableName).
		Columns("name", "username", "email", "password_hash").
		Values(user.Name, user.Username, user.Email, user.PasswordHash).
		Suffix("returning id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		if constraint, ok := isUniqueViolation(err); ok {
			if strings.Contains(constraint, "username") {
				return errs.ErrUsernameTaken
			}
			return errs.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (model.User, error) {
	return r.get(ctx, sq.Eq{"email": email})
}

func (r *userRepository) ByEmailOrUsername(ctx context.Context, emailOrUsername string) (model.User, error) {
	return r.get(ctx, sq.Or{
		sq.Eq{"email": emailOrUsername},
		sq.Eq{"username": emailOrUsername},
	})
}

func (r *userRepository) get(ctx context.Context, where sq.Sqlizer) (model.User, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`update users set password_hash = $2 where email = $1`, email, passwordHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
