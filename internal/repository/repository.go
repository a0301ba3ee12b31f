package repository

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/seminarroom/bookdesk/internal/model"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type BookRepository interface {
	Create(ctx context.Context, book model.Book) error
	GetByID(ctx context.Context, id int64) (model.Book, error)
	Update(ctx context.Context, id int64, book model.Book) error
	Delete(ctx context.Context, id int64, cascadeLogs bool) error
	List(ctx context.Context, q model.ListBooksQuery) ([]model.Book, int, error)
	BulkInsert(ctx context.Context, books []model.Book) (int64, error)
	Issue(ctx context.Context, id int64, iss model.Issuance, entry model.IssueLog) error
	Return(ctx context.Context, id int64, returnedAt time.Time) error
}

type IssueLogRepository interface {
	ListOpen(ctx context.Context, page, size int) ([]model.IssueLog, int, error)
	List(ctx context.Context, page, size int, from, to *time.Time) ([]model.IssueLog, int, error)
	ListAll(ctx context.Context) ([]model.IssueLog, error)
	ListAllOpen(ctx context.Context) ([]model.IssueLog, error)
}

type OTPRepository interface {
	Upsert(ctx context.Context, entry model.OTPEntry) error
	Get(ctx context.Context, email string) (model.OTPEntry, error)
	IncrementAttempts(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	ByEmail(ctx context.Context, email string) (model.User, error)
	ByEmailOrUsername(ctx context.Context, emailOrUsername string) (model.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

func isUniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return strings.ToLower(pgErr.ConstraintName), true
	}
	return "", false
}
