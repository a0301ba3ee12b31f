package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/errs"
	"github.com/seminarroom/bookdesk/internal/model"
)

const otpTableName = `otps`

type otpRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewOTPRepository(db *sqlx.DB, log *zap.Logger) *otpRepository {
	return &otpRepository{
		db:  db,
		log: log.Named("otp-repo"),
	}
}

// Upsert replaces any prior live entry for the email with a fresh one.
func (r *otpRepository) Upsert(ctx context.Context, entry model.OTPEntry) error {
	_, err := r.db.ExecContext(ctx, `
insert into otps (email, code, issued_at, attempts)
values ($1, $2, $3, 0)
on conflict (email) do update set code = excluded.code, issued_at = excluded.issued_at, attempts = 0`,
		entry.Email, entry.Code, entry.IssuedAt)
	return err
}

func (r *otpRepository) Get(ctx context.Context, email string) (model.OTPEntry, error) {
	var entry model.OTPEntry
	err := r.db.GetContext(ctx, &entry,
		`select email, code, issued_at, attempts from otps where email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.OTPEntry{}, errs.ErrOTPNotFound
		}
		return model.OTPEntry{}, err
	}
	return entry, nil
}

func (r *otpRepository) IncrementAttempts(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx,
		`update otps set attempts = attempts + 1 where email = $1`, email)
	return err
}

func (r *otpRepository) Delete(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `delete from otps where email = $1`, email)
	return err
}

func (r *otpRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `delete from otps where issued_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
