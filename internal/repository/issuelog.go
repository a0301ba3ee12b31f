package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/model"
)

var issueLogColumns = []string{
	"id", "log_uid", "book_id", "book_title", "issuer_name", "issuer_email",
	"issue_date", "expected_return_date", "actual_return_date", "remarks",
	"returned", "created_at",
}

type issueLogRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewIssueLogRepository(db *sqlx.DB, log *zap.Logger) *issueLogRepository {
	return &issueLogRepository{
		db:  db,
		log: log.Named("issuelog-repo"),
	}
}

func (r *issueLogRepository) ListOpen(ctx context.Context, page, size int) ([]model.IssueLog, int, error) {
	return r.list(ctx, page, size, sq.Eq{"returned": false})
}

func (r *issueLogRepository) List(ctx context.Context, page, size int, from, to *time.Time) ([]model.IssueLog, int, error) {
	var bounds sq.And
	if from != nil {
		bounds = append(bounds, sq.GtOrEq{"issue_date": *from})
	}
	if to != nil {
		bounds = append(bounds, sq.LtOrEq{"issue_date": *to})
	}
	var where sq.Sqlizer
	if len(bounds) > 0 {
		where = bounds
	}
	return r.list(ctx, page, size, where)
}

func (r *issueLogRepository) ListAll(ctx context.Context) ([]model.IssueLog, error) {
	logs, _, err := r.list(ctx, 0, 0, nil)
	return logs, err
}

func (r *issueLogRepository) ListAllOpen(ctx context.Context) ([]model.IssueLog, error) {
	logs, _, err := r.list(ctx, 0, 0, sq.Eq{"returned": false})
	return logs, err
}

func (r *issueLogRepository) list(ctx context.Context, page, size int, where sq.Sqlizer) ([]model.IssueLog, int, error) {
	count := qb.Select("count(*)").From(issueLogsTableName)
	sel := qb.Select(issueLogColumns...).
		From(issueLogsTableName).
		OrderBy("issue_date desc", "id desc")
	if where != nil {
		count = count.Where(where)
		sel = sel.Where(where)
	}
	if page != 0 && size != 0 {
		sel = sel.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}

	countQuery, countArgs, err := count.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var logs []model.IssueLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
