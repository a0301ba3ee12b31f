package repository

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/errs"
	"github.com/seminarroom/bookdesk/internal/model"
)

const (
	booksTableName     = `books`
	issueLogsTableName = `issue_logs`
)

var bookColumns = []string{
	"id", "accession_number", "mal_acc_number", "title", "author", "publisher",
	"edition", "publishing_year", "author1", "author2", "author3",
	"category1", "category2", "category3", "available", "issued_to",
	"created_at", "updated_at",
}

type bookRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBookRepository(db *sqlx.DB, log *zap.Logger) *bookRepository {
	return &bookRepository{
		db:  db,
		log: log.Named("book-repo"),
	}
}

func (r *bookRepository) Create(ctx context.Context, book model.Book) error {
	query, args, err := qb.Insert(booksTableName).
		Columns("id", "accession_number", "mal_acc_number", "title", "author", "publisher",
			"edition", "publishing_year", "author1", "author2", "author3",
			"category1", "category2", "category3", "available").
		Values(book.ID, book.AccessionNumber, book.MalAccNumber, book.Title, book.Author, book.Publisher,
			book.Edition, book.PublishingYear, book.Author1, book.Author2, book.Author3,
			book.Category1, book.Category2, book.Category3, true).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return errs.ErrDuplicateID
		}
		return err
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *bookRepository) Update(ctx context.Context, id int64, book model.Book) error {
	query, args, err := qb.Update(booksTableName).
		Set("id", book.ID).
		Set("accession_number", book.AccessionNumber).
		Set("mal_acc_number", book.MalAccNumber).
		Set("title", book.Title).
		Set("author", book.Author).
		Set("publisher", book.Publisher).
		Set("edition", book.Edition).
		Set("publishing_year", book.PublishingYear).
		Set("author1", book.Author1).
		Set("author2", book.Author2).
		Set("author3", book.Author3).
		Set("category1", book.Category1).
		Set("category2", book.Category2).
		Set("category3", book.Category3).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return errs.ErrDuplicateID
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64, cascadeLogs bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if cascadeLogs {
		if _, err = tx.ExecContext(ctx, `delete from issue_logs where book_id = $1`, id); err != nil {
			return err
		}
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `delete from books where id = $1`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = errs.ErrNotFound
		return err
	}
	return tx.Commit()
}

func (r *bookRepository) List(ctx context.Context, q model.ListBooksQuery) ([]model.Book, int, error) {
	count := qb.Select("count(*)").From(booksTableName)
	sel := qb.Select(bookColumns...).From(booksTableName)
	if where, ok := searchClause(q.Search); ok {
		count = count.Where(where)
		sel = sel.Where(where)
	}

	countQuery, countArgs, err := count.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}
	switch q.Order {
	case model.OrderAccession:
		sel = sel.OrderBy("accession_number asc nulls last", "id asc")
	default:
		sel = sel.OrderBy("created_at desc", "id desc")
	}
	if q.Page != 0 && q.Size != 0 {
		sel = sel.Limit(uint64(q.Size)).Offset(uint64((q.Page - 1) * q.Size))
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, 0, err
	}
	r.log.Debug("List", zap.String("query", query), zap.Any("args", args))

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// searchClause routes a purely numeric term to exact id matches and
// anything else to case-insensitive substring matches over text fields.
func searchClause(term string) (sq.Sqlizer, bool) {
	if term == "" {
		return nil, false
	}
	if n, err := strconv.ParseInt(term, 10, 64); err == nil {
		return sq.Or{
			sq.Eq{"id": n},
			sq.Eq{"accession_number": n},
			sq.Eq{"mal_acc_number": n},
		}, true
	}
	pattern := "%" + term + "%"
	return sq.Or{
		sq.ILike{"title": pattern},
		sq.ILike{"author": pattern},
		sq.ILike{"publisher": pattern},
		sq.ILike{"category1": pattern},
		sq.ILike{"category2": pattern},
		sq.ILike{"category3": pattern},
	}, true
}

func (r *bookRepository) BulkInsert(ctx context.Context, books []model.Book) (int64, error) {
	if len(books) == 0 {
		return 0, nil
	}
	ins := qb.Insert(booksTableName).
		Columns("id", "accession_number", "mal_acc_number", "title", "author", "publisher",
			"edition", "publishing_year", "author1", "author2", "author3",
			"category1", "category2", "category3", "available").
		Suffix("on conflict (id) do nothing")
	for _, b := range books {
		ins = ins.Values(b.ID, b.AccessionNumber, b.MalAccNumber, b.Title, b.Author, b.Publisher,
			b.Edition, b.PublishingYear, b.Author1, b.Author2, b.Author3,
			b.Category1, b.Category2, b.Category3, true)
	}
	query, args, err := ins.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Issue flips the book to issued and appends the open log entry in one
// transaction.
func (r *bookRepository) Issue(ctx context.Context, id int64, iss model.Issuance, entry model.IssueLog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(ctx,
		`update books set available = false, issued_to = $2, updated_at = now() where id = $1 and available`,
		id, iss)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = errs.ErrAlreadyIssued
		return err
	}

	query, args, qerr := qb.Insert(issueLogsTableName).
		Columns("log_uid", "book_id", "book_title", "issuer_name", "issuer_email",
			"issue_date", "expected_return_date", "remarks", "returned").
		Values(entry.LogUID, entry.BookID, entry.BookTitle, entry.IssuerName, entry.IssuerEmail,
			entry.IssueDate, entry.ExpectedReturnDate, entry.Remarks, false).
		ToSql()
	if qerr != nil {
		err = qerr
		return err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// Return flips the book back to available and closes the most recent
// open log entry. A missing open entry is tolerated: the book
// transition commits anyway.
func (r *bookRepository) Return(ctx context.Context, id int64, returnedAt time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(ctx,
		`update books set available = true, issued_to = null, updated_at = now() where id = $1 and not available`,
		id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = errs.ErrNotIssued
		return err
	}

	res, err = tx.ExecContext(ctx, `
update issue_logs set returned = true, actual_return_date = $2
where id = (
    select id from issue_logs
    where book_id = $1 and not returned
    order by created_at desc
    limit 1
)`, id, returnedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		r.log.Warn("return without open issue log", zap.Int64("bookId", id))
	}
	return tx.Commit()
}
