package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/errs"
	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/internal/repository"
	"github.com/seminarroom/bookdesk/pkg/mailer"
)

// IssuanceService drives the available/issued state machine and keeps
// the issue-log ledger consistent with it.
type IssuanceService struct {
	books   repository.BookRepository
	logs    repository.IssueLogRepository
	mail    mailer.Sender
	mailCfg mailer.Config
	log     *zap.Logger

	now func() time.Time
}

func NewIssuanceService(
	books repository.BookRepository,
	logs repository.IssueLogRepository,
	mail mailer.Sender,
	mailCfg mailer.Config,
	log *zap.Logger,
) *IssuanceService {
	return &IssuanceService{
		books:   books,
		logs:    logs,
		mail:    mail,
		mailCfg: mailCfg,
		log:     log.Named("issuance"),
		now:     time.Now,
	}
}

// Issue is the only transition into the issued state. The book flip
// and the open log entry are written in one transaction.
func (s *IssuanceService) Issue(ctx context.Context, bookID int64, req model.IssueBookRequest) error {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	if !book.Available {
		return errs.ErrAlreadyIssued
	}

	returnDate, err := parseReturnDate(req.ReturnDate)
	if err != nil {
		return errors.WithMessage(errs.ErrValidation, "invalid return date")
	}
	now := s.now()
	if returnDate.Before(now) {
		return errs.ErrInvalidReturnDate
	}

	iss := model.Issuance{
		Name:       req.Name,
		Email:      req.Email,
		IssueDate:  now.UTC(),
		ReturnDate: returnDate.UTC(),
		Remarks:    req.Remarks,
		Valid:      true,
	}
	entry := model.IssueLog{
		LogUID:             uuid.NewString(),
		BookID:             book.ID,
		BookTitle:          book.Title,
		IssuerName:         req.Name,
		IssuerEmail:        req.Email,
		IssueDate:          now.UTC(),
		ExpectedReturnDate: returnDate.UTC(),
		Remarks:            req.Remarks,
	}
	return s.books.Issue(ctx, bookID, iss, entry)
}

// Return flips the book back and closes the most recent open log
// entry. A missing open entry is logged by the repository but does not
// fail the transition.
func (s *IssuanceService) Return(ctx context.Context, bookID int64) error {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	if book.Available {
		return errs.ErrNotIssued
	}
	return s.books.Return(ctx, bookID, s.now().UTC())
}

// SendReminder mails the current borrower. Side-effect only.
func (s *IssuanceService) SendReminder(ctx context.Context, bookID int64) error {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	if book.Available || !book.IssuedTo.Valid {
		return errs.ErrNotIssued
	}

	subject, body := s.mailCfg.ReminderMail(book.IssuedTo.Name, book.Title, book.IssuedTo.ReturnDate)
	if err := s.mail.Send(ctx, book.IssuedTo.Email, subject, body); err != nil {
		s.log.Error("reminder mail", zap.Int64("bookId", bookID), zap.Error(err))
		return errors.WithMessage(errs.ErrMail, err.Error())
	}
	return nil
}

func (s *IssuanceService) IssuedBooks(ctx context.Context, page, size int) (model.LogPage, error) {
	page, size = normalizePage(page, size)
	logs, total, err := s.logs.ListOpen(ctx, page, size)
	if err != nil {
		return model.LogPage{}, err
	}
	return model.LogPage{Logs: logs, Page: page, TotalPages: pageCount(total, size), TotalLogs: total}, nil
}

func (s *IssuanceService) IssueLogs(ctx context.Context, page, size int, from, to *time.Time) (model.LogPage, error) {
	page, size = normalizePage(page, size)
	logs, total, err := s.logs.List(ctx, page, size, from, to)
	if err != nil {
		return model.LogPage{}, err
	}
	return model.LogPage{Logs: logs, Page: page, TotalPages: pageCount(total, size), TotalLogs: total}, nil
}

func normalizePage(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	return page, size
}

func parseReturnDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == time.DateOnly {
				// a bare date means end of that day
				t = t.Add(24*time.Hour - time.Second)
			}
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unparseable date %q", s)
}
