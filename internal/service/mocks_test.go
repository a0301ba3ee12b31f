package service

import (
	"context"
	"time"

	"github.com/seminarroom/bookdesk/internal/model"
)

type bookRepoMock struct {
	CreateFn     func(ctx context.Context, book model.Book) error
	GetByIDFn    func(ctx context.Context, id int64) (model.Book, error)
	UpdateFn     func(ctx context.Context, id int64, book model.Book) error
	DeleteFn     func(ctx context.Context, id int64, cascadeLogs bool) error
	ListFn       func(ctx context.Context, q model.ListBooksQuery) ([]model.Book, int, error)
	BulkInsertFn func(ctx context.Context, books []model.Book) (int64, error)
	IssueFn      func(ctx context.Context, id int64, iss model.Issuance, entry model.IssueLog) error
	ReturnFn     func(ctx context.Context, id int64, returnedAt time.Time) error
}

func (m *bookRepoMock) Create(ctx context.Context, book model.Book) error {
	return m.CreateFn(ctx, book)
}
func (m *bookRepoMock) GetByID(ctx context.Context, id int64) (model.Book, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *bookRepoMock) Update(ctx context.Context, id int64, book model.Book) error {
	return m.UpdateFn(ctx, id, book)
}
func (m *bookRepoMock) Delete(ctx context.Context, id int64, cascadeLogs bool) error {
	return m.DeleteFn(ctx, id, cascadeLogs)
}
func (m *bookRepoMock) List(ctx context.Context, q model.ListBooksQuery) ([]model.Book, int, error) {
	return m.ListFn(ctx, q)
}
func (m *bookRepoMock) BulkInsert(ctx context.Context, books []model.Book) (int64, error) {
	return m.BulkInsertFn(ctx, books)
}
func (m *bookRepoMock) Issue(ctx context.Context, id int64, iss model.Issuance, entry model.IssueLog) error {
	return m.IssueFn(ctx, id, iss, entry)
}
func (m *bookRepoMock) Return(ctx context.Context, id int64, returnedAt time.Time) error {
	return m.ReturnFn(ctx, id, returnedAt)
}

type issueLogRepoMock struct {
	ListOpenFn    func(ctx context.Context, page, size int) ([]model.IssueLog, int, error)
	ListFn        func(ctx context.Context, page, size int, from, to *time.Time) ([]model.IssueLog, int, error)
	ListAllFn     func(ctx context.Context) ([]model.IssueLog, error)
	ListAllOpenFn func(ctx context.Context) ([]model.IssueLog, error)
}

func (m *issueLogRepoMock) ListOpen(ctx context.Context, page, size int) ([]model.IssueLog, int, error) {
	return m.ListOpenFn(ctx, page, size)
}
func (m *issueLogRepoMock) List(ctx context.Context, page, size int, from, to *time.Time) ([]model.IssueLog, int, error) {
	return m.ListFn(ctx, page, size, from, to)
}
func (m *issueLogRepoMock) ListAll(ctx context.Context) ([]model.IssueLog, error) {
	return m.ListAllFn(ctx)
}
func (m *issueLogRepoMock) ListAllOpen(ctx context.Context) ([]model.IssueLog, error) {
	return m.ListAllOpenFn(ctx)
}

type otpRepoMock struct {
	UpsertFn            func(ctx context.Context, entry model.OTPEntry) error
	GetFn               func(ctx context.Context, email string) (model.OTPEntry, error)
	IncrementAttemptsFn func(ctx context.Context, email string) error
	DeleteFn            func(ctx context.Context, email string) error
	DeleteOlderThanFn   func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *otpRepoMock) Upsert(ctx context.Context, entry model.OTPEntry) error {
	return m.UpsertFn(ctx, entry)
}
func (m *otpRepoMock) Get(ctx context.Context, email string) (model.OTPEntry, error) {
	return m.GetFn(ctx, email)
}
func (m *otpRepoMock) IncrementAttempts(ctx context.Context, email string) error {
	return m.IncrementAttemptsFn(ctx, email)
}
func (m *otpRepoMock) Delete(ctx context.Context, email string) error {
	return m.DeleteFn(ctx, email)
}
func (m *otpRepoMock) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.DeleteOlderThanFn(ctx, cutoff)
}

type userRepoMock struct {
	CreateFn            func(ctx context.Context, user *model.User) error
	ByEmailFn           func(ctx context.Context, email string) (model.User, error)
	ByEmailOrUsernameFn func(ctx context.Context, emailOrUsername string) (model.User, error)
	UpdatePasswordFn    func(ctx context.Context, email, passwordHash string) error
}

func (m *userRepoMock) Create(ctx context.Context, user *model.User) error {
	return m.CreateFn(ctx, user)
}
func (m *userRepoMock) ByEmail(ctx context.Context, email string) (model.User, error) {
	return m.ByEmailFn(ctx, email)
}
func (m *userRepoMock) ByEmailOrUsername(ctx context.Context, emailOrUsername string) (model.User, error) {
	return m.ByEmailOrUsernameFn(ctx, emailOrUsername)
}
func (m *userRepoMock) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return m.UpdatePasswordFn(ctx, email, passwordHash)
}

type senderMock struct {
	SendFn func(ctx context.Context, to, subject, htmlBody string) error

	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *senderMock) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	if m.SendFn != nil {
		return m.SendFn(ctx, to, subject, htmlBody)
	}
	return nil
}
