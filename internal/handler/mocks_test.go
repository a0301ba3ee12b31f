package handler

import (
	"context"
	"time"

	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/internal/service"
	"github.com/seminarroom/bookdesk/pkg/tabular"
)

type authSvcMock struct {
	RequestOTPFn     func(ctx context.Context, email string, isRegistration bool) error
	VerifyOTPFn      func(ctx context.Context, email, code string) (string, error)
	RegisterFn       func(ctx context.Context, req model.RegisterRequest) (model.User, string, error)
	LoginFn          func(ctx context.Context, req model.LoginRequest) (model.User, string, error)
	ForgotPasswordFn func(ctx context.Context, email string) error
	ResetPasswordFn  func(ctx context.Context, req model.ResetPasswordRequest) error
}

func (m *authSvcMock) RequestOTP(ctx context.Context, email string, isRegistration bool) error {
	return m.RequestOTPFn(ctx, email, isRegistration)
}
func (m *authSvcMock) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	return m.VerifyOTPFn(ctx, email, code)
}
func (m *authSvcMock) Register(ctx context.Context, req model.RegisterRequest) (model.User, string, error) {
	return m.RegisterFn(ctx, req)
}
func (m *authSvcMock) Login(ctx context.Context, req model.LoginRequest) (model.User, string, error) {
	return m.LoginFn(ctx, req)
}
func (m *authSvcMock) ForgotPassword(ctx context.Context, email string) error {
	return m.ForgotPasswordFn(ctx, email)
}
func (m *authSvcMock) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	return m.ResetPasswordFn(ctx, req)
}

type registrySvcMock struct {
	CreateFn func(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetFn    func(ctx context.Context, id int64) (model.Book, error)
	UpdateFn func(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error)
	DeleteFn func(ctx context.Context, id int64) error
	ListFn   func(ctx context.Context, q model.ListBooksQuery) (model.BookPage, error)
}

func (m *registrySvcMock) Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return m.CreateFn(ctx, req)
}
func (m *registrySvcMock) Get(ctx context.Context, id int64) (model.Book, error) {
	return m.GetFn(ctx, id)
}
func (m *registrySvcMock) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error) {
	return m.UpdateFn(ctx, id, req)
}
func (m *registrySvcMock) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}
func (m *registrySvcMock) List(ctx context.Context, q model.ListBooksQuery) (model.BookPage, error) {
	return m.ListFn(ctx, q)
}

type issuanceSvcMock struct {
	IssueFn        func(ctx context.Context, bookID int64, req model.IssueBookRequest) error
	ReturnFn       func(ctx context.Context, bookID int64) error
	SendReminderFn func(ctx context.Context, bookID int64) error
	IssuedBooksFn  func(ctx context.Context, page, size int) (model.LogPage, error)
	IssueLogsFn    func(ctx context.Context, page, size int, from, to *time.Time) (model.LogPage, error)
}

func (m *issuanceSvcMock) Issue(ctx context.Context, bookID int64, req model.IssueBookRequest) error {
	return m.IssueFn(ctx, bookID, req)
}
func (m *issuanceSvcMock) Return(ctx context.Context, bookID int64) error {
	return m.ReturnFn(ctx, bookID)
}
func (m *issuanceSvcMock) SendReminder(ctx context.Context, bookID int64) error {
	return m.SendReminderFn(ctx, bookID)
}
func (m *issuanceSvcMock) IssuedBooks(ctx context.Context, page, size int) (model.LogPage, error) {
	return m.IssuedBooksFn(ctx, page, size)
}
func (m *issuanceSvcMock) IssueLogs(ctx context.Context, page, size int, from, to *time.Time) (model.LogPage, error) {
	return m.IssueLogsFn(ctx, page, size, from, to)
}

type importSvcMock struct {
	ValidateFn func(sheet *tabular.Sheet) service.ValidationReport
	ImportFn   func(ctx context.Context, sheet *tabular.Sheet, mapping map[string]string) (service.ImportReport, error)
}

func (m *importSvcMock) Validate(sheet *tabular.Sheet) service.ValidationReport {
	return m.ValidateFn(sheet)
}
func (m *importSvcMock) Import(ctx context.Context, sheet *tabular.Sheet, mapping map[string]string) (service.ImportReport, error) {
	return m.ImportFn(ctx, sheet, mapping)
}

type exportSvcMock struct {
	IssueLogsWorkbookFn func(ctx context.Context) ([]byte, string, error)
}

func (m *exportSvcMock) IssueLogsWorkbook(ctx context.Context) ([]byte, string, error) {
	return m.IssueLogsWorkbookFn(ctx)
}
