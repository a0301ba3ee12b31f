package handler

import (
	"context"
	"time"

	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/internal/service"
	"github.com/seminarroom/bookdesk/pkg/tabular"
)

type AuthService interface {
	RequestOTP(ctx context.Context, email string, isRegistration bool) error
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.User, string, error)
	Login(ctx context.Context, req model.LoginRequest) (model.User, string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error
}

type RegistryService interface {
	Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	Get(ctx context.Context, id int64) (model.Book, error)
	Update(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q model.ListBooksQuery) (model.BookPage, error)
}

type IssuanceService interface {
	Issue(ctx context.Context, bookID int64, req model.IssueBookRequest) error
	Return(ctx context.Context, bookID int64) error
	SendReminder(ctx context.Context, bookID int64) error
	IssuedBooks(ctx context.Context, page, size int) (model.LogPage, error)
	IssueLogs(ctx context.Context, page, size int, from, to *time.Time) (model.LogPage, error)
}

type ImportService interface {
	Validate(sheet *tabular.Sheet) service.ValidationReport
	Import(ctx context.Context, sheet *tabular.Sheet, mapping map[string]string) (service.ImportReport, error)
}

type ExportService interface {
	IssueLogsWorkbook(ctx context.Context) ([]byte, string, error)
}
