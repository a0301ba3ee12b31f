package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/errs"
	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/pkg/validate"
)

type Handler struct {
	authSvc     AuthService
	registrySvc RegistryService
	issuanceSvc IssuanceService
	importSvc   ImportService
	exportSvc   ExportService

	jwtKey []byte
	log    *zap.Logger
}

func New(
	authSvc AuthService,
	registrySvc RegistryService,
	issuanceSvc IssuanceService,
	importSvc ImportService,
	exportSvc ExportService,
	jwtKey []byte,
	log *zap.Logger,
) *Handler {
	return &Handler{
		authSvc:     authSvc,
		registrySvc: registrySvc,
		issuanceSvc: issuanceSvc,
		importSvc:   importSvc,
		exportSvc:   exportSvc,
		jwtKey:      jwtKey,
		log:         log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		NewRateLimiter(apiRPS),
	)

	authGr := api.Group("/auth")
	authGr.POST("/request-otp", h.RequestOTP)
	authGr.POST("/verify-otp", h.VerifyOTP)
	authGr.POST("/register", h.Register)
	authGr.POST("/login", h.Login)
	authGr.POST("/forgot-password", h.ForgotPassword)
	authGr.POST("/reset-password", h.ResetPassword)

	books := api.Group("/books", h.JwtAuthentication)
	books.GET("", h.ListBooks)
	books.POST("", h.CreateBook)
	books.GET("/issued", h.IssuedBooks)
	books.GET("/issue-logs", h.IssueLogs)
	books.GET("/export-logs", h.ExportLogs)
	books.POST("/validate-import", h.ValidateImport)
	books.POST("/bulk-import", h.BulkImport)
	books.GET("/:bookId", h.GetBook)
	books.PATCH("/:bookId", h.UpdateBook)
	books.DELETE("/:bookId", h.DeleteBook)
	books.POST("/:bookId/issue", h.IssueBook)
	books.POST("/:bookId/return", h.ReturnBook)
	books.POST("/:bookId/send-reminder", h.SendReminder)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// respondErr translates domain sentinels into the envelope contract:
// "fail" for caller mistakes and conflicts, "error" for backend trouble.
func (h *Handler) respondErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrInvalidReturnDate),
		errors.Is(err, errs.ErrOTPNotFound),
		errors.Is(err, errs.ErrOTPExpired),
		errors.Is(err, errs.ErrInvalidOTP):
		return c.JSON(http.StatusBadRequest, model.Fail(err.Error()))
	case errors.Is(err, errs.ErrInvalidCredentials),
		errors.Is(err, errs.ErrEmailNotVerified):
		return c.JSON(http.StatusUnauthorized, model.Fail(err.Error()))
	case errors.Is(err, errs.ErrNotFound):
		return c.JSON(http.StatusNotFound, model.Fail(err.Error()))
	case errors.Is(err, errs.ErrDuplicateID),
		errors.Is(err, errs.ErrAlreadyIssued),
		errors.Is(err, errs.ErrNotIssued),
		errors.Is(err, errs.ErrEmailTaken),
		errors.Is(err, errs.ErrUsernameTaken):
		return c.JSON(http.StatusConflict, model.Fail(err.Error()))
	case errors.Is(err, errs.ErrTooManyAttempts):
		return c.JSON(http.StatusTooManyRequests, model.Fail(err.Error()))
	case errors.Is(err, errs.ErrMail):
		return c.JSON(http.StatusBadGateway, model.Error(err.Error()))
	default:
		h.log.Error("internal error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, model.Error("internal server error"))
	}
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.WithMessage(errs.ErrValidation, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return errors.WithMessage(errs.ErrValidation, err.Error())
	}
	return nil
}
