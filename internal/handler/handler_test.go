package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/errs"
	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/internal/service"
	"github.com/seminarroom/bookdesk/pkg/auth"
	"github.com/seminarroom/bookdesk/pkg/tabular"
)

var testJWTKey = []byte("test-signing-key")

type testServices struct {
	auth     *authSvcMock
	registry *registrySvcMock
	issuance *issuanceSvcMock
	imports  *importSvcMock
	exports  *exportSvcMock
}

func newTestRouter(t *testing.T, svcs testServices) *echo.Echo {
	t.Helper()
	if svcs.auth == nil {
		svcs.auth = &authSvcMock{}
	}
	if svcs.registry == nil {
		svcs.registry = &registrySvcMock{}
	}
	if svcs.issuance == nil {
		svcs.issuance = &issuanceSvcMock{}
	}
	if svcs.imports == nil {
		svcs.imports = &importSvcMock{}
	}
	if svcs.exports == nil {
		svcs.exports = &exportSvcMock{}
	}
	h := New(svcs.auth, svcs.registry, svcs.issuance, svcs.imports, svcs.exports, testJWTKey, zap.NewNop())
	return h.NewRouter()
}

func sessionToken(t *testing.T) string {
	t.Helper()
	token, err := auth.IssueSession(testJWTKey, 1, "reader", "reader@example.com", time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(auth.AuthorizationHeader, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	e := newTestRouter(t, testServices{})
	rec := doJSON(e, http.MethodGet, "/manage/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBooks_requireAuth(t *testing.T) {
	e := newTestRouter(t, testServices{})

	rec := doJSON(e, http.MethodGet, "/api/v1/books", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/books", "not-a-jwt", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	svcs := testServices{auth: &authSvcMock{
		LoginFn: func(_ context.Context, req model.LoginRequest) (model.User, string, error) {
			if req.Password != "Sup3r$ecret" {
				return model.User{}, "", errs.ErrInvalidCredentials
			}
			return model.User{ID: 1, Username: "reader"}, "a.jwt.token", nil
		},
	}}
	e := newTestRouter(t, svcs)

	t.Run("success", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/auth/login", "",
			`{"emailOrUsername":"reader","password":"Sup3r$ecret"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		env := envelope(t, rec)
		require.Equal(t, "success", env["status"])
		require.Equal(t, "a.jwt.token", env["token"])
	})

	t.Run("bad password", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/auth/login", "",
			`{"emailOrUsername":"reader","password":"nope"}`)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "fail", envelope(t, rec)["status"])
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/auth/login", "", `{"password":"x"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "fail", envelope(t, rec)["status"])
	})
}

func TestRequestOTP_emailTaken(t *testing.T) {
	svcs := testServices{auth: &authSvcMock{
		RequestOTPFn: func(_ context.Context, _ string, _ bool) error {
			return errs.ErrEmailTaken
		},
	}}
	e := newTestRouter(t, svcs)

	rec := doJSON(e, http.MethodPost, "/api/v1/auth/request-otp", "",
		`{"email":"taken@example.com","isRegistration":true}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "fail", envelope(t, rec)["status"])
}

func TestGetBook(t *testing.T) {
	svcs := testServices{registry: &registrySvcMock{
		GetFn: func(_ context.Context, id int64) (model.Book, error) {
			if id != 42 {
				return model.Book{}, errs.ErrNotFound
			}
			return model.Book{ID: 42, Title: "Dune", Available: true}, nil
		},
	}}
	e := newTestRouter(t, svcs)
	token := sessionToken(t)

	t.Run("found", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/books/42", token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		env := envelope(t, rec)
		book := env["book"].(map[string]interface{})
		require.Equal(t, "Dune", book["Title"])
		require.Equal(t, true, book["Book_Status"])
	})

	t.Run("missing", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/books/999", token, "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "fail", envelope(t, rec)["status"])
	})

	t.Run("bad id", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/books/abc", token, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := envelope(t, rec)
		require.Equal(t, "fail", env["status"])
		require.Contains(t, env["message"], "bookId is invalid")
	})
}

func TestCreateBook(t *testing.T) {
	svcs := testServices{registry: &registrySvcMock{
		CreateFn: func(_ context.Context, req model.CreateBookRequest) (model.Book, error) {
			if req.ID == 42 {
				return model.Book{}, errs.ErrDuplicateID
			}
			return model.Book{ID: req.ID, Title: req.Title, Available: true}, nil
		},
	}}
	e := newTestRouter(t, svcs)
	token := sessionToken(t)

	t.Run("created", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/books", token,
			`{"ID":7,"Title":"Dune","Author":"Herbert","Publisher":"Chilton"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "success", envelope(t, rec)["status"])
	})

	t.Run("duplicate id", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/books", token,
			`{"ID":42,"Title":"Dune","Author":"Herbert","Publisher":"Chilton"}`)
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/books", token,
			`{"ID":7,"Title":"<script>","Author":"Herbert","Publisher":"Chilton"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestIssueBook(t *testing.T) {
	svcs := testServices{issuance: &issuanceSvcMock{
		IssueFn: func(_ context.Context, bookID int64, _ model.IssueBookRequest) error {
			if bookID == 42 {
				return errs.ErrAlreadyIssued
			}
			return nil
		},
	}}
	e := newTestRouter(t, svcs)
	token := sessionToken(t)

	body := `{"name":"Paul","email":"paul@example.com","returnDate":"2100-01-01"}`

	rec := doJSON(e, http.MethodPost, "/api/v1/books/7/issue", token, body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/v1/books/42/issue", token, body)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "fail", envelope(t, rec)["status"])
}

func TestIssueLogs_dateFilter(t *testing.T) {
	var gotFrom, gotTo *time.Time
	svcs := testServices{issuance: &issuanceSvcMock{
		IssueLogsFn: func(_ context.Context, page, size int, from, to *time.Time) (model.LogPage, error) {
			gotFrom, gotTo = from, to
			return model.LogPage{Page: page}, nil
		},
	}}
	e := newTestRouter(t, svcs)
	token := sessionToken(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/books/issue-logs?startDate=2025-03-01&endDate=2025-03-31", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotFrom)
	require.NotNil(t, gotTo)
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *gotFrom)
	// the upper bound covers the whole day
	require.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), *gotTo)

	rec = doJSON(e, http.MethodGet, "/api/v1/books/issue-logs?startDate=bogus", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "fail", envelope(t, rec)["status"])
}

func TestListBooks_badQueryParamsKeepEnvelope(t *testing.T) {
	e := newTestRouter(t, testServices{})
	token := sessionToken(t)

	for _, target := range []string{
		"/api/v1/books?page=abc",
		"/api/v1/books?size=abc",
	} {
		rec := doJSON(e, http.MethodGet, target, token, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		env := envelope(t, rec)
		require.Equal(t, "fail", env["status"], target)
		require.Contains(t, env["message"], "is invalid", target)
	}
}

func TestBulkImport_badInputsKeepEnvelope(t *testing.T) {
	e := newTestRouter(t, testServices{})
	token := sessionToken(t)

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/books/bulk-import", &buf)
		req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
		req.Header.Set(auth.AuthorizationHeader, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := envelope(t, rec)
		require.Equal(t, "fail", env["status"])
		require.Contains(t, env["message"], "file is required")
	})

	t.Run("bad mapping json", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", "books.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte("ID,Title\n1,Dune\n"))
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("mapping", "{not json"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/books/bulk-import", &buf)
		req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
		req.Header.Set(auth.AuthorizationHeader, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := envelope(t, rec)
		require.Equal(t, "fail", env["status"])
		require.Contains(t, env["message"], "mapping is invalid")
	})
}

func TestValidateImport(t *testing.T) {
	var gotColumns []string
	svcs := testServices{imports: &importSvcMock{
		ValidateFn: func(sheet *tabular.Sheet) service.ValidationReport {
			gotColumns = sheet.Columns
			return service.ValidationReport{TotalRows: len(sheet.Rows), Columns: sheet.Columns}
		},
	}}
	e := newTestRouter(t, svcs)
	token := sessionToken(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "books.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("ID,Title,Author,Publisher\n1,Dune,Herbert,Chilton\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/books/validate-import", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(auth.AuthorizationHeader, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"ID", "Title", "Author", "Publisher"}, gotColumns)
	require.Equal(t, "success", envelope(t, rec)["status"])
}

func TestExportLogs(t *testing.T) {
	svcs := testServices{exports: &exportSvcMock{
		IssueLogsWorkbookFn: func(_ context.Context) ([]byte, string, error) {
			return []byte("xlsx-bytes"), "issue_logs_2025-03-10.xlsx", nil
		},
	}}
	e := newTestRouter(t, svcs)

	rec := doJSON(e, http.MethodGet, "/api/v1/books/export-logs", sessionToken(t), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "issue_logs_2025-03-10.xlsx")
	require.Equal(t, "xlsx-bytes", rec.Body.String())
}
