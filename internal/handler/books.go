package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/seminarroom/bookdesk/internal/errs"
	"github.com/seminarroom/bookdesk/internal/model"
)

func (h *Handler) ListBooks(c echo.Context) error {
	q := model.ListBooksQuery{
		Search: c.QueryParam("search"),
		Order:  model.ListOrder(c.QueryParam("order")),
	}
	var err error
	if q.Page, q.Size, err = pageParams(c); err != nil {
		return h.respondErr(c, err)
	}

	page, err := h.registrySvc.List(c.Request().Context(), q)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("books fetched").
		With("books", page.Books).
		With("currentPage", page.Page).
		With("totalPages", page.TotalPages).
		With("totalBooks", page.TotalBooks))
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.respondErr(c, err)
	}
	book, err := h.registrySvc.Create(c.Request().Context(), req)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, model.Success("book added").With("book", book))
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return h.respondErr(c, err)
	}
	book, err := h.registrySvc.Get(c.Request().Context(), id)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("book fetched").With("book", book))
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return h.respondErr(c, err)
	}
	var req model.UpdateBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.respondErr(c, err)
	}
	book, err := h.registrySvc.Update(c.Request().Context(), id, req)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("book updated").With("book", book))
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return h.respondErr(c, err)
	}
	if err := h.registrySvc.Delete(c.Request().Context(), id); err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("book deleted"))
}

func (h *Handler) IssueBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return h.respondErr(c, err)
	}
	var req model.IssueBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.respondErr(c, err)
	}
	if err := h.issuanceSvc.Issue(c.Request().Context(), id, req); err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("book issued"))
}

func (h *Handler) ReturnBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return h.respondErr(c, err)
	}
	if err := h.issuanceSvc.Return(c.Request().Context(), id); err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("book returned"))
}

func (h *Handler) SendReminder(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return h.respondErr(c, err)
	}
	if err := h.issuanceSvc.SendReminder(c.Request().Context(), id); err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("reminder sent"))
}

func (h *Handler) IssuedBooks(c echo.Context) error {
	page, size, err := pageParams(c)
	if err != nil {
		return h.respondErr(c, err)
	}
	logs, err := h.issuanceSvc.IssuedBooks(c.Request().Context(), page, size)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("issued books fetched").
		With("logs", logs.Logs).
		With("currentPage", logs.Page).
		With("totalPages", logs.TotalPages).
		With("totalLogs", logs.TotalLogs))
}

func (h *Handler) IssueLogs(c echo.Context) error {
	page, size, err := pageParams(c)
	if err != nil {
		return h.respondErr(c, err)
	}
	from, err := dateParam(c, "startDate", false)
	if err != nil {
		return h.respondErr(c, err)
	}
	to, err := dateParam(c, "endDate", true)
	if err != nil {
		return h.respondErr(c, err)
	}
	logs, err := h.issuanceSvc.IssueLogs(c.Request().Context(), page, size, from, to)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("issue logs fetched").
		With("logs", logs.Logs).
		With("currentPage", logs.Page).
		With("totalPages", logs.TotalPages).
		With("totalLogs", logs.TotalLogs))
}

func (h *Handler) ExportLogs(c echo.Context) error {
	data, name, err := h.exportSvc.IssueLogsWorkbook(c.Request().Context())
	if err != nil {
		return h.respondErr(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func bookID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.WithMessage(errs.ErrValidation, "bookId is invalid")
	}
	return id, nil
}

func pageParams(c echo.Context) (page, size int, err error) {
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if page, err = strconv.Atoi(pageParam); err != nil {
			return 0, 0, errors.WithMessage(errs.ErrValidation, "page is invalid")
		}
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if size, err = strconv.Atoi(sizeParam); err != nil {
			return 0, 0, errors.WithMessage(errs.ErrValidation, "size is invalid")
		}
	}
	return page, size, nil
}

func dateParam(c echo.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			if layout == time.DateOnly && endOfDay {
				t = t.Add(24*time.Hour - time.Second)
			}
			return &t, nil
		}
	}
	return nil, errors.WithMessagef(errs.ErrValidation, "%s is invalid", name)
}
