package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/seminarroom/bookdesk/internal/errs"
	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/pkg/tabular"
)

func (h *Handler) ValidateImport(c echo.Context) error {
	sheet, err := h.readSheet(c)
	if err != nil {
		return h.respondErr(c, err)
	}
	report := h.importSvc.Validate(sheet)
	msg := "file is ready to import"
	if report.NeedsMapping {
		msg = "columns need mapping"
	}
	return c.JSON(http.StatusOK, model.Success(msg).With("report", report))
}

func (h *Handler) BulkImport(c echo.Context) error {
	sheet, err := h.readSheet(c)
	if err != nil {
		return h.respondErr(c, err)
	}

	var mapping map[string]string
	if raw := c.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			return h.respondErr(c, errors.WithMessage(errs.ErrValidation, "mapping is invalid"))
		}
	}

	report, err := h.importSvc.Import(c.Request().Context(), sheet, mapping)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("import finished").
		With("importedCount", report.ImportedCount).
		With("totalRecords", report.TotalRecords))
}

func (h *Handler) readSheet(c echo.Context) (*tabular.Sheet, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, errors.WithMessage(errs.ErrValidation, "file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer src.Close()

	sheet, err := tabular.Read(src, fh.Filename)
	if err != nil {
		return nil, errors.WithMessage(errs.ErrValidation, err.Error())
	}
	return sheet, nil
}
