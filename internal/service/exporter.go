package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/internal/repository"
)

const exportSheet = "Issue Logs"

var exportHeaders = []string{
	"Book Title",
	"Issuer Name",
	"Issuer Email",
	"Issue Date",
	"Expected Return",
	"Actual Return",
	"Status",
	"Remarks",
}

var exportWidths = []float64{30, 20, 30, 20, 20, 20, 15, 40}

// ExportService renders the full issue-log ledger as a spreadsheet.
type ExportService struct {
	logs repository.IssueLogRepository
	log  *zap.Logger
}

func NewExportService(logs repository.IssueLogRepository, log *zap.Logger) *ExportService {
	return &ExportService{
		logs: logs,
		log:  log.Named("export"),
	}
}

// IssueLogsWorkbook writes every issue log into an xlsx workbook and
// returns the encoded bytes together with a dated download filename.
func (s *ExportService) IssueLogsWorkbook(ctx context.Context) ([]byte, string, error) {
	logs, err := s.logs.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn("closing workbook", zap.Error(err))
		}
	}()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", errors.Wrap(err, "create sheet")
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", errors.Wrap(err, "drop default sheet")
	}

	for i, width := range exportWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(exportSheet, col, col, width); err != nil {
			return nil, "", errors.Wrap(err, "set column width")
		}
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, "", errors.Wrap(err, "write header")
	}

	for i, entry := range logs {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, exportRow(entry)); err != nil {
			return nil, "", errors.Wrap(err, "write row")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", errors.Wrap(err, "encode workbook")
	}
	name := fmt.Sprintf("issue_logs_%s.xlsx", time.Now().Format(time.DateOnly))
	return buf.Bytes(), name, nil
}

func exportRow(entry model.IssueLog) *[]interface{} {
	actual := "Not Returned"
	status := "Issued"
	if entry.Returned && entry.ActualReturnDate != nil {
		actual = entry.ActualReturnDate.Format(time.DateOnly)
		status = "Returned"
	}
	row := []interface{}{
		entry.BookTitle,
		entry.IssuerName,
		entry.IssuerEmail,
		entry.IssueDate.Format(time.DateOnly),
		entry.ExpectedReturnDate.Format(time.DateOnly),
		actual,
		status,
		entry.Remarks,
	}
	return &row
}
