// Package tabular reads externally supplied spreadsheets as ordered
// rows of column name to raw string value.
package tabular

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var ErrNoRecords = errors.New("no records found in file")

type Row map[string]string

type Sheet struct {
	Columns []string
	Rows    []Row
}

// Read parses r according to the file extension: .csv as
// comma-separated values, .xlsx/.xls through excelize. The first
// non-empty row is the header.
func Read(r io.Reader, filename string) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(r)
	case ".xlsx", ".xls":
		return readXLSX(r)
	default:
		return nil, errors.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
}

func readCSV(r io.Reader) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse csv")
	}
	return fromRecords(records)
}

func readXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse xlsx")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRecords
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "read rows")
	}
	return fromRecords(records)
}

func fromRecords(records [][]string) (*Sheet, error) {
	var header []string
	start := 0
	for i, rec := range records {
		if !empty(rec) {
			header = trimAll(rec)
			start = i + 1
			break
		}
	}
	if header == nil {
		return nil, ErrNoRecords
	}

	sheet := &Sheet{Columns: header}
	for _, rec := range records[start:] {
		if empty(rec) {
			continue
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	if len(sheet.Rows) == 0 {
		return nil, ErrNoRecords
	}
	return sheet, nil
}

func empty(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func trimAll(rec []string) []string {
	out := make([]string, len(rec))
	for i, v := range rec {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
