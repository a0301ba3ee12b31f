package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/internal/repository"
	"github.com/seminarroom/bookdesk/pkg/tabular"
)

// Canonical column set the registry requires from imported sheets.
var requiredColumns = []string{"ID", "Title", "Author", "Publisher"}

var columnSynonyms = map[string]string{
	"id":                  "ID",
	"book id":             "ID",
	"bookid":              "ID",
	"book_id":             "ID",
	"title":               "Title",
	"book title":          "Title",
	"booktitle":           "Title",
	"book_title":          "Title",
	"author":              "Author",
	"writer":              "Author",
	"publisher":           "Publisher",
	"publishing company":  "Publisher",
	"publishing_company":  "Publisher",
	"accession":           "Accession_Number",
	"accession number":    "Accession_Number",
	"accession_number":    "Accession_Number",
	"mal acc":             "MAL_ACC_Number",
	"mal_acc":             "MAL_ACC_Number",
	"malacc":              "MAL_ACC_Number",
	"edition":             "Edition",
	"publishing year":     "Publishing_Year",
	"publishing_year":     "Publishing_Year",
	"year":                "Publishing_Year",
	"category":            "Category1",
	"main category":       "Category1",
	"category1":           "Category1",
	"sub category":        "Category2",
	"category2":           "Category2",
	"tertiary category":   "Category3",
	"category3":           "Category3",
}

type MappingOption struct {
	FileColumn       string `json:"fileColumn"`
	SuggestedMapping string `json:"suggestedMapping,omitempty"`
}

type ValidationReport struct {
	TotalRows      int             `json:"totalRows"`
	Columns        []string        `json:"columns"`
	MissingColumns []string        `json:"missingColumns,omitempty"`
	NeedsMapping   bool            `json:"needsMapping"`
	MappingOptions []MappingOption `json:"mappingOptions,omitempty"`
}

type ImportReport struct {
	ImportedCount int64 `json:"importedCount"`
	TotalRecords  int   `json:"totalRecords"`
}

// ImportService reconciles externally supplied tabular data against
// the registry's canonical columns and feeds the bulk-insert path.
type ImportService struct {
	books repository.BookRepository
	log   *zap.Logger
}

func NewImportService(books repository.BookRepository, log *zap.Logger) *ImportService {
	return &ImportService{
		books: books,
		log:   log.Named("import"),
	}
}

// SuggestMapping resolves a file column to a canonical one through the
// fixed synonym table, case-insensitively.
func SuggestMapping(column string) (string, bool) {
	canonical, ok := columnSynonyms[strings.ToLower(strings.TrimSpace(column))]
	return canonical, ok
}

func (s *ImportService) Validate(sheet *tabular.Sheet) ValidationReport {
	present := make(map[string]bool, len(sheet.Columns))
	for _, col := range sheet.Columns {
		present[col] = true
	}
	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}

	report := ValidationReport{
		TotalRows:      len(sheet.Rows),
		Columns:        sheet.Columns,
		MissingColumns: missing,
		NeedsMapping:   len(missing) > 0,
	}
	if report.NeedsMapping {
		for _, col := range sheet.Columns {
			opt := MappingOption{FileColumn: col}
			if suggested, ok := SuggestMapping(col); ok {
				opt.SuggestedMapping = suggested
			}
			report.MappingOptions = append(report.MappingOptions, opt)
		}
	}
	return report
}

// Import applies the column mapping (identity when nil), coerces
// numeric fields best-effort, and bulk-inserts. Rows colliding with an
// existing book ID are skipped, not failed; rows without a usable ID
// or a required text field are dropped the same way.
func (s *ImportService) Import(ctx context.Context, sheet *tabular.Sheet, mapping map[string]string) (ImportReport, error) {
	books := make([]model.Book, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		mapped := applyMapping(row, mapping)
		book, ok := rowToBook(mapped)
		if !ok {
			s.log.Warn("skipping unusable import row", zap.Any("row", mapped))
			continue
		}
		books = append(books, book)
	}

	imported, err := s.books.BulkInsert(ctx, books)
	if err != nil {
		return ImportReport{}, err
	}
	return ImportReport{
		ImportedCount: imported,
		TotalRecords:  len(sheet.Rows),
	}, nil
}

func applyMapping(row tabular.Row, mapping map[string]string) tabular.Row {
	if len(mapping) == 0 {
		return row
	}
	mapped := make(tabular.Row, len(mapping))
	for fileCol, canonical := range mapping {
		mapped[canonical] = row[fileCol]
	}
	return mapped
}

func rowToBook(row tabular.Row) (model.Book, bool) {
	id := parseInt(row["ID"])
	if id == nil || *id <= 0 {
		return model.Book{}, false
	}
	book := model.Book{
		ID:              *id,
		AccessionNumber: parseInt(row["Accession_Number"]),
		MalAccNumber:    parseInt(row["MAL_ACC_Number"]),
		Title:           strings.TrimSpace(row["Title"]),
		Author:          strings.TrimSpace(row["Author"]),
		Publisher:       strings.TrimSpace(row["Publisher"]),
		Edition:         optString(row["Edition"]),
		Author1:         optString(row["Author1"]),
		Author2:         optString(row["Author2"]),
		Author3:         optString(row["Author3"]),
		Category1:       optString(row["Category1"]),
		Category2:       optString(row["Category2"]),
		Category3:       optString(row["Category3"]),
		Available:       true,
	}
	if book.Title == "" || book.Author == "" || book.Publisher == "" {
		return model.Book{}, false
	}
	if year := parseInt(row["Publishing_Year"]); year != nil {
		y := int(*year)
		if y >= 1800 && y <= time.Now().Year() {
			book.PublishingYear = &y
		}
	}
	return book, true
}

func parseInt(s string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
