package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Issuance is the active lending embedded in a book row as jsonb.
// A null column scans to Valid=false.
type Issuance struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IssueDate  time.Time `json:"issueDate"`
	ReturnDate time.Time `json:"returnDate"`
	Remarks    string    `json:"remarks,omitempty"`
	Valid      bool      `json:"-"`
}

func (i Issuance) Value() (driver.Value, error) {
	if !i.Valid {
		return nil, nil
	}
	return json.Marshal(i)
}

func (i *Issuance) Scan(src interface{}) error {
	if src == nil {
		*i = Issuance{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("issuance: cannot scan %T", src)
	}
	if err := json.Unmarshal(data, i); err != nil {
		return err
	}
	i.Valid = true
	return nil
}

func (i Issuance) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	type issuance Issuance // shed methods
	return json.Marshal(issuance(i))
}

func (i *Issuance) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = Issuance{}
		return nil
	}
	type issuance Issuance
	var v issuance
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*i = Issuance(v)
	i.Valid = true
	return nil
}

// Book keys keep the original import/export column names.
type Book struct {
	ID              int64     `json:"ID" db:"id"`
	AccessionNumber *int64    `json:"Accession_Number,omitempty" db:"accession_number"`
	MalAccNumber    *int64    `json:"MAL_ACC_Number,omitempty" db:"mal_acc_number"`
	Title           string    `json:"Title" db:"title"`
	Author          string    `json:"Author" db:"author"`
	Publisher       string    `json:"Publisher" db:"publisher"`
	Edition         *string   `json:"Edition,omitempty" db:"edition"`
	PublishingYear  *int      `json:"Publishing_Year,omitempty" db:"publishing_year"`
	Author1         *string   `json:"Author1,omitempty" db:"author1"`
	Author2         *string   `json:"Author2,omitempty" db:"author2"`
	Author3         *string   `json:"Author3,omitempty" db:"author3"`
	Category1       *string   `json:"Category1,omitempty" db:"category1"`
	Category2       *string   `json:"Category2,omitempty" db:"category2"`
	Category3       *string   `json:"Category3,omitempty" db:"category3"`
	Available       bool      `json:"Book_Status" db:"available"`
	IssuedTo        Issuance  `json:"IssuedTo" db:"issued_to"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

type IssueLog struct {
	ID                 int64      `json:"id" db:"id"`
	LogUID             string     `json:"logUid" db:"log_uid"`
	BookID             int64      `json:"bookId" db:"book_id"`
	BookTitle          string     `json:"bookTitle" db:"book_title"`
	IssuerName         string     `json:"issuerName" db:"issuer_name"`
	IssuerEmail        string     `json:"issuerEmail" db:"issuer_email"`
	IssueDate          time.Time  `json:"issueDate" db:"issue_date"`
	ExpectedReturnDate time.Time  `json:"expectedReturnDate" db:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actualReturnDate" db:"actual_return_date"`
	Remarks            string     `json:"remarks" db:"remarks"`
	Returned           bool       `json:"isReturned" db:"returned"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
}

// OTPEntry is the one live verification code per email.
type OTPEntry struct {
	Email    string    `db:"email"`
	Code     string    `db:"code"`
	IssuedAt time.Time `db:"issued_at"`
	Attempts int       `db:"attempts"`
}

type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type ListOrder string

const (
	// OrderRecent lists by creation time, newest first.
	OrderRecent ListOrder = "recent"
	// OrderAccession lists by accession number ascending.
	OrderAccession ListOrder = "accession"
)

type ListBooksQuery struct {
	Page   int
	Size   int
	Search string
	Order  ListOrder
}

type BookPage struct {
	Books      []Book `json:"books"`
	Page       int    `json:"currentPage"`
	TotalPages int    `json:"totalPages"`
	TotalBooks int    `json:"totalBooks"`
}

type LogPage struct {
	Logs       []IssueLog `json:"logs"`
	Page       int        `json:"currentPage"`
	TotalPages int        `json:"totalPages"`
	TotalLogs  int        `json:"totalLogs"`
}
