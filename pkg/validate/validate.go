package validate

import (
	"regexp"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	textFieldRe = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
	publisherRe = regexp.MustCompile(`^[a-zA-Z0-9 ,.]+$`)
	alphaSpace  = regexp.MustCompile(`^[a-zA-Z ]+$`)
	usernameRe  = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("textfield", func(fl validator.FieldLevel) bool {
		return textFieldRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("publisher", func(fl validator.FieldLevel) bool {
		return publisherRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return alphaSpace.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pubyear", func(fl validator.FieldLevel) bool {
		return ValidYear(int(fl.Field().Int()))
	})
	_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ValidYear bounds a publishing year to 1800..next year.
func ValidYear(year int) bool {
	return year >= 1800 && year <= time.Now().Year()+1
}

// StrongPassword requires at least 8 runes with an upper, a lower,
// a digit and a symbol.
func StrongPassword(s string) bool {
	if len([]rune(s)) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
