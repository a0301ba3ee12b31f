package errs

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrValidation        = errors.New("validation failed")
	ErrAlreadyIssued     = errors.New("book is already issued")
	ErrNotIssued         = errors.New("book is not issued")
	ErrInvalidReturnDate = errors.New("return date cannot be in the past")

	ErrOTPNotFound     = errors.New("otp not found or expired")
	ErrOTPExpired      = errors.New("otp expired")
	ErrTooManyAttempts = errors.New("too many attempts, request a new otp")
	ErrInvalidOTP      = errors.New("invalid otp")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")

	ErrMail = errors.New("mail delivery failed")
)
