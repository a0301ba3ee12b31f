package model

type CreateBookRequest struct {
	ID              int64   `json:"ID" validate:"required,gt=0"`
	AccessionNumber *int64  `json:"Accession_Number"`
	MalAccNumber    *int64  `json:"MAL_ACC_Number"`
	Title           string  `json:"Title" validate:"required,textfield"`
	Author          string  `json:"Author" validate:"required,textfield"`
	Publisher       string  `json:"Publisher" validate:"required,publisher"`
	Edition         *string `json:"Edition" validate:"omitempty,textfield"`
	PublishingYear  *int    `json:"Publishing_Year" validate:"omitempty,pubyear"`
	Author1         *string `json:"Author1" validate:"omitempty,textfield"`
	Author2         *string `json:"Author2" validate:"omitempty,textfield"`
	Author3         *string `json:"Author3" validate:"omitempty,textfield"`
	Category1       *string `json:"Category1" validate:"omitempty,textfield"`
	Category2       *string `json:"Category2" validate:"omitempty,textfield"`
	Category3       *string `json:"Category3" validate:"omitempty,textfield"`
}

// UpdateBookRequest carries only the fields being changed.
type UpdateBookRequest struct {
	ID              *int64  `json:"ID" validate:"omitempty,gt=0"`
	AccessionNumber *int64  `json:"Accession_Number"`
	MalAccNumber    *int64  `json:"MAL_ACC_Number"`
	Title           *string `json:"Title" validate:"omitempty,textfield"`
	Author          *string `json:"Author" validate:"omitempty,textfield"`
	Publisher       *string `json:"Publisher" validate:"omitempty,publisher"`
	Edition         *string `json:"Edition" validate:"omitempty,textfield"`
	PublishingYear  *int    `json:"Publishing_Year" validate:"omitempty,pubyear"`
	Author1         *string `json:"Author1" validate:"omitempty,textfield"`
	Author2         *string `json:"Author2" validate:"omitempty,textfield"`
	Author3         *string `json:"Author3" validate:"omitempty,textfield"`
	Category1       *string `json:"Category1" validate:"omitempty,textfield"`
	Category2       *string `json:"Category2" validate:"omitempty,textfield"`
	Category3       *string `json:"Category3" validate:"omitempty,textfield"`
}

type IssueBookRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	ReturnDate string `json:"returnDate" validate:"required"`
	Remarks    string `json:"remarks"`
}

type RequestOTPRequest struct {
	Email          string `json:"email" validate:"required,email"`
	IsRegistration bool   `json:"isRegistration"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,number"`
}

type RegisterRequest struct {
	Name               string `json:"name" validate:"required,alphaspace"`
	Username           string `json:"username" validate:"required,username"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,strongpwd"`
	VerifiedEmailToken string `json:"verifiedEmailToken" validate:"required"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,number"`
	NewPassword string `json:"newPassword" validate:"required,strongpwd"`
}
