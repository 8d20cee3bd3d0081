package inbound

import "time"

type GenerateOTPRequest struct {
	Email string `json:"email"`
}

type GenerateOTPResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyOTPResponse struct{}

func (VerifyOTPResponse) Message() string { return "code verified" }

type CreateLinkRequest struct {
	Email string `json:"email"`
}

type CreateLinkResponse struct {
	Token string `json:"token"`
	Link  string `json:"link"`
}

type ConfirmLinkRequest struct {
	Token  string `json:"token"`
	ChatID int64  `json:"chat_id"`
}

type ConfirmLinkResponse struct {
	SessionToken string    `json:"session_token"`
	OTPCode      string    `json:"otp_code"`
	OTPExpiresAt time.Time `json:"otp_expires_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type MeResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateAccountRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        int16  `json:"role"`
	LegalName   string `json:"legal_name"`
	TaxID       string `json:"tax_id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	NationalID  string `json:"national_id"`
}

type CreateAccountResponse struct {
	ID    int64  `json:"id,string"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (CreateAccountResponse) StatusCode() int { return 201 }

func (CreateAccountResponse) Message() string { return "account created" }
