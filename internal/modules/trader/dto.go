package trader

import (
	"time"

	"agromart/internal/domain"
)

type RegisterRequest struct {
	PhoneNumber  string `json:"phone_number" binding:"required,e164"`
	FullName     string `json:"full_name" binding:"required,min=2"`
	StallNumber  string `json:"stall_number"`
	Market       string `json:"market"`
	ProduceTypes string `json:"produce_types"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,e164"`
	OTP         string `json:"otp" binding:"required,len=6"`
}

type ResendOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,e164"`
}

type UpdateRequest struct {
	FullName          string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	StallNumber       string `json:"stall_number,omitempty"`
	Market            string `json:"market,omitempty"`
	ProduceTypes      string `json:"produce_types,omitempty"`
	BankName          string `json:"bank_name,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty" validate:"omitempty,numeric,len=10"`
	AccountName       string `json:"account_name,omitempty"`
}

type ChangePhoneRequest struct {
	NewPhoneNumber string `json:"new_phone_number" binding:"required,e164"`
}

type ConfirmPhoneChangeRequest struct {
	NewPhoneNumber string `json:"new_phone_number" binding:"required,e164"`
	OTP            string `json:"otp" binding:"required,len=6"`
}

type OTPChallenge struct {
	Message     string `json:"message"`
	PhoneNumber string `json:"phone_number"`
	OTPSent     bool   `json:"otpSent"`
	OTP         string `json:"otp,omitempty"`
}

type TokenResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	TokenType    string  `json:"tokenType"`
	ExpiresIn    int64   `json:"expiresIn"`
	Profile      Profile `json:"user"`
}

// Profile joins the identity record with the trader profile.
type Profile struct {
	UserID            int64     `json:"user_id"`
	FullName          string    `json:"full_name"`
	PhoneNumber       string    `json:"phone_number"`
	Status            string    `json:"status"`
	StallNumber       string    `json:"stall_number,omitempty"`
	Market            string    `json:"market,omitempty"`
	ProduceTypes      string    `json:"produce_types,omitempty"`
	BankName          string    `json:"bank_name,omitempty"`
	BankAccountNumber string    `json:"bank_account_number,omitempty"`
	AccountName       string    `json:"account_name,omitempty"`
	Verified          bool      `json:"verified"`
	RegisteredByAgent *int64    `json:"registered_by_agent_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewProfile(u *domain.User, t *domain.Trader) Profile {
	return Profile{
		UserID:            u.ID,
		FullName:          u.FullName,
		PhoneNumber:       u.PhoneNumber,
		Status:            string(u.Status),
		StallNumber:       t.StallNumber,
		Market:            t.Market,
		ProduceTypes:      t.ProduceTypes,
		BankName:          t.BankName,
		BankAccountNumber: t.BankAccountNumber,
		AccountName:       t.AccountName,
		Verified:          t.Verified,
		RegisteredByAgent: t.RegisteredByAgentID,
		CreatedAt:         u.CreatedAt,
	}
}
