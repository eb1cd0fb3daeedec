package auth

import "agromart/internal/domain"

// LoginRequest carries the unified login payload. The identifier's shape
// selects the flow: a leading + means phone (trader OTP), anything else is
// treated as an email (password login).
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password"`
}

type VerifyOTPRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	OTP        string `json:"otp" binding:"required,len=6"`
}

type ResendOTPRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

type UserPublic struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}

func NewUserPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		Status:      string(u.Status),
	}
}

// TokenResponse is the successful-authentication payload.
type TokenResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	TokenType    string     `json:"tokenType"`
	ExpiresIn    int64      `json:"expiresIn"`
	User         UserPublic `json:"user"`
}

// OTPChallenge is returned when the login flow pivots to OTP delivery.
// OTP is echoed only outside production so manual testing does not need
// an SMS sink.
type OTPChallenge struct {
	Message    string `json:"message"`
	Identifier string `json:"identifier"`
	OTPSent    bool   `json:"otpSent"`
	OTP        string `json:"otp,omitempty"`
}

// LoginResult is either an OTP challenge (phone flow) or tokens (email flow).
type LoginResult struct {
	Challenge *OTPChallenge
	Tokens    *TokenResponse
}
