package agent

import (
	"time"

	"agromart/internal/domain"
)

type RegisterRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required,e164"`
	Password    string `json:"password" binding:"required,min=8"`
	Market      string `json:"market"`
	IDDocument  string `json:"id_document_url"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

type ClockInRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Address   string  `json:"address"`
}

type ClockOutRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Address   string  `json:"address"`
}

type OTPChallenge struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	OTPSent bool   `json:"otpSent"`
	OTP     string `json:"otp,omitempty"`
}

// Profile joins the identity record with the agent profile.
type Profile struct {
	UserID          int64      `json:"user_id"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	PhoneNumber     string     `json:"phone_number,omitempty"`
	Status          string     `json:"status"`
	Market          string     `json:"market,omitempty"`
	ApprovalStatus  string     `json:"approval_status"`
	EmailVerified   bool       `json:"email_verified"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NewProfile(u *domain.User, a *domain.Agent) Profile {
	return Profile{
		UserID:          u.ID,
		FullName:        u.FullName,
		Email:           u.Email,
		PhoneNumber:     u.PhoneNumber,
		Status:          string(u.Status),
		Market:          a.Market,
		ApprovalStatus:  string(a.ApprovalStatus),
		EmailVerified:   a.EmailVerified,
		RejectionReason: a.RejectionReason,
		ApprovedAt:      a.ApprovedAt,
		CreatedAt:       u.CreatedAt,
	}
}

// AttendanceStatus is the agent's day at a glance.
type AttendanceStatus struct {
	Date             string     `json:"date"`
	ClockedIn        bool       `json:"clocked_in"`
	ClockedOut       bool       `json:"clocked_out"`
	ClockInTime      *time.Time `json:"clock_in_time,omitempty"`
	ClockOutTime     *time.Time `json:"clock_out_time,omitempty"`
	TotalHoursWorked float64    `json:"total_hours_worked"`
	CompletedPickups int        `json:"completed_pickups"`
}
