package domain

import "time"

type Role string

const (
	RoleTrader     Role = "TRADER"
	RoleAgent      Role = "AGENT"
	RoleBuyer      Role = "BUYER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type UserStatus string

const (
	StatusPending   UserStatus = "PENDING"
	StatusActive    UserStatus = "ACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
	StatusBanned    UserStatus = "BANNED"
)

// User is the identity record shared by every role. Traders carry no
// password hash and authenticate with phone + OTP only; every other role
// logs in with email + password.
type User struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	Email         string     `json:"email,omitempty" gorm:"uniqueIndex;default:null"`
	PhoneNumber   string     `json:"phone_number,omitempty" gorm:"uniqueIndex;default:null"`
	PasswordHash  string     `json:"-"`
	FullName      string     `json:"full_name"`
	Role          Role       `json:"role"`
	Status        UserStatus `json:"status"`
	LoginAttempts int        `json:"-"`
	LockedUntil   *time.Time `json:"-"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Contact returns the identifier the user logs in with: phone for traders,
// email for everyone else.
func (u *User) Contact() string {
	if u.PhoneNumber != "" && u.Role == RoleTrader {
		return u.PhoneNumber
	}
	if u.Email != "" {
		return u.Email
	}
	return u.PhoneNumber
}

// Locked reports whether a lockout window is still open. The window wins
// over the attempts counter: even a reset counter does not unlock early.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}
