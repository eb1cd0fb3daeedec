package auth

import (
	"errors"
	"fmt"

	"agromart/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrPendingApproval    = errors.New("account pending admin approval")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password required")
	ErrPhoneLoginOnly     = errors.New("phone login is only available to traders")
	ErrTraderPassword     = errors.New("traders must login with phone and otp")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrOTPAlreadySent     = errors.New("otp already sent")
)

// AccountStatusError rejects a login against a non-ACTIVE account. The
// status travels in the message so support can tell a suspension from a ban.
type AccountStatusError struct {
	Status domain.UserStatus
}

func (e *AccountStatusError) Error() string {
	return fmt.Sprintf("Account is %s. Please contact support.", e.Status)
}
