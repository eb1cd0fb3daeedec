package trader

import (
	"errors"
	"fmt"

	"agromart/internal/domain"
)

var (
	ErrPhoneTaken      = errors.New("phone number already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrTraderNotFound  = errors.New("trader profile not found")
	ErrInvalidOTP      = errors.New("invalid or expired otp")
	ErrOTPAlreadySent  = errors.New("otp already sent")
	ErrAlreadyVerified = errors.New("trader already verified")
)

// AccountStatusError blocks the OTP flow for a suspended or banned account.
// The status travels in the message, matching the login guard.
type AccountStatusError struct {
	Status domain.UserStatus
}

func (e *AccountStatusError) Error() string {
	return fmt.Sprintf("Account is %s. Please contact support.", e.Status)
}
