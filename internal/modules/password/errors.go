package password

import "errors"

var (
	ErrCurrentIncorrect = errors.New("current password is incorrect")
	ErrSamePassword     = errors.New("new password must differ from the current one")
	ErrOTPOnlyAccount   = errors.New("account has no password")
	ErrTraderNotAllowed = errors.New("traders authenticate with otp only")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidOTP       = errors.New("invalid or expired otp")
	ErrOTPAlreadySent   = errors.New("otp already sent")
)
