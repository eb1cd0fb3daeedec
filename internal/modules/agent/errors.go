package agent

import "errors"

var (
	ErrEmailTaken        = errors.New("email already registered")
	ErrPhoneTaken        = errors.New("phone number already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrAgentNotFound     = errors.New("agent profile not found")
	ErrInvalidOTP        = errors.New("invalid or expired otp")
	ErrOTPAlreadySent    = errors.New("otp already sent")
	ErrNotApproved       = errors.New("agent is not approved")
	ErrOutsideGeofence   = errors.New("location is outside the market geofence")
	ErrBeforeOpening     = errors.New("cannot clock in before the market opens")
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrNotClockedIn      = errors.New("not clocked in today")
	ErrAlreadyClockedOut = errors.New("already clocked out today")
)
