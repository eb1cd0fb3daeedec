package admin

import "errors"

var (
	ErrAdminsExist        = errors.New("admin accounts already exist")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrAgentNotFound      = errors.New("agent profile not found")
	ErrReasonRequired     = errors.New("reason is required")
	ErrAlreadyProcessed   = errors.New("application already processed")
	ErrSuperAdminRequired = errors.New("only a super admin can modify admin accounts")
)
