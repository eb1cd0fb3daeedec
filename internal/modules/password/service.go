package password

import (
	"context"
	"errors"

	"agromart/internal/domain"
	"agromart/internal/notify"
	"agromart/internal/otp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service covers change, forgot, and reset. Traders never pass through
// here: their accounts carry no password at all.
type Service struct {
	users    UserStore
	otps     OTPStore
	notifier notify.Sender
}

func NewService(users UserStore, otps OTPStore, notifier notify.Sender) *Service {
	return &Service{users: users, otps: otps, notifier: notifier}
}

// Change verifies the current password before accepting the new one.
func (s *Service) Change(ctx context.Context, userID int64, req ChangeRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.PasswordHash == "" {
		return ErrOTPOnlyAccount
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrCurrentIncorrect
	}
	if req.NewPassword == req.CurrentPassword {
		return ErrSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, user.ID, string(hash))
}

// Forgot sends a reset OTP to the account's email.
func (s *Service) Forgot(ctx context.Context, req ForgotRequest) error {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Role == domain.RoleTrader {
		return ErrTraderNotAllowed
	}

	live, err := s.otps.HasLive(ctx, user.Email)
	if err != nil {
		return err
	}
	if live {
		return ErrOTPAlreadySent
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}
	if err := s.otps.Store(ctx, user.Email, code); err != nil {
		return err
	}

	s.notifier.SendPasswordResetOTP(user.Email, code, user.FullName)
	return nil
}

// Reset consumes the OTP, replaces the password, and lifts any lockout so
// the proven owner is not kept out by earlier failed attempts.
func (s *Service) Reset(ctx context.Context, req ResetRequest) error {
	ok, err := s.otps.Verify(ctx, req.Email, req.OTP)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	return s.users.ClearLockState(ctx, user.ID)
}
