package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"agromart/internal/domain"
	"agromart/internal/notify"
	"agromart/internal/otp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 30 * time.Minute
)

// Service contains the unified login flow and the account guard.
type Service struct {
	users     UserStore
	otps      OTPStore
	tokens    TokenIssuer
	notifier  notify.Sender
	exposeOTP bool
}

func NewService(users UserStore, otps OTPStore, tokens TokenIssuer, notifier notify.Sender, exposeOTP bool) *Service {
	return &Service{
		users:     users,
		otps:      otps,
		tokens:    tokens,
		notifier:  notifier,
		exposeOTP: exposeOTP,
	}
}

// Login routes on the identifier's shape: a leading + selects the phone
// flow (traders, OTP), everything else the email flow (password).
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if strings.HasPrefix(identifier, "+") {
		return s.loginWithPhone(ctx, identifier)
	}
	return s.loginWithEmail(ctx, identifier, req.Password)
}

func (s *Service) loginWithPhone(ctx context.Context, phone string) (*LoginResult, error) {
	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Role != domain.RoleTrader {
		return nil, ErrPhoneLoginOnly
	}
	if err := s.validateStatus(user); err != nil {
		return nil, err
	}

	challenge, err := s.issueOTP(ctx, phone, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Challenge: challenge}, nil
}

func (s *Service) loginWithEmail(ctx context.Context, email, password string) (*LoginResult, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Role == domain.RoleTrader {
		return nil, ErrTraderPassword
	}
	if err := s.validateStatus(user); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, s.recordFailedAttempt(ctx, user)
	}

	if err := s.users.ResetLoginState(ctx, user.ID, time.Now()); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Tokens: tokens}, nil
}

// VerifyOTP consumes the code and, when it matches, completes the phone
// login. Account status is re-checked here: an admin action between send
// and verify must still block the login.
func (s *Service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*TokenResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)

	ok, err := s.otps.Verify(ctx, identifier, req.OTP)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	user, err := s.lookupByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if err := s.validateStatus(user); err != nil {
		return nil, err
	}

	if err := s.users.ResetLoginState(ctx, user.ID, time.Now()); err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

// ResendOTP refuses while a live code exists, then issues a fresh one.
func (s *Service) ResendOTP(ctx context.Context, req ResendOTPRequest) (*OTPChallenge, error) {
	identifier := strings.TrimSpace(req.Identifier)

	user, err := s.lookupByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if err := s.validateStatus(user); err != nil {
		return nil, err
	}

	live, err := s.otps.HasLive(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if live {
		return nil, ErrOTPAlreadySent
	}

	return s.issueOTP(ctx, identifier, user)
}

// validateStatus is the account guard. The lock window wins over every
// other check, including a counter that has since been reset.
func (s *Service) validateStatus(user *domain.User) error {
	if user.Locked(time.Now()) {
		return ErrAccountLocked
	}
	if user.Status == domain.StatusActive {
		return nil
	}
	if user.Status == domain.StatusPending && user.Role == domain.RoleAgent {
		return ErrPendingApproval
	}
	return &AccountStatusError{Status: user.Status}
}

func (s *Service) recordFailedAttempt(ctx context.Context, user *domain.User) error {
	attempts := user.LoginAttempts + 1
	var lockedUntil *time.Time
	if attempts >= maxLoginAttempts {
		t := time.Now().Add(lockoutDuration)
		lockedUntil = &t
	}

	if err := s.users.RecordFailedLogin(ctx, user.ID, attempts, lockedUntil); err != nil {
		return err
	}

	if lockedUntil != nil {
		s.notifier.SendAccountLocked(user.Email, user.PhoneNumber, user.FullName)
		return ErrAccountLocked
	}
	return ErrInvalidCredentials
}

func (s *Service) issueOTP(ctx context.Context, identifier string, user *domain.User) (*OTPChallenge, error) {
	code, err := otp.Generate()
	if err != nil {
		return nil, err
	}
	if err := s.otps.Store(ctx, identifier, code); err != nil {
		return nil, err
	}

	if strings.HasPrefix(identifier, "+") {
		s.notifier.SendSMSOTP(identifier, code)
	} else {
		s.notifier.SendEmailOTP(identifier, code, user.FullName)
	}

	challenge := &OTPChallenge{
		Message:    "OTP sent successfully",
		Identifier: identifier,
		OTPSent:    true,
	}
	if s.exposeOTP {
		challenge.OTP = code
	}
	return challenge, nil
}

func (s *Service) issueTokens(user *domain.User) (*TokenResponse, error) {
	access, err := s.tokens.Generate(user.ID, user.Contact(), string(user.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		User:         NewUserPublic(user),
	}, nil
}

func (s *Service) lookupByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	if strings.HasPrefix(identifier, "+") {
		user, err = s.users.GetByPhone(ctx, identifier)
	} else {
		user, err = s.users.GetByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
