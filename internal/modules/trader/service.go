package trader

import (
	"context"
	"errors"
	"strings"

	"agromart/internal/domain"
	"agromart/internal/notify"
	"agromart/internal/otp"

	"gorm.io/gorm"
)

// Service owns trader self-registration and profile management. Traders
// are phone-first: no password is ever stored for them.
type Service struct {
	users     UserStore
	traders   TraderStore
	otps      OTPStore
	tokens    TokenIssuer
	notifier  notify.Sender
	exposeOTP bool
}

func NewService(users UserStore, traders TraderStore, otps OTPStore, tokens TokenIssuer, notifier notify.Sender, exposeOTP bool) *Service {
	return &Service{
		users:     users,
		traders:   traders,
		otps:      otps,
		tokens:    tokens,
		notifier:  notifier,
		exposeOTP: exposeOTP,
	}
}

// Register creates the user and the trader profile in one transaction and
// sends the activation OTP. The account stays PENDING until verified.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*OTPChallenge, error) {
	return s.register(ctx, req, nil)
}

// RegisterByAgent is Register with the sponsoring agent recorded on the
// profile, so the agent's roster can be listed later.
func (s *Service) RegisterByAgent(ctx context.Context, req RegisterRequest, agentUserID int64) (*OTPChallenge, error) {
	return s.register(ctx, req, &agentUserID)
}

func (s *Service) register(ctx context.Context, req RegisterRequest, agentUserID *int64) (*OTPChallenge, error) {
	phone := strings.TrimSpace(req.PhoneNumber)

	taken, err := s.users.ExistsByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPhoneTaken
	}

	user := &domain.User{
		PhoneNumber: phone,
		FullName:    req.FullName,
		Role:        domain.RoleTrader,
		Status:      domain.StatusPending,
	}

	tx := s.users.DB().WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(user).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	profile := &domain.Trader{
		UserID:              user.ID,
		StallNumber:         req.StallNumber,
		Market:              req.Market,
		ProduceTypes:        req.ProduceTypes,
		RegisteredByAgentID: agentUserID,
	}
	if err := tx.Create(profile).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.issueOTP(ctx, phone)
}

// VerifyOTP activates the account and marks the profile verified, then
// logs the trader in.
func (s *Service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*TokenResponse, error) {
	phone := strings.TrimSpace(req.PhoneNumber)

	ok, err := s.otps.Verify(ctx, phone, req.OTP)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := validateStatus(user); err != nil {
		return nil, err
	}

	if user.Status == domain.StatusPending {
		if err := s.users.UpdateStatus(ctx, user.ID, domain.StatusActive); err != nil {
			return nil, err
		}
		user.Status = domain.StatusActive
	}
	if err := s.traders.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}

	profile, err := s.traders.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	profile.Verified = true

	return s.issueTokens(user, profile)
}

// ResendOTP refuses once the trader is verified or while a code is live.
func (s *Service) ResendOTP(ctx context.Context, req ResendOTPRequest) (*OTPChallenge, error) {
	phone := strings.TrimSpace(req.PhoneNumber)

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := validateStatus(user); err != nil {
		return nil, err
	}

	profile, err := s.traders.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTraderNotFound
		}
		return nil, err
	}
	if user.Status == domain.StatusActive && profile.Verified {
		return nil, ErrAlreadyVerified
	}

	live, err := s.otps.HasLive(ctx, phone)
	if err != nil {
		return nil, err
	}
	if live {
		return nil, ErrOTPAlreadySent
	}

	return s.issueOTP(ctx, phone)
}

// Get returns the joined profile for any trader user ID.
func (s *Service) Get(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTraderNotFound
		}
		return nil, err
	}
	if user.Role != domain.RoleTrader {
		return nil, ErrTraderNotFound
	}

	profile, err := s.traders.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTraderNotFound
		}
		return nil, err
	}

	p := NewProfile(user, profile)
	return &p, nil
}

// Update applies profile edits, bank details included.
func (s *Service) Update(ctx context.Context, userID int64, req UpdateRequest) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTraderNotFound
		}
		return nil, err
	}
	profile, err := s.traders.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTraderNotFound
		}
		return nil, err
	}

	if req.FullName != "" {
		user.FullName = req.FullName
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	if req.StallNumber != "" {
		profile.StallNumber = req.StallNumber
	}
	if req.Market != "" {
		profile.Market = req.Market
	}
	if req.ProduceTypes != "" {
		profile.ProduceTypes = req.ProduceTypes
	}
	if req.BankName != "" {
		profile.BankName = req.BankName
	}
	if req.BankAccountNumber != "" {
		profile.BankAccountNumber = req.BankAccountNumber
	}
	if req.AccountName != "" {
		profile.AccountName = req.AccountName
	}

	if err := s.traders.Update(ctx, profile); err != nil {
		return nil, err
	}

	p := NewProfile(user, profile)
	return &p, nil
}

// RequestPhoneChange sends an OTP to the new number; the switch happens
// only after ConfirmPhoneChange proves the trader controls it.
func (s *Service) RequestPhoneChange(ctx context.Context, userID int64, req ChangePhoneRequest) (*OTPChallenge, error) {
	newPhone := strings.TrimSpace(req.NewPhoneNumber)

	taken, err := s.users.ExistsByPhone(ctx, newPhone)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPhoneTaken
	}

	live, err := s.otps.HasLive(ctx, newPhone)
	if err != nil {
		return nil, err
	}
	if live {
		return nil, ErrOTPAlreadySent
	}

	return s.issueOTP(ctx, newPhone)
}

func (s *Service) ConfirmPhoneChange(ctx context.Context, userID int64, req ConfirmPhoneChangeRequest) error {
	newPhone := strings.TrimSpace(req.NewPhoneNumber)

	ok, err := s.otps.Verify(ctx, newPhone, req.OTP)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}

	return s.users.UpdatePhoneNumber(ctx, userID, newPhone)
}

// Deactivate is the trader's self-service exit: the account is suspended,
// not deleted, so an admin can reactivate it later.
func (s *Service) Deactivate(ctx context.Context, userID int64) error {
	return s.users.UpdateStatus(ctx, userID, domain.StatusSuspended)
}

// validateStatus guards the OTP flow. PENDING is allowed because verifying
// the registration OTP is how a pending account activates; a suspended or
// banned trader must not mint tokens or receive fresh codes.
func validateStatus(user *domain.User) error {
	if user.Status == domain.StatusPending || user.Status == domain.StatusActive {
		return nil
	}
	return &AccountStatusError{Status: user.Status}
}

func (s *Service) issueOTP(ctx context.Context, phone string) (*OTPChallenge, error) {
	code, err := otp.Generate()
	if err != nil {
		return nil, err
	}
	if err := s.otps.Store(ctx, phone, code); err != nil {
		return nil, err
	}

	s.notifier.SendSMSOTP(phone, code)

	challenge := &OTPChallenge{
		Message:     "OTP sent successfully",
		PhoneNumber: phone,
		OTPSent:     true,
	}
	if s.exposeOTP {
		challenge.OTP = code
	}
	return challenge, nil
}

func (s *Service) issueTokens(user *domain.User, profile *domain.Trader) (*TokenResponse, error) {
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
		Profile:      NewProfile(user, profile),
	}, nil
}
