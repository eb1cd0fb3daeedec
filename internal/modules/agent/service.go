package agent

import (
	"context"
	"errors"
	"strings"
	"time"

	"agromart/internal/domain"
	"agromart/internal/modules/trader"
	"agromart/internal/notify"
	"agromart/internal/otp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mile 12 market geofence and opening hour. Attendance is only accepted
// inside the fence and after the market opens.
const (
	marketLatitude   = 6.4550
	marketLongitude  = 3.3941
	geofenceRadiusKm = 2.0
	marketOpenHour   = 10
)

// Service owns agent onboarding, on-behalf trader registration, and
// attendance tracking.
type Service struct {
	users      UserStore
	agents     AgentStore
	attendance AttendanceStore
	otps       OTPStore
	traders    TraderRegistrar
	roster     TraderLister
	notifier   notify.Sender
	exposeOTP  bool

	now func() time.Time
}

func NewService(
	users UserStore,
	agents AgentStore,
	attendance AttendanceStore,
	otps OTPStore,
	traders TraderRegistrar,
	roster TraderLister,
	notifier notify.Sender,
	exposeOTP bool,
) *Service {
	return &Service{
		users:      users,
		agents:     agents,
		attendance: attendance,
		otps:       otps,
		traders:    traders,
		roster:     roster,
		notifier:   notifier,
		exposeOTP:  exposeOTP,
		now:        time.Now,
	}
}

// Register creates the user and the agent profile in one transaction. The
// account stays PENDING for admin approval; the email OTP only proves
// mailbox ownership.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*OTPChallenge, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.PhoneNumber)

	if taken, err := s.users.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}
	if taken, err := s.users.ExistsByPhone(ctx, phone); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         domain.RoleAgent,
		Status:       domain.StatusPending,
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
	profile := &domain.Agent{
		UserID:         user.ID,
		Market:         req.Market,
		IDDocumentURL:  req.IDDocument,
		ApprovalStatus: domain.ApprovalPending,
	}
	if err := tx.Create(profile).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	code, err := otp.Generate()
	if err != nil {
		return nil, err
	}
	if err := s.otps.Store(ctx, email, code); err != nil {
		return nil, err
	}
	s.notifier.SendEmailOTP(email, code, user.FullName)

	challenge := &OTPChallenge{
		Message: "Verification OTP sent. Your account awaits admin approval.",
		Email:   email,
		OTPSent: true,
	}
	if s.exposeOTP {
		challenge.OTP = code
	}
	return challenge, nil
}

// VerifyOTP marks the email as verified. The account stays PENDING; only
// an admin approval activates it.
func (s *Service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ok, err := s.otps.Verify(ctx, email, req.OTP)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	profile, err := s.agents.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	profile.EmailVerified = true
	if err := s.agents.Update(ctx, profile); err != nil {
		return nil, err
	}

	p := NewProfile(user, profile)
	return &p, nil
}

// Get returns the joined profile for any agent user ID.
func (s *Service) Get(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	if user.Role != domain.RoleAgent {
		return nil, ErrAgentNotFound
	}
	profile, err := s.agents.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	p := NewProfile(user, profile)
	return &p, nil
}

// RegisterTrader onboards a trader on the agent's behalf. Only approved,
// active agents may do this; the trader still verifies their own phone.
func (s *Service) RegisterTrader(ctx context.Context, agentUserID int64, req trader.RegisterRequest) (*trader.OTPChallenge, error) {
	if err := s.requireApproved(ctx, agentUserID); err != nil {
		return nil, err
	}
	return s.traders.RegisterByAgent(ctx, req, agentUserID)
}

// ListTraders returns the agent's onboarding roster.
func (s *Service) ListTraders(ctx context.Context, agentUserID int64) ([]domain.Trader, error) {
	return s.roster.ListByAgent(ctx, agentUserID)
}

func (s *Service) requireApproved(ctx context.Context, agentUserID int64) error {
	user, err := s.users.GetByID(ctx, agentUserID)
	if err != nil {
		return err
	}
	profile, err := s.agents.GetByUserID(ctx, agentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAgentNotFound
		}
		return err
	}
	if profile.ApprovalStatus != domain.ApprovalApproved || user.Status != domain.StatusActive {
		return ErrNotApproved
	}
	return nil
}
