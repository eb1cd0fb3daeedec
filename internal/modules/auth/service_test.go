package auth

import (
	"context"
	"testing"
	"time"

	"agromart/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mock user store implementing the interface
type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) RecordFailedLogin(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error {
	args := m.Called(ctx, id, attempts, lockedUntil)
	return args.Error(0)
}

func (m *mockUserStore) ResetLoginState(ctx context.Context, id int64, lastLogin time.Time) error {
	args := m.Called(ctx, id, lastLogin)
	return args.Error(0)
}

// Mock OTP store
type mockOTPStore struct {
	mock.Mock
}

func (m *mockOTPStore) Store(ctx context.Context, identifier, code string) error {
	args := m.Called(ctx, identifier, code)
	return args.Error(0)
}

func (m *mockOTPStore) Verify(ctx context.Context, identifier, submitted string) (bool, error) {
	args := m.Called(ctx, identifier, submitted)
	return args.Bool(0), args.Error(1)
}

func (m *mockOTPStore) HasLive(ctx context.Context, identifier string) (bool, error) {
	args := m.Called(ctx, identifier)
	return args.Bool(0), args.Error(1)
}

// Mock token issuer
type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) Generate(userID int64, contact, role string) (string, error) {
	args := m.Called(userID, contact, role)
	return args.String(0), args.Error(1)
}

func (m *mockTokenIssuer) GenerateRefresh(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *mockTokenIssuer) AccessTTL() time.Duration {
	return 24 * time.Hour
}

// spySender records notifications synchronously.
type spySender struct {
	smsOTP        int
	emailOTP      int
	resetOTP      int
	approved      int
	rejected      int
	lockedNotices int
}

func (s *spySender) SendSMSOTP(phoneNumber, code string)              { s.smsOTP++ }
func (s *spySender) SendEmailOTP(email, code, name string)            { s.emailOTP++ }
func (s *spySender) SendPasswordResetOTP(email, code, name string)    { s.resetOTP++ }
func (s *spySender) SendAccountApproved(email, phoneNumber, n string) { s.approved++ }
func (s *spySender) SendAccountRejected(email, name, reason string)   { s.rejected++ }
func (s *spySender) SendAccountLocked(email, phoneNumber, n string)   { s.lockedNotices++ }

func activeTrader() *domain.User {
	return &domain.User{
		ID:          10,
		PhoneNumber: "+2348012345678",
		FullName:    "Amina Yusuf",
		Role:        domain.RoleTrader,
		Status:      domain.StatusActive,
	}
}

func activeBuyer(password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return &domain.User{
		ID:           20,
		Email:        "buyer@example.com",
		PasswordHash: string(hash),
		FullName:     "Bola Ade",
		Role:         domain.RoleBuyer,
		Status:       domain.StatusActive,
	}
}

func newTestService(users *mockUserStore, otps *mockOTPStore, tokens *mockTokenIssuer, sender *spySender) *Service {
	return NewService(users, otps, tokens, sender, true)
}

func TestLogin_PhoneFlowSendsOTP(t *testing.T) {
	users := new(mockUserStore)
	otps := new(mockOTPStore)
	tokens := new(mockTokenIssuer)
	sender := &spySender{}

	trader := activeTrader()
	users.On("GetByPhone", mock.Anything, trader.PhoneNumber).Return(trader, nil)
	otps.On("Store", mock.Anything, trader.PhoneNumber, mock.Anything).Return(nil)

	svc := newTestService(users, otps, tokens, sender)
	result, err := svc.Login(context.Background(), LoginRequest{Identifier: trader.PhoneNumber})

	assert.NoError(t, err)
	assert.NotNil(t, result.Challenge)
	assert.Nil(t, result.Tokens)
	assert.True(t, result.Challenge.OTPSent)
	assert.Len(t, result.Challenge.OTP, 6) // echoed outside prod
	assert.Equal(t, 1, sender.smsOTP)
	otps.AssertExpectations(t)
}

func TestLogin_PhoneFlowRejectsNonTrader(t *testing.T) {
	users := new(mockUserStore)
	otps := new(mockOTPStore)
	tokens := new(mockTokenIssuer)

	agent := &domain.User{ID: 3, PhoneNumber: "+2348011111111", Role: domain.RoleAgent, Status: domain.StatusActive}
	users.On("GetByPhone", mock.Anything, agent.PhoneNumber).Return(agent, nil)

	svc := newTestService(users, otps, tokens, &spySender{})
	_, err := svc.Login(context.Background(), LoginRequest{Identifier: agent.PhoneNumber})

	assert.ErrorIs(t, err, ErrPhoneLoginOnly)
	otps.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_PhoneFlowUnknownNumber(t *testing.T) {
	users := new(mockUserStore)
	users.On("GetByPhone", mock.Anything, "+2348099999999").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(users, new(mockOTPStore), new(mockTokenIssuer), &spySender{})
	_, err := svc.Login(context.Background(), LoginRequest{Identifier: "+2348099999999"})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_EmailFlowSuccess(t *testing.T) {
	users := new(mockUserStore)
	otps := new(mockOTPStore)
	tokens := new(mockTokenIssuer)

	buyer := activeBuyer("correct-horse")
	users.On("GetByEmail", mock.Anything, buyer.Email).Return(buyer, nil)
	users.On("ResetLoginState", mock.Anything, buyer.ID, mock.Anything).Return(nil)
	tokens.On("Generate", buyer.ID, buyer.Email, "BUYER").Return("access-token", nil)
	tokens.On("GenerateRefresh", buyer.ID).Return("refresh-token", nil)

	svc := newTestService(users, otps, tokens, &spySender{})
	result, err := svc.Login(context.Background(), LoginRequest{Identifier: buyer.Email, Password: "correct-horse"})

	assert.NoError(t, err)
	assert.NotNil(t, result.Tokens)
	assert.Equal(t, "Bearer", result.Tokens.TokenType)
	assert.Equal(t, int64((24 * time.Hour).Seconds()), result.Tokens.ExpiresIn)
	assert.Equal(t, "access-token", result.Tokens.AccessToken)
	assert.Equal(t, buyer.ID, result.Tokens.User.ID)
	users.AssertExpectations(t)
}

func TestLogin_EmailFlowRequiresPassword(t *testing.T) {
	svc := newTestService(new(mockUserStore), new(mockOTPStore), new(mockTokenIssuer), &spySender{})
	_, err := svc.Login(context.Background(), LoginRequest{Identifier: "buyer@example.com"})
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestLogin_EmailFlowRejectsTrader(t *testing.T) {
	users := new(mockUserStore)
	trader := activeTrader()
	trader.Email = "trader@example.com"
	users.On("GetByEmail", mock.Anything, trader.Email).Return(trader, nil)

	svc := newTestService(users, new(mockOTPStore), new(mockTokenIssuer), &spySender{})
	_, err := svc.Login(context.Background(), LoginRequest{Identifier: trader.Email, Password: "whatever"})

	assert.ErrorIs(t, err, ErrTraderPassword)
}

func TestLogin_EmailFlowUnknownEmailLooksLikeBadCredentials(t *testing.T) {
	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(users, new(mockOTPStore), new(mockTokenIssuer), &spySender{})
	_, err := svc.Login(context.Background(), LoginRequest{Identifier: "ghost@example.com", Password: "pw"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPasswordIncrementsCounter(t *testing.T) {
	users := new(mockUserStore)
	buyer := activeBuyer("right")
	buyer.LoginAttempts = 2
	users.On("GetByEmail", mock.Anything, buyer.Email).Return(buyer, nil)
	users.On("RecordFailedLogin", mock.Anything, buyer.ID, 3, (*time.Time)(nil)).Return(nil)

	svc := newTestService(users, new(mockOTPStore), new(mockTokenIssuer), &spySender{})
	_, err := svc.Login(context.Background(), LoginRequest{Identifier: buyer.Email, Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertExpectations(t)
}

func TestLogin_FifthFailureLocksAccount(t *testing.T) {
	users := new(mockUserStore)
	sender := &spySender{}
	buyer := activeBuyer("right")
	buyer.LoginAttempts = 4
	users.On("GetByEmail", mock.Anything, buyer.Email).Return(buyer, nil)
	users.On("RecordFailedLogin", mock.Anything, buyer.ID, 5, mock.MatchedBy(func(lockedUntil *time.Time) bool {
		return lockedUntil != nil && lockedUntil.After(time.Now().Add(29*time.Minute))
	})).Return(nil)

	svc := newTestService(users, new(mockOTPStore), new(mockTokenIssuer), sender)
	_, err := svc.Login(context.Background(), LoginRequest{Identifier: buyer.Email, Password: "wrong"})

	assert.ErrorIs(t, err, ErrAccountLocked)
	assert.Equal(t, 1, sender.lockedNotices)
	users.AssertExpectations(t)
}

func TestLogin_LockWindowWinsOverCorrectPassword(t *testing.T) {
	users := new(mockUserStore)
	buyer := activeBuyer("right")
	lockedUntil := time.Now().Add(10 * time.Minute)
	buyer.LockedUntil = &lockedUntil
	buyer.LoginAttempts = 0 // counter already reset, window still open
	users.On("GetByEmail", mock.Anything, buyer.Email).Return(buyer, nil)

	svc := newTestService(users, new(mockOTPStore), new(mockTokenIssuer), &spySender{})
	_, err := svc.Login(context.Background(), LoginRequest{Identifier: buyer.Email, Password: "right"})

	assert.ErrorIs(t, err, ErrAccountLocked)
	users.AssertNotCalled(t, "ResetLoginState", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_PendingAgentGetsApprovalMessage(t *testing.T) {
	users := new(mockUserStore)
	agent := &domain.User{
		ID: 5, Email: "agent@example.com", PasswordHash: "x",
		Role: domain.RoleAgent, Status: domain.StatusPending,
	}
	users.On("GetByEmail", mock.Anything, agent.Email).Return(agent, nil)

	svc := newTestService(users, new(mockOTPStore), new(mockTokenIssuer), &spySender{})
	_, err := svc.Login(context.Background(), LoginRequest{Identifier: agent.Email, Password: "pw"})

	assert.ErrorIs(t, err, ErrPendingApproval)
}

func TestLogin_SuspendedAccountCarriesStatus(t *testing.T) {
	users := new(mockUserStore)
	buyer := activeBuyer("pw")
	buyer.Status = domain.StatusSuspended
	users.On("GetByEmail", mock.Anything, buyer.Email).Return(buyer, nil)

	svc := newTestService(users, new(mockOTPStore), new(mockTokenIssuer), &spySender{})
	_, err := svc.Login(context.Background(), LoginRequest{Identifier: buyer.Email, Password: "pw"})

	var statusErr *AccountStatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Account is SUSPENDED. Please contact support.", statusErr.Error())
}

func TestVerifyOTP_Success(t *testing.T) {
	users := new(mockUserStore)
	otps := new(mockOTPStore)
	tokens := new(mockTokenIssuer)

	trader := activeTrader()
	otps.On("Verify", mock.Anything, trader.PhoneNumber, "123456").Return(true, nil)
	users.On("GetByPhone", mock.Anything, trader.PhoneNumber).Return(trader, nil)
	users.On("ResetLoginState", mock.Anything, trader.ID, mock.Anything).Return(nil)
	tokens.On("Generate", trader.ID, trader.PhoneNumber, "TRADER").Return("access", nil)
	tokens.On("GenerateRefresh", trader.ID).Return("refresh", nil)

	svc := newTestService(users, otps, tokens, &spySender{})
	resp, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Identifier: trader.PhoneNumber, OTP: "123456"})

	assert.NoError(t, err)
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "TRADER", resp.User.Role)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	otps := new(mockOTPStore)
	otps.On("Verify", mock.Anything, "+2348012345678", "000000").Return(false, nil)

	svc := newTestService(new(mockUserStore), otps, new(mockTokenIssuer), &spySender{})
	_, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Identifier: "+2348012345678", OTP: "000000"})

	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTP_RechecksStatusAtVerifyTime(t *testing.T) {
	// Account suspended between OTP send and verify must not get tokens.
	users := new(mockUserStore)
	otps := new(mockOTPStore)

	trader := activeTrader()
	trader.Status = domain.StatusSuspended
	otps.On("Verify", mock.Anything, trader.PhoneNumber, "123456").Return(true, nil)
	users.On("GetByPhone", mock.Anything, trader.PhoneNumber).Return(trader, nil)

	svc := newTestService(users, otps, new(mockTokenIssuer), &spySender{})
	_, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Identifier: trader.PhoneNumber, OTP: "123456"})

	var statusErr *AccountStatusError
	assert.ErrorAs(t, err, &statusErr)
	users.AssertNotCalled(t, "ResetLoginState", mock.Anything, mock.Anything, mock.Anything)
}

func TestResendOTP_RefusedWhileLive(t *testing.T) {
	users := new(mockUserStore)
	otps := new(mockOTPStore)

	trader := activeTrader()
	users.On("GetByPhone", mock.Anything, trader.PhoneNumber).Return(trader, nil)
	otps.On("HasLive", mock.Anything, trader.PhoneNumber).Return(true, nil)

	svc := newTestService(users, otps, new(mockTokenIssuer), &spySender{})
	_, err := svc.ResendOTP(context.Background(), ResendOTPRequest{Identifier: trader.PhoneNumber})

	assert.ErrorIs(t, err, ErrOTPAlreadySent)
	otps.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
}

func TestResendOTP_IssuesFreshCode(t *testing.T) {
	users := new(mockUserStore)
	otps := new(mockOTPStore)
	sender := &spySender{}

	trader := activeTrader()
	users.On("GetByPhone", mock.Anything, trader.PhoneNumber).Return(trader, nil)
	otps.On("HasLive", mock.Anything, trader.PhoneNumber).Return(false, nil)
	otps.On("Store", mock.Anything, trader.PhoneNumber, mock.Anything).Return(nil)

	svc := newTestService(users, otps, new(mockTokenIssuer), sender)
	challenge, err := svc.ResendOTP(context.Background(), ResendOTPRequest{Identifier: trader.PhoneNumber})

	assert.NoError(t, err)
	assert.True(t, challenge.OTPSent)
	assert.Equal(t, 1, sender.smsOTP)
}
