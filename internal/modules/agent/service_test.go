package agent

import (
	"context"
	"testing"
	"time"

	"agromart/internal/database"
	"agromart/internal/domain"
	"agromart/internal/modules/trader"
	"agromart/internal/otp"
	"agromart/internal/pkg/token"
	"agromart/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopSender struct{}

func (noopSender) SendSMSOTP(string, string)                   {}
func (noopSender) SendEmailOTP(string, string, string)         {}
func (noopSender) SendPasswordResetOTP(string, string, string) {}
func (noopSender) SendAccountApproved(string, string, string)  {}
func (noopSender) SendAccountRejected(string, string, string)  {}
func (noopSender) SendAccountLocked(string, string, string)    {}

type fixture struct {
	svc        *Service
	users      *repository.UserRepository
	agents     *repository.AgentRepository
	attendance *repository.AttendanceRepository
	traders    *repository.TraderRepository
	redis      *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	ledger := otp.NewLedger(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 5*time.Minute)

	users := repository.NewUserRepository(db)
	agents := repository.NewAgentRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	traders := repository.NewTraderRepository(db)
	tokens := token.New("test-secret", time.Hour, 7*24*time.Hour)

	traderSvc := trader.NewService(users, traders, ledger, tokens, noopSender{}, true)

	return &fixture{
		svc:        NewService(users, agents, attendance, ledger, traderSvc, traders, noopSender{}, true),
		users:      users,
		agents:     agents,
		attendance: attendance,
		traders:    traders,
		redis:      mr,
	}
}

func registerAgent(t *testing.T, f *fixture) *domain.User {
	t.Helper()
	_, err := f.svc.Register(context.Background(), RegisterRequest{
		FullName:    "Chidi Okeke",
		Email:       "chidi@example.com",
		PhoneNumber: "+2348033334444",
		Password:    "agent-password",
		Market:      "Mile 12",
	})
	require.NoError(t, err)

	user, err := f.users.GetByEmail(context.Background(), "chidi@example.com")
	require.NoError(t, err)
	return user
}

func approveAgent(t *testing.T, f *fixture, userID int64) {
	t.Helper()
	ctx := context.Background()

	profile, err := f.agents.GetByUserID(ctx, userID)
	require.NoError(t, err)
	profile.ApprovalStatus = domain.ApprovalApproved
	require.NoError(t, f.agents.Update(ctx, profile))
	require.NoError(t, f.users.UpdateStatus(ctx, userID, domain.StatusActive))
}

func TestRegister_CreatesPendingAgent(t *testing.T) {
	f := newFixture(t)
	user := registerAgent(t, f)

	assert.Equal(t, domain.RoleAgent, user.Role)
	assert.Equal(t, domain.StatusPending, user.Status)
	assert.NotEmpty(t, user.PasswordHash)

	profile, err := f.agents.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalPending, profile.ApprovalStatus)
	assert.False(t, profile.EmailVerified)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	registerAgent(t, f)

	_, err := f.svc.Register(context.Background(), RegisterRequest{
		FullName:    "Someone Else",
		Email:       "chidi@example.com",
		PhoneNumber: "+2348055556666",
		Password:    "other-password",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestVerifyOTP_ConfirmsEmailButStaysPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	challenge, err := f.svc.Register(ctx, RegisterRequest{
		FullName:    "Chidi Okeke",
		Email:       "chidi@example.com",
		PhoneNumber: "+2348033334444",
		Password:    "agent-password",
	})
	require.NoError(t, err)

	profile, err := f.svc.VerifyOTP(ctx, VerifyOTPRequest{Email: "chidi@example.com", OTP: challenge.OTP})
	require.NoError(t, err)
	assert.True(t, profile.EmailVerified)
	assert.Equal(t, string(domain.ApprovalPending), profile.ApprovalStatus)
	assert.Equal(t, string(domain.StatusPending), profile.Status)
}

func TestRegisterTrader_RequiresApproval(t *testing.T) {
	f := newFixture(t)
	user := registerAgent(t, f)

	_, err := f.svc.RegisterTrader(context.Background(), user.ID, trader.RegisterRequest{
		PhoneNumber: "+2348012345678",
		FullName:    "Amina Yusuf",
	})
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestRegisterTrader_ApprovedAgentTracksRoster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := registerAgent(t, f)
	approveAgent(t, f, user.ID)

	challenge, err := f.svc.RegisterTrader(ctx, user.ID, trader.RegisterRequest{
		PhoneNumber: "+2348012345678",
		FullName:    "Amina Yusuf",
		Market:      "Mile 12",
	})
	require.NoError(t, err)
	assert.True(t, challenge.OTPSent)

	roster, err := f.svc.ListTraders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	require.NotNil(t, roster[0].RegisteredByAgentID)
	assert.Equal(t, user.ID, *roster[0].RegisteredByAgentID)
}

func TestGet_RejectsNonAgentUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	buyer := &domain.User{Email: "buyer@example.com", FullName: "Bola Ade", Role: domain.RoleBuyer, Status: domain.StatusActive}
	require.NoError(t, f.users.Create(ctx, buyer))

	_, err := f.svc.Get(ctx, buyer.ID)
	assert.ErrorIs(t, err, ErrAgentNotFound)
}
