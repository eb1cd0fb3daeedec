package agent

import (
	"context"

	"agromart/internal/domain"
	"agromart/internal/modules/trader"

	"gorm.io/gorm"
)

// UserStore narrows the user repository. DB() is exposed so registration
// can create the user and the agent profile in one transaction.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	DB() *gorm.DB
}

type AgentStore interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Agent, error)
	Update(ctx context.Context, a *domain.Agent) error
}

type AttendanceStore interface {
	Create(ctx context.Context, a *domain.AgentAttendance) error
	Update(ctx context.Context, a *domain.AgentAttendance) error
	GetByAgentAndDate(ctx context.Context, agentUserID int64, date string) (*domain.AgentAttendance, error)
	ListByAgent(ctx context.Context, agentUserID int64, limit int) ([]domain.AgentAttendance, error)
}

type OTPStore interface {
	Store(ctx context.Context, identifier, code string) error
	Verify(ctx context.Context, identifier, submitted string) (bool, error)
	HasLive(ctx context.Context, identifier string) (bool, error)
}

// TraderRegistrar lets an approved agent onboard traders on their behalf.
type TraderRegistrar interface {
	RegisterByAgent(ctx context.Context, req trader.RegisterRequest, agentUserID int64) (*trader.OTPChallenge, error)
}

// TraderLister exposes the agent's onboarding roster.
type TraderLister interface {
	ListByAgent(ctx context.Context, agentUserID int64) ([]domain.Trader, error)
}
