package admin

import (
	"context"
	"time"

	"agromart/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByRoles(ctx context.Context, roles ...domain.Role) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error
	ClearLockState(ctx context.Context, id int64) error
	List(ctx context.Context, role domain.Role, status domain.UserStatus, page, limit int) ([]domain.User, int64, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	CountByStatus(ctx context.Context, status domain.UserStatus) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountCreatedAfter(ctx context.Context, t time.Time) (int64, error)
}

type AgentRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Agent, error)
	Update(ctx context.Context, a *domain.Agent) error
	ListByApprovalStatus(ctx context.Context, status domain.ApprovalStatus, page, limit int) ([]domain.Agent, int64, error)
	CountByApprovalStatus(ctx context.Context, status domain.ApprovalStatus) (int64, error)
}

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AdminAuditLog) error
	List(ctx context.Context, page, limit int) ([]domain.AdminAuditLog, int64, error)
}
