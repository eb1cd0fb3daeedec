package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"agromart/internal/domain"
	"agromart/internal/notify"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Audit action names.
const (
	actionSeed         = "SEED_SUPER_ADMIN"
	actionCreateAdmin  = "CREATE_ADMIN"
	actionApproveAgent = "APPROVE_AGENT"
	actionRejectAgent  = "REJECT_AGENT"
	actionSuspendUser  = "SUSPEND_USER"
	actionBanUser      = "BAN_USER"
	actionReactivate   = "REACTIVATE_USER"
)

type Service struct {
	users    UserRepository
	agents   AgentRepository
	audit    AuditRepository
	notifier notify.Sender
}

func NewService(users UserRepository, agents AgentRepository, audit AuditRepository, notifier notify.Sender) *Service {
	return &Service{
		users:    users,
		agents:   agents,
		audit:    audit,
		notifier: notifier,
	}
}

// Seed bootstraps the first SUPER_ADMIN. It only works on an empty
// installation: once any admin exists the endpoint is dead.
func (s *Service) Seed(ctx context.Context, req SeedRequest) (*domain.User, error) {
	exists, err := s.users.ExistsByRoles(ctx, domain.RoleAdmin, domain.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAdminsExist
	}

	user, err := s.createAdminUser(ctx, req.FullName, req.Email, req.Password, domain.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}

	s.record(ctx, user, actionSeed, user, "", "")
	return user, nil
}

// CreateAdmin adds an ADMIN account. Route policy restricts this to
// SUPER_ADMIN; the actor is still checked here so the rule cannot be
// bypassed by a miswired route.
func (s *Service) CreateAdmin(ctx context.Context, actorID int64, req CreateAdminRequest) (*domain.User, error) {
	actor, err := s.requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleSuperAdmin {
		return nil, ErrSuperAdminRequired
	}

	user, err := s.createAdminUser(ctx, req.FullName, req.Email, req.Password, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, actionCreateAdmin, user, "", "")
	return user, nil
}

func (s *Service) createAdminUser(ctx context.Context, fullName, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		Status:       domain.StatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// PendingAgents lists agent applications awaiting review, oldest first.
func (s *Service) PendingAgents(ctx context.Context, page, limit int) ([]domain.Agent, int64, error) {
	return s.agents.ListByApprovalStatus(ctx, domain.ApprovalPending, page, limit)
}

// AgentDetail returns one application with its identity record.
func (s *Service) AgentDetail(ctx context.Context, agentUserID int64) (*domain.User, *domain.Agent, error) {
	user, err := s.users.GetByID(ctx, agentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	profile, err := s.agents.GetByUserID(ctx, agentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAgentNotFound
		}
		return nil, nil, err
	}
	user.PasswordHash = ""
	return user, profile, nil
}

// ApproveAgent activates the account and stamps the approval. The agent is
// notified asynchronously.
func (s *Service) ApproveAgent(ctx context.Context, actorID, agentUserID int64, notes string) (*domain.Agent, error) {
	actor, err := s.requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	user, profile, err := s.AgentDetail(ctx, agentUserID)
	if err != nil {
		return nil, err
	}
	if profile.ApprovalStatus != domain.ApprovalPending {
		return nil, ErrAlreadyProcessed
	}

	now := time.Now()
	profile.ApprovalStatus = domain.ApprovalApproved
	profile.ApprovedBy = &actorID
	profile.ApprovedAt = &now
	profile.RejectionReason = ""
	if err := s.agents.Update(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.users.UpdateStatus(ctx, agentUserID, domain.StatusActive); err != nil {
		return nil, err
	}

	s.notifier.SendAccountApproved(user.Email, user.PhoneNumber, user.FullName)
	s.record(ctx, actor, actionApproveAgent, user, "", notes)
	return profile, nil
}

// RejectAgent records the reason. The user account stays PENDING so a
// corrected application can be approved later.
func (s *Service) RejectAgent(ctx context.Context, actorID, agentUserID int64, reason string) (*domain.Agent, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	actor, err := s.requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	user, profile, err := s.AgentDetail(ctx, agentUserID)
	if err != nil {
		return nil, err
	}
	if profile.ApprovalStatus != domain.ApprovalPending {
		return nil, ErrAlreadyProcessed
	}

	profile.ApprovalStatus = domain.ApprovalRejected
	profile.RejectionReason = reason
	if err := s.agents.Update(ctx, profile); err != nil {
		return nil, err
	}

	s.notifier.SendAccountRejected(user.Email, user.FullName, reason)
	s.record(ctx, actor, actionRejectAgent, user, reason, "")
	return profile, nil
}

// Suspend, Ban, and Reactivate share one rule: admin accounts may only be
// touched by a SUPER_ADMIN.

func (s *Service) SuspendUser(ctx context.Context, actorID, targetID int64, reason string) error {
	return s.moderate(ctx, actorID, targetID, domain.StatusSuspended, actionSuspendUser, reason)
}

func (s *Service) BanUser(ctx context.Context, actorID, targetID int64, reason string) error {
	return s.moderate(ctx, actorID, targetID, domain.StatusBanned, actionBanUser, reason)
}

func (s *Service) ReactivateUser(ctx context.Context, actorID, targetID int64, reason string) error {
	if err := s.moderate(ctx, actorID, targetID, domain.StatusActive, actionReactivate, reason); err != nil {
		return err
	}
	// A reactivated account should not stay locked out.
	return s.users.ClearLockState(ctx, targetID)
}

func (s *Service) moderate(ctx context.Context, actorID, targetID int64, status domain.UserStatus, action, reason string) error {
	actor, err := s.requireActor(ctx, actorID)
	if err != nil {
		return err
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if target.Role.IsAdmin() && actor.Role != domain.RoleSuperAdmin {
		return ErrSuperAdminRequired
	}

	if err := s.users.UpdateStatus(ctx, targetID, status); err != nil {
		return err
	}

	s.record(ctx, actor, action, target, reason, "")
	return nil
}

// Users lists accounts with optional role/status filters, newest first.
// Password hashes are blanked before the rows leave the service.
func (s *Service) Users(ctx context.Context, role domain.Role, status domain.UserStatus, page, limit int) ([]domain.User, int64, error) {
	users, total, err := s.users.List(ctx, role, status, page, limit)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, total, nil
}

// Dashboard aggregates the counts the admin landing page shows.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		UsersByRole:   make(map[string]int64),
		UsersByStatus: make(map[string]int64),
	}

	total, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalUsers = total

	for _, role := range []domain.Role{domain.RoleTrader, domain.RoleAgent, domain.RoleBuyer, domain.RoleAdmin, domain.RoleSuperAdmin} {
		n, err := s.users.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		stats.UsersByRole[string(role)] = n
	}
	for _, status := range []domain.UserStatus{domain.StatusPending, domain.StatusActive, domain.StatusSuspended, domain.StatusBanned} {
		n, err := s.users.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats.UsersByStatus[string(status)] = n
	}

	pending, err := s.agents.CountByApprovalStatus(ctx, domain.ApprovalPending)
	if err != nil {
		return nil, err
	}
	stats.PendingAgents = pending

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.Registrations.Today, err = s.users.CountCreatedAfter(ctx, dayStart); err != nil {
		return nil, err
	}
	if stats.Registrations.ThisWeek, err = s.users.CountCreatedAfter(ctx, now.AddDate(0, 0, -7)); err != nil {
		return nil, err
	}
	if stats.Registrations.ThisMonth, err = s.users.CountCreatedAfter(ctx, now.AddDate(0, 0, -30)); err != nil {
		return nil, err
	}

	return stats, nil
}

// AuditLogs lists recorded admin actions, newest first.
func (s *Service) AuditLogs(ctx context.Context, page, limit int) ([]domain.AdminAuditLog, int64, error) {
	return s.audit.List(ctx, page, limit)
}

func (s *Service) requireActor(ctx context.Context, actorID int64) (*domain.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return actor, nil
}

// record appends to the audit trail. A failed write is logged by the
// repository layer but never fails the admin action itself.
func (s *Service) record(ctx context.Context, actor *domain.User, action string, target *domain.User, reason, notes string) {
	_ = s.audit.Create(ctx, &domain.AdminAuditLog{
		CorrelationID: uuid.NewString(),
		AdminID:       actor.ID,
		AdminEmail:    actor.Email,
		Action:        action,
		TargetUserID:  target.ID,
		TargetContact: target.Contact(),
		Reason:        reason,
		Notes:         notes,
	})
}
