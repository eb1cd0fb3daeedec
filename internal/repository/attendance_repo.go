package repository

import (
	"context"

	"agromart/internal/domain"

	"gorm.io/gorm"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(ctx context.Context, a *domain.AgentAttendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AttendanceRepository) Update(ctx context.Context, a *domain.AgentAttendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// GetByAgentAndDate returns the single record for an agent on a given day,
// or gorm.ErrRecordNotFound when the agent has not clocked in.
func (r *AttendanceRepository) GetByAgentAndDate(ctx context.Context, agentUserID int64, date string) (*domain.AgentAttendance, error) {
	var a domain.AgentAttendance
	if err := r.db.WithContext(ctx).
		First(&a, "agent_user_id = ? AND date = ?", agentUserID, date).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttendanceRepository) ListByAgent(ctx context.Context, agentUserID int64, limit int) ([]domain.AgentAttendance, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var records []domain.AgentAttendance
	err := r.db.WithContext(ctx).
		Where("agent_user_id = ?", agentUserID).
		Order("date DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
