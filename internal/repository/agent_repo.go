package repository

import (
	"context"

	"agromart/internal/domain"

	"gorm.io/gorm"
)

type AgentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) Create(ctx context.Context, a *domain.Agent) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AgentRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Agent, error) {
	var a domain.Agent
	if err := r.db.WithContext(ctx).First(&a, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AgentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	var a domain.Agent
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AgentRepository) Update(ctx context.Context, a *domain.Agent) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AgentRepository) ListByApprovalStatus(ctx context.Context, status domain.ApprovalStatus, page, limit int) ([]domain.Agent, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&domain.Agent{}).Where("approval_status = ?", status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var agents []domain.Agent
	if err := q.Order("created_at ASC, id ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&agents).Error; err != nil {
		return nil, 0, err
	}
	return agents, total, nil
}

func (r *AgentRepository) CountByApprovalStatus(ctx context.Context, status domain.ApprovalStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Agent{}).
		Where("approval_status = ?", status).Count(&count).Error
	return count, err
}
