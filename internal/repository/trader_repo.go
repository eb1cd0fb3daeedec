package repository

import (
	"context"

	"agromart/internal/domain"

	"gorm.io/gorm"
)

type TraderRepository struct {
	db *gorm.DB
}

func NewTraderRepository(db *gorm.DB) *TraderRepository {
	return &TraderRepository{db: db}
}

func (r *TraderRepository) Create(ctx context.Context, t *domain.Trader) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TraderRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Trader, error) {
	var t domain.Trader
	if err := r.db.WithContext(ctx).First(&t, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TraderRepository) Update(ctx context.Context, t *domain.Trader) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TraderRepository) MarkVerified(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&domain.Trader{}).
		Where("user_id = ?", userID).Update("verified", true).Error
}

func (r *TraderRepository) SetRegisteredBy(ctx context.Context, traderUserID, agentUserID int64) error {
	return r.db.WithContext(ctx).Model(&domain.Trader{}).
		Where("user_id = ?", traderUserID).
		Update("registered_by_agent_id", agentUserID).Error
}

func (r *TraderRepository) ListByAgent(ctx context.Context, agentUserID int64) ([]domain.Trader, error) {
	var traders []domain.Trader
	err := r.db.WithContext(ctx).
		Where("registered_by_agent_id = ?", agentUserID).
		Order("created_at DESC").
		Find(&traders).Error
	return traders, err
}

func (r *TraderRepository) CountByAgent(ctx context.Context, agentUserID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Trader{}).
		Where("registered_by_agent_id = ?", agentUserID).Count(&count).Error
	return count, err
}
