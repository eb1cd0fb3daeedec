package repository

import (
	"context"

	"agromart/internal/domain"

	"gorm.io/gorm"
)

type BuyerRepository struct {
	db *gorm.DB
}

func NewBuyerRepository(db *gorm.DB) *BuyerRepository {
	return &BuyerRepository{db: db}
}

func (r *BuyerRepository) Create(ctx context.Context, b *domain.Buyer) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BuyerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Buyer, error) {
	var b domain.Buyer
	if err := r.db.WithContext(ctx).First(&b, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}
