package repository

import (
	"context"
	"strings"
	"time"

	"agromart/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", normalizeEmail(email)).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "phone_number = ?", strings.TrimSpace(phone)).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", normalizeEmail(email)).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("phone_number = ?", strings.TrimSpace(phone)).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByRoles(ctx context.Context, roles ...domain.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("role IN ?", roles).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// RecordFailedLogin persists only the attempt counter and, once the limit
// is hit, the lock window. A targeted update keeps the write narrow; the
// read-modify-write is still not serialized per identity (see DESIGN.md).
func (r *UserRepository) RecordFailedLogin(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error {
	updates := map[string]any{"login_attempts": attempts}
	if lockedUntil != nil {
		updates["locked_until"] = *lockedUntil
	}
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error
}

// ResetLoginState clears the failure counter and lock after a successful
// authentication and stamps last_login.
func (r *UserRepository) ResetLoginState(ctx context.Context, id int64, lastLogin time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
		"login_attempts": 0,
		"locked_until":   nil,
		"last_login":     lastLogin,
	}).Error
}

// ClearLockState lifts a lockout without touching last_login, used when a
// password reset proves ownership of the account.
func (r *UserRepository) ClearLockState(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
		"login_attempts": 0,
		"locked_until":   nil,
	}).Error
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *UserRepository) UpdatePhoneNumber(ctx context.Context, id int64, phone string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Update("phone_number", strings.TrimSpace(phone)).Error
}

func (r *UserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountByStatus(ctx context.Context, status domain.UserStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountCreatedAfter(ctx context.Context, t time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("created_at > ?", t).Count(&count).Error
	return count, err
}

// List filters by role and/or status; zero values mean "any".
func (r *UserRepository) List(ctx context.Context, role domain.Role, status domain.UserStatus, page, limit int) ([]domain.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&domain.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	if err := q.Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) DB() *gorm.DB { return r.db }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
