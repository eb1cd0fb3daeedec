package password

import (
	"context"

	"agromart/internal/domain"
)

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	ClearLockState(ctx context.Context, id int64) error
}

type OTPStore interface {
	Store(ctx context.Context, identifier, code string) error
	Verify(ctx context.Context, identifier, submitted string) (bool, error)
	HasLive(ctx context.Context, identifier string) (bool, error)
}
