package auth

import (
	"context"
	"time"

	"agromart/internal/domain"
)

// UserStore narrows the user repository to what the auth service uses.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	RecordFailedLogin(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error
	ResetLoginState(ctx context.Context, id int64, lastLogin time.Time) error
}

// OTPStore is the live-code ledger; codes expire on their own.
type OTPStore interface {
	Store(ctx context.Context, identifier, code string) error
	Verify(ctx context.Context, identifier, submitted string) (bool, error)
	HasLive(ctx context.Context, identifier string) (bool, error)
}

// TokenIssuer signs access and refresh tokens.
type TokenIssuer interface {
	Generate(userID int64, contact, role string) (string, error)
	GenerateRefresh(userID int64) (string, error)
	AccessTTL() time.Duration
}
