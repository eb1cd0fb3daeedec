package trader

import (
	"context"
	"time"

	"agromart/internal/domain"

	"gorm.io/gorm"
)

// UserStore narrows the user repository. DB() is exposed so registration
// can create the user and the trader profile in one transaction.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error
	UpdatePhoneNumber(ctx context.Context, id int64, phone string) error
	DB() *gorm.DB
}

type TraderStore interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Trader, error)
	Update(ctx context.Context, t *domain.Trader) error
	MarkVerified(ctx context.Context, userID int64) error
}

type OTPStore interface {
	Store(ctx context.Context, identifier, code string) error
	Verify(ctx context.Context, identifier, submitted string) (bool, error)
	HasLive(ctx context.Context, identifier string) (bool, error)
}

type TokenIssuer interface {
	Generate(userID int64, contact, role string) (string, error)
	GenerateRefresh(userID int64) (string, error)
	AccessTTL() time.Duration
}
