package buyer

import (
	"context"
	"errors"
	"strings"
	"time"

	"agromart/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

type RegisterRequest struct {
	FullName        string `json:"full_name" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	CompanyName     string `json:"company_name"`
	DeliveryAddress string `json:"delivery_address"`
}

type RegisterResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
	User         struct {
		ID       int64  `json:"id"`
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Role     string `json:"role"`
		Status   string `json:"status"`
	} `json:"user"`
}

type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	DB() *gorm.DB
}

type TokenIssuer interface {
	Generate(userID int64, contact, role string) (string, error)
	GenerateRefresh(userID int64) (string, error)
	AccessTTL() time.Duration
}

// Service registers buyers. Unlike traders and agents, buyers are activated
// immediately: no OTP, no approval queue.
type Service struct {
	users  UserStore
	tokens TokenIssuer
}

func NewService(users UserStore, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         domain.RoleBuyer,
		Status:       domain.StatusActive,
	}

	tx := s.users.DB().WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(user).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	profile := &domain.Buyer{
		UserID:          user.ID,
		CompanyName:     req.CompanyName,
		DeliveryAddress: req.DeliveryAddress,
	}
	if err := tx.Create(profile).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	access, err := s.tokens.Generate(user.ID, user.Contact(), string(user.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	resp := &RegisterResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}
	resp.User.ID = user.ID
	resp.User.FullName = user.FullName
	resp.User.Email = user.Email
	resp.User.Role = string(user.Role)
	resp.User.Status = string(user.Status)
	return resp, nil
}
