package token

import (
	"errors"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Validation failures are classified so callers can distinguish an expired
// token from a tampered or garbled one.
var (
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMalformed        = errors.New("token malformed")
)

// Service signs and verifies the platform's bearer tokens. The subject is
// always the user ID; contact and role travel as claims. Contact is carried
// for header propagation and logging only and must never be used as the
// authorization key on its own.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type Claims struct {
	Contact string `json:"contact,omitempty"`
	Role    string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

func New(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *Service) AccessTTL() time.Duration { return s.accessTTL }

// Generate issues an access token for the given identity.
func (s *Service) Generate(userID int64, contact, role string) (string, error) {
	return s.sign(Claims{
		Contact: contact,
		Role:    role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   formatUserID(userID),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(s.accessTTL)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	})
}

// GenerateRefresh issues a refresh token carrying only the subject.
func (s *Service) GenerateRefresh(userID int64) (string, error) {
	return s.sign(Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   formatUserID(userID),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(s.refreshTTL)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	})
}

func (s *Service) sign(claims Claims) (string, error) {
	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate parses and verifies a token, returning its claims. The error is
// one of ErrExpired, ErrInvalidSignature, or ErrMalformed.
func (s *Service) Validate(tokenStr string) (*Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwtlib.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !parsed.Valid {
		return nil, ErrMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrMalformed
	}
	return claims, nil
}

// UserID returns the numeric subject, failing with ErrMalformed when the
// subject claim is absent or not a number.
func (c *Claims) UserID() (int64, error) {
	if c.Subject == "" {
		return 0, ErrMalformed
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrMalformed
	}
	return id, nil
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}
