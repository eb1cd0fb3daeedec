package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:"

// Ledger stores one-time passcodes in Redis, keyed by the login identifier
// (phone or email). At most one live code exists per identifier; expiry is
// enforced by Redis TTL eviction, and a successful verify consumes the code.
type Ledger struct {
	redis redis.UniversalClient
	ttl   time.Duration
}

func NewLedger(redisClient redis.UniversalClient, ttl time.Duration) *Ledger {
	return &Ledger{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Generate draws a 6-digit code from crypto/rand. The range starts at
// 100000 so a code can never carry a leading zero.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("otp: %w", err)
	}
	return fmt.Sprintf("%d", 100000+n.Int64()), nil
}

// Store upserts the code for the identifier, replacing any prior live code
// and restarting the TTL.
func (l *Ledger) Store(ctx context.Context, identifier, code string) error {
	return l.redis.Set(ctx, keyPrefix+identifier, code, l.ttl).Err()
}

// Verify compares the submitted code against the stored one. A missing key
// fails closed: it covers both never-issued and already-evicted codes. On a
// match the record is deleted so the code is single-use; on a mismatch the
// record stays, allowing retries until the TTL runs out.
func (l *Ledger) Verify(ctx context.Context, identifier, submitted string) (bool, error) {
	key := keyPrefix + identifier
	stored, err := l.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != submitted {
		return false, nil
	}
	if err := l.redis.Del(ctx, key).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// HasLive reports whether an unexpired code exists for the identifier.
// Used to refuse rapid resend requests.
func (l *Ledger) HasLive(ctx context.Context, identifier string) (bool, error) {
	n, err := l.redis.Exists(ctx, keyPrefix+identifier).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
