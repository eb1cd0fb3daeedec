package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultJWTAccessTTL = "24h"
	defaultRefreshTTL   = "168h"
	defaultOTPTTL       = "5m"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultRedisAddr    = "localhost:6379"
	defaultListenAddr   = ":8081"
)

// RuntimeConfig is everything the user service needs from the environment.
// Secrets and TTLs are server configuration, never request input.
type RuntimeConfig struct {
	AppEnv        string
	ListenAddr    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	JWTAccessTTL  time.Duration
	RefreshTTL    time.Duration
	OTPTTL        time.Duration
}

// ExposeOTP reports whether OTP codes may be echoed in API responses.
// Only enabled outside prod so that flows can be exercised without an SMS
// provider.
func (c *RuntimeConfig) ExposeOTP() bool {
	return !isProdLike(c.AppEnv)
}

func Load() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", "agromart.db"))
	cfg.RedisAddr = strings.TrimSpace(getEnv("REDIS_ADDR", defaultRedisAddr))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}
	cfg.OTPTTL, err = parseDurationEnv("OTP_TTL", defaultOTPTTL)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GatewayConfig is the gateway's slice of the environment: where to listen,
// where the user service lives, and the shared token secret for the
// perimeter filter.
type GatewayConfig struct {
	AppEnv         string
	ListenAddr     string
	UserServiceURL string
	JWTSecret      string
}

func LoadGateway() (*GatewayConfig, error) {
	cfg := &GatewayConfig{
		AppEnv:         strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", "dev"))),
		ListenAddr:     strings.TrimSpace(getEnv("LISTEN_ADDR", ":8080")),
		UserServiceURL: strings.TrimSpace(getEnv("USER_SERVICE_URL", "http://localhost:8081")),
		JWTSecret:      strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
	}
	if cfg.UserServiceURL == "" {
		return nil, fmt.Errorf("USER_SERVICE_URL must not be empty")
	}
	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return nil, fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return cfg, nil
}

func validate(cfg *RuntimeConfig) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TTL must be > 0")
	}
	if cfg.OTPTTL <= 0 {
		return fmt.Errorf("OTP_TTL must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
