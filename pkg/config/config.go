package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultTokenTTL = 30 * time.Second

// Config is the process configuration, loaded once at startup and passed by
// reference into the components that need it. Business logic never reads the
// environment directly.
type Config struct {
	Port         string
	Environment  string
	DatabaseURL  string
	JWTSecret    string
	TokenTTL     time.Duration
	RedisURL     string
	OTLPEndpoint string

	RateLimitEnabled bool
	CacheEnabled     bool
}

// Load reads the environment (plus a dev .env file) and fails when a
// required value is absent. Missing JWT_SECRET or DATABASE_URL is
// startup-fatal by contract, not a runtime error.
func Load() (*Config, error) {
	environment := os.Getenv("APP_ENV")

	if environment == "" {
		environment = "development"
	}

	if environment != "prod" && environment != "production" {
		if err := godotenv.Load(); err != nil {
			slog.Debug("No .env file loaded", "error", err)
		}
	}

	secret := os.Getenv("JWT_SECRET")

	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	databaseURL := os.Getenv("DATABASE_URL")

	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	port := os.Getenv("PORT")

	if port == "" {
		port = "8080"
	}

	ttl := defaultTokenTTL

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)

		if err != nil {
			return nil, errors.New("TOKEN_TTL is not a valid duration")
		}

		ttl = parsed
	}

	return &Config{
		Port:             port,
		Environment:      environment,
		DatabaseURL:      databaseURL,
		JWTSecret:        secret,
		TokenTTL:         ttl,
		RedisURL:         os.Getenv("REDIS_URL"),
		OTLPEndpoint:     os.Getenv("OTLP_ENDPOINT"),
		RateLimitEnabled: os.Getenv("RATE_LIMIT_DISABLED") != "true",
		CacheEnabled:     os.Getenv("CACHE_DISABLED") != "true",
	}, nil
}
