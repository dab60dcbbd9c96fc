// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Required-variable errors.
var (
	ErrMissingDatabaseURL = errors.New("missing DATABASE_URL environment variable")
	ErrMissingJWTSecret   = errors.New("missing JWT_SECRET environment variable")
)

// Config holds all runtime configuration.
type Config struct {
	Addr               string
	DatabaseURL        string
	JWTSecret          string
	TokenTTL           time.Duration
	SpotifyRedirectURL string
	AllowedOrigins     []string
}

// Load reads configuration from environment variables. DATABASE_URL and
// JWT_SECRET are required; everything else has a development default.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	cfg := &Config{
		Addr:               envOr("ADDR", "127.0.0.1:8080"),
		DatabaseURL:        databaseURL,
		JWTSecret:          secret,
		TokenTTL:           24 * time.Hour,
		SpotifyRedirectURL: envOr("SPOTIFY_REDIRECT_URI", "http://127.0.0.1:4200/callback"),
		AllowedOrigins:     strings.Split(envOr("ALLOWED_ORIGINS", "*"), ","),
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.New("invalid TOKEN_TTL duration")
		}
		cfg.TokenTTL = ttl
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
