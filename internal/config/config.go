package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds application settings outside the database connection.
type Config struct {
	ServerPort string
	CORSOrigin string

	GithubClientID     string
	GithubClientSecret string
	OAuthRedirectURL   string

	StateSecret string
	StateTTL    time.Duration

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
}

// Load reads application configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),

		GithubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GithubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		OAuthRedirectURL:   getEnv("OAUTH_REDIRECT_URL", "http://localhost:8080/api/v1/auth/callback"),

		StateSecret: os.Getenv("STATE_SECRET"),
		StateTTL:    getEnvDuration("STATE_TTL", 10*time.Minute),

		SessionTTL:           getEnvDuration("SESSION_TTL", 30*24*time.Hour),
		SessionSweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", time.Hour),
	}

	if cfg.GithubClientID == "" || cfg.GithubClientSecret == "" {
		return nil, fmt.Errorf("GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET must be set")
	}
	if cfg.StateSecret == "" {
		return nil, fmt.Errorf("STATE_SECRET must be set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
