package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// FrontendURL, when set, makes the OAuth callback redirect with
	// ?token= instead of returning JSON.
	FrontendURL string
}

const minJWTSecretLen = 32

// Load reads configuration from the environment. A .env file is loaded
// first when present so local runs match deployed ones.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppPort: getenv("APP_PORT", "8080"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		FrontendURL: os.Getenv("FRONTEND_URL"),
	}

	if cfg.DatabaseDSN == "" {
		return cfg, errors.New("config: DATABASE_DSN is required")
	}
	if len(cfg.JWTSecret) < minJWTSecretLen {
		return cfg, errors.New("config: JWT_SECRET must be at least 32 bytes")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
