package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime option the server recognizes. It is built once
// in main and passed down; nothing else reads the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Upstream UpstreamConfig
	Email    EmailConfig
}

type ServerConfig struct {
	Port        string
	FrontendURL string
}

type DatabaseConfig struct {
	Path string
}

type AuthConfig struct {
	JWTSecret     string
	TokenLifetime time.Duration
	ResetLifetime time.Duration
}

type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend   string
	RedisAddr string
	TTL       time.Duration
}

type UpstreamConfig struct {
	CoinGeckoBaseURL string
	CoinGeckoAPIKey  string
	NewsBaseURL      string
	NewsAPIKey       string
	Timeout          time.Duration
}

type EmailConfig struct {
	SMTPHost string
	SMTPPort string
	User     string
	Password string
	From     string
}

// Load reads a .env file if one exists (local dev) and assembles the Config
// from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "5000"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3001"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./crypto-tracker.db"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenLifetime: getEnvAsDuration("TOKEN_LIFETIME", 7*24*time.Hour),
			ResetLifetime: getEnvAsDuration("RESET_TOKEN_LIFETIME", time.Hour),
		},
		Cache: CacheConfig{
			Backend:   getEnv("CACHE_BACKEND", "memory"),
			RedisAddr: getEnv("REDIS_CONNSTRING", "localhost:6379"),
			TTL:       getEnvAsDuration("CACHE_TTL", 60*time.Second),
		},
		Upstream: UpstreamConfig{
			CoinGeckoBaseURL: getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
			CoinGeckoAPIKey:  getEnv("COINGECKO_API_KEY", ""),
			NewsBaseURL:      getEnv("NEWS_BASE_URL", "https://newsapi.org/v2"),
			NewsAPIKey:       getEnv("NEWS_API_KEY", ""),
			Timeout:          getEnvAsDuration("UPSTREAM_TIMEOUT", 8*time.Second),
		},
		Email: EmailConfig{
			SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort: getEnv("SMTP_PORT", "587"),
			User:     getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
			From:     getEnv("EMAIL_FROM", getEnv("EMAIL_USER", "")),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
