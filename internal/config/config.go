package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the full service configuration, loaded from the environment
// (optionally seeded from a .env file).
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	KafkaBrokers []string

	JWTSecret      string
	GoogleClientID string

	SendGridAPIKey string
	SenderName     string
	SenderEmail    string

	FrontendURL  string
	CookieDomain string
	CookieSecure bool
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		SenderName:     getEnv("SENDER_NAME", "EduLane LMS"),
		SenderEmail:    getEnv("SENDER_EMAIL", "no-reply@edulane.io"),

		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		CookieDomain: os.Getenv("COOKIE_DOMAIN"),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
