package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	AdminAPIKey string

	// EventRateLimit is the minimum gap between events from one player.
	// Zero disables the limiter.
	EventRateLimit time.Duration

	RankRecalcCron  string
	RewardSweepCron string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),

		RankRecalcCron:  getEnv("RANK_RECALC_CRON", "@every 10m"),
		RewardSweepCron: getEnv("REWARD_SWEEP_CRON", "@hourly"),
	}

	var err error
	cfg.EventRateLimit, err = time.ParseDuration(getEnv("EVENT_RATE_LIMIT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RATE_LIMIT: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
