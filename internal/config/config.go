package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Dataset files
	SkatersCSV  string
	GoaliesCSV  string
	ScheduleCSV string

	// Game-log date column layout (Go reference layout)
	LogDateLayout string

	// Background refit
	RefreshInterval time.Duration

	// Optional prediction-response cache
	RedisURL string
	CacheTTL time.Duration
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		LogDateLayout:   getEnv("LOG_DATE_LAYOUT", "01/02/06"),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 0),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.SkatersCSV, err = getEnvRequired("SKATERS_CSV"); err != nil {
		return nil, err
	}
	if cfg.GoaliesCSV, err = getEnvRequired("GOALIES_CSV"); err != nil {
		return nil, err
	}
	if cfg.ScheduleCSV, err = getEnvRequired("SCHEDULE_CSV"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
