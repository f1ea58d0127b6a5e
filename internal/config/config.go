package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/SAP-F-2025/trivia-browser/internal/validator"
)

// Config holds settings for both the browser client and the local question store
type Config struct {
	Environment string     `validate:"required,oneof=development production test"`
	LogLevel    slog.Level `validate:"-"`
	LogFile     string

	// Question store API
	APIURL      string        `validate:"required,url"`
	HTTPTimeout time.Duration `validate:"min=0"`

	// Category directory cache
	RedisURL         string
	CategoryCacheTTL time.Duration `validate:"min=0"`

	// Event bus
	KafkaBrokers []string
	NoticeTopic  string `validate:"required"`

	ExportDir string `validate:"required"`

	// Local question store
	Port        string `validate:"required,numeric"`
	DatabaseURL string
}

// LoadConfig reads .env (when present) and the process environment
func LoadConfig() (*Config, error) {
	// .env is optional; the environment always wins
	_ = godotenv.Load()

	cfg := &Config{
		Environment:  valueOrDefault("ENVIRONMENT", "development"),
		LogFile:      valueOrDefault("TRIVIA_LOG_FILE", "trivia-browser.log"),
		APIURL:       strings.TrimRight(valueOrDefault("TRIVIA_API_URL", "http://localhost:5000"), "/"),
		RedisURL:     strings.TrimSpace(os.Getenv("REDIS_URL")),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		NoticeTopic:  valueOrDefault("NOTICE_TOPIC", "trivia.notices"),
		ExportDir:    valueOrDefault("EXPORT_DIR", "."),
		Port:         valueOrDefault("PORT", "5000"),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
	}

	var err error
	if err = cfg.LogLevel.UnmarshalText([]byte(valueOrDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.HTTPTimeout, err = durationOrDefault("HTTP_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.CategoryCacheTTL, err = durationOrDefault("CATEGORY_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var res []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}
