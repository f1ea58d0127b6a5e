package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *Config) {
				if cfg.APIURL != "http://localhost:5000" {
					t.Errorf("APIURL = %q", cfg.APIURL)
				}
				if cfg.LogLevel != slog.LevelInfo {
					t.Errorf("LogLevel = %v", cfg.LogLevel)
				}
				if cfg.HTTPTimeout != 0 {
					t.Errorf("HTTPTimeout = %v, want transport default", cfg.HTTPTimeout)
				}
				if cfg.CategoryCacheTTL != 10*time.Minute {
					t.Errorf("CategoryCacheTTL = %v", cfg.CategoryCacheTTL)
				}
				if len(cfg.KafkaBrokers) != 0 {
					t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
				}
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"TRIVIA_API_URL": "http://api.local:8080/",
				"LOG_LEVEL":      "debug",
				"KAFKA_BROKERS":  "k1:9092, k2:9092,",
				"HTTP_TIMEOUT":   "3s",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.APIURL != "http://api.local:8080" {
					t.Errorf("APIURL = %q", cfg.APIURL)
				}
				if cfg.LogLevel != slog.LevelDebug {
					t.Errorf("LogLevel = %v", cfg.LogLevel)
				}
				if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
					t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
				}
				if cfg.HTTPTimeout != 3*time.Second {
					t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
				}
			},
		},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}, wantErr: true},
		{name: "bad url", env: map[string]string{"TRIVIA_API_URL": "not a url"}, wantErr: true},
		{name: "bad environment", env: map[string]string{"ENVIRONMENT": "staging"}, wantErr: true},
		{name: "bad duration", env: map[string]string{"CATEGORY_CACHE_TTL": "soon"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"TRIVIA_API_URL", "LOG_LEVEL", "KAFKA_BROKERS", "HTTP_TIMEOUT",
				"ENVIRONMENT", "CATEGORY_CACHE_TTL", "REDIS_URL", "PORT", "DATABASE_URL"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
