package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Host != "0.0.0.0" || cfg.Port != 8000 {
		t.Errorf("addr defaults: %s", cfg.Addr())
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("cache ttl default = %s", cfg.CacheTTL)
	}
	if cfg.LogMode != "production" {
		t.Errorf("log mode default = %q", cfg.LogMode)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TEENQUIZ_HOST", "127.0.0.1")
	t.Setenv("TEENQUIZ_PORT", "9090")
	t.Setenv("TEENQUIZ_DB", "/tmp/quiz.db")
	t.Setenv("TEENQUIZ_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("TEENQUIZ_CACHE_TTL", "30m")
	t.Setenv("TEENQUIZ_CORS_ORIGINS", "http://localhost:3000, https://app.example.com")
	t.Setenv("TEENQUIZ_LOG_MODE", "development")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.DBPath != "/tmp/quiz.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %s", cfg.CacheTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://app.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.LogMode != "development" {
		t.Errorf("LogMode = %q", cfg.LogMode)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, val string
	}{
		{"TEENQUIZ_PORT", "not-a-port"},
		{"TEENQUIZ_PORT", "70000"},
		{"TEENQUIZ_CACHE_TTL", "yesterday"},
		{"TEENQUIZ_CACHE_TTL", "-5m"},
		{"TEENQUIZ_LOG_MODE", "verbose"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.val, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := FromEnv(); err == nil {
				t.Errorf("%s=%q accepted", tt.key, tt.val)
			}
		})
	}
}
