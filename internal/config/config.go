// Package config assembles application configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/teenquiz/internal/llm"
	"github.com/abhisek/teenquiz/internal/store"
)

// Config holds all application configuration.
type Config struct {
	// Host and Port describe the HTTP listen address.
	Host string
	Port int

	// DBPath is the SQLite database file location.
	DBPath string

	// RedisURL enables the Redis cache tier when set.
	RedisURL string
	// CacheTTL is how long chat responses stay cached. Default: 1h.
	CacheTTL time.Duration

	// CORSOrigins lists allowed origins; empty means allow all.
	CORSOrigins []string

	// LogMode selects zap's production or development output.
	// Values: "production", "development"
	LogMode string

	LLM llm.Config
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Host:     "0.0.0.0",
		Port:     8000,
		CacheTTL: time.Hour,
		LogMode:  "production",
		LLM:      llm.DefaultConfig(),
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values. A .env file in the working directory is
// loaded first when present; real environment variables win over it.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if h := os.Getenv("TEENQUIZ_HOST"); h != "" {
		cfg.Host = h
	}
	if p := os.Getenv("TEENQUIZ_PORT"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 65535 {
			return cfg, fmt.Errorf("invalid TEENQUIZ_PORT %q", p)
		}
		cfg.Port = n
	}
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return cfg, err
	}
	cfg.DBPath = dbPath
	if u := os.Getenv("TEENQUIZ_REDIS_URL"); u != "" {
		cfg.RedisURL = u
	} else if u := os.Getenv("REDIS_URL"); u != "" {
		cfg.RedisURL = u
	}
	if t := os.Getenv("TEENQUIZ_CACHE_TTL"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid TEENQUIZ_CACHE_TTL %q", t)
		}
		cfg.CacheTTL = d
	}
	if o := os.Getenv("TEENQUIZ_CORS_ORIGINS"); o != "" {
		cfg.CORSOrigins = splitCSV(o)
	}
	if m := os.Getenv("TEENQUIZ_LOG_MODE"); m != "" {
		if m != "production" && m != "development" {
			return cfg, fmt.Errorf("invalid TEENQUIZ_LOG_MODE %q: use production or development", m)
		}
		cfg.LogMode = m
	}

	cfg.LLM = llm.ConfigFromEnv()
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
