// Package config loads service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the service settings. Every field has a working default
// so the binary runs with no file and no environment at all.
type Config struct {
	Port          string  `yaml:"port"`
	DatabaseURL   string  `yaml:"databaseUrl"`
	RedisURL      string  `yaml:"redisUrl"`
	AuthMode      string  `yaml:"authMode"`
	RateRPS       float64 `yaml:"rateRps"`
	RateBurst     int     `yaml:"rateBurst"`
	WindowStart   float64 `yaml:"windowStart"`
	WindowEnd     float64 `yaml:"windowEnd"`
	WebhookMaxAttempts int `yaml:"webhookMaxAttempts"`
}

func defaults() Config {
	return Config{
		Port:        "8080",
		AuthMode:    "dev",
		RateRPS:     10,
		RateBurst:   20,
		WindowStart: 0,
		WindowEnd:   24,
		WebhookMaxAttempts: 10,
	}
}

// Load reads the config file named by SATCOVER_CONFIG (or satcover.yaml
// if present), then applies environment overrides on top.
func Load() (Config, error) {
	cfg := defaults()
	path := os.Getenv("SATCOVER_CONFIG")
	if path == "" {
		if _, err := os.Stat("satcover.yaml"); err == nil {
			path = "satcover.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" { cfg.Port = v }
	if v := os.Getenv("DATABASE_URL"); v != "" { cfg.DatabaseURL = v }
	if v := os.Getenv("REDIS_URL"); v != "" { cfg.RedisURL = v }
	if v := os.Getenv("AUTH_MODE"); v != "" { cfg.AuthMode = v }
	if v := os.Getenv("RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil { cfg.RateRPS = f }
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil { cfg.RateBurst = n }
	}
	if v := os.Getenv("WEBHOOK_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil { cfg.WebhookMaxAttempts = n }
	}
}
