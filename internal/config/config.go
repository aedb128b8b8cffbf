// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"TMS_DB_PATH" envDefault:"./data/tms.db"`
	ServerHost string `env:"TMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"TMS_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"TMS_ENV" envDefault:"development"`
	LogLevel   string `env:"TMS_LOG_LEVEL" envDefault:"info"`

	// Translation provider configuration
	OpenAIAPIKey string `env:"TMS_OPENAI_API_KEY"` // Empty disables the generation pipeline
	OpenAIModel  string `env:"TMS_OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Generation pipeline tuning
	BatchSize         int `env:"TMS_BATCH_SIZE" envDefault:"10"`    // Texts per provider call
	ItemDelayMs       int `env:"TMS_ITEM_DELAY_MS" envDefault:"50"` // Inter-item delay for retroactive generation
	ProviderMaxTokens int `env:"TMS_PROVIDER_MAX_TOKENS" envDefault:"2000"`

	// Cache configuration
	RedisURL    string `env:"TMS_REDIS_URL"`                      // Optional Redis URL for distributed caching
	CachePrefix string `env:"TMS_CACHE_PREFIX" envDefault:"tms:"` // Redis key prefix
	CacheTTL    int    `env:"TMS_CACHE_TTL" envDefault:"3600"`    // Default cache TTL in seconds

	// Monitoring
	MonitorSchedule string `env:"TMS_MONITOR_SCHEDULE" envDefault:"0 2 * * *"` // Completeness assessment cron

	// Seeding configuration
	DoSeed bool `env:"TMS_DO_SEED" envDefault:"true"` // Seed default languages and UI labels on start
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// ProviderEnabled returns true if the translation provider is configured.
func (c Config) ProviderEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// ItemDelay returns the inter-item delay as a duration.
func (c Config) ItemDelay() time.Duration {
	return time.Duration(c.ItemDelayMs) * time.Millisecond
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.BatchSize < 1 {
		return nil, fmt.Errorf("TMS_BATCH_SIZE must be at least 1, got %d", cfg.BatchSize)
	}
	if cfg.ItemDelayMs < 0 {
		return nil, fmt.Errorf("TMS_ITEM_DELAY_MS must not be negative, got %d", cfg.ItemDelayMs)
	}

	return cfg, nil
}
