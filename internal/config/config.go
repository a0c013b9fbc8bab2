// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers .env, YAML and environment on top.
// - Field validation is declared with struct tags and checked in Validate.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// Addr configures the admin HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// Discord wiring. Only required by the bot runtime.
	DiscordToken     string `koanf:"discord_token"`
	GuildID          string `koanf:"guild_id"`
	TicketChannelID  string `koanf:"ticket_channel_id"`
	TicketCategoryID string `koanf:"ticket_category_id"`
	StaffRoleID      string `koanf:"staff_role_id"`
	BrandName        string `koanf:"brand_name" validate:"required"`

	// Upstream pricing site.
	BaseURL          string  `koanf:"base_url" validate:"required,url"`
	AppID            string  `koanf:"app_id" validate:"required,numeric"`
	UserAgent        string  `koanf:"user_agent" validate:"required"`
	RequestTimeoutMS int     `koanf:"request_timeout_ms" validate:"min=100"`
	ResolveTimeoutMS int     `koanf:"resolve_timeout_ms" validate:"min=100"`
	MaxRetries       int     `koanf:"max_retries" validate:"min=0,max=1"`
	ForceHTTP1       bool    `koanf:"force_http1"`
	ProxyURL         string  `koanf:"proxy_url" validate:"omitempty,url"`
	RateLimitRPS     float64 `koanf:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst   int     `koanf:"rate_limit_burst" validate:"min=1"`

	// Resolution policy.
	FallbackThreshold int `koanf:"fallback_threshold" validate:"min=0"`
	MaxCandidates     int `koanf:"max_candidates" validate:"min=1,max=25"`
	MaxQueryLength    int `koanf:"max_query_length" validate:"min=1,max=100"`

	// WorkerCount sets the number of resolution workers.
	WorkerCount int `koanf:"worker_count" validate:"min=1"`

	// QueueSize bounds the resolution job queue.
	QueueSize int `koanf:"queue_size" validate:"min=1"`

	// DedupeSize bounds the interaction redelivery guard.
	DedupeSize int `koanf:"dedupe_size" validate:"min=0"`

	// SessionTTLMinutes expires idle ticket sessions.
	SessionTTLMinutes int `koanf:"session_ttl_minutes" validate:"min=1"`

	// Optional redis cache for resolution results. Empty address disables it.
	RedisAddr       string `koanf:"redis_addr"`
	RedisPassword   string `koanf:"redis_password"`
	RedisDB         int    `koanf:"redis_db" validate:"min=0"`
	CacheTTLSeconds int    `koanf:"cache_ttl_seconds" validate:"min=1"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		BrandName:         "Xentee",
		BaseURL:           "https://pricempire.com",
		AppID:             "730",
		UserAgent:         "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121 Safari/537.36",
		RequestTimeoutMS:  9000,
		ResolveTimeoutMS:  10000,
		MaxRetries:        0,
		RateLimitRPS:      2,
		RateLimitBurst:    2,
		FallbackThreshold: 3,
		MaxCandidates:     15,
		MaxQueryLength:    80,
		WorkerCount:       4,
		QueueSize:         64,
		DedupeSize:        10_000,
		SessionTTLMinutes: 180,
		CacheTTLSeconds:   600,
	}
}

// RequestTimeout is the per-request upstream timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// ResolveTimeout is the wall-clock ceiling of one resolution.
func (c *Config) ResolveTimeout() time.Duration {
	return time.Duration(c.ResolveTimeoutMS) * time.Millisecond
}

// SessionTTL is the idle lifetime of a ticket session.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// CacheTTL is the lifetime of a cached resolution.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
