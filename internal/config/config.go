// Package config defines the configuration structures for the molsketch
// service and CLI.  No I/O lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// SessionsConfig bounds the editing sessions hosted by the server.
type SessionsConfig struct {
	MaxSessions   int           `mapstructure:"max_sessions"`
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	NotifyTimeout time.Duration `mapstructure:"notify_timeout"`
}

// PredictorConfig points at the remote drug-sensitivity service.  An empty
// BaseURL disables prediction.
type PredictorConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	APIKey    string        `mapstructure:"api_key"`
}

// CacheConfig holds the redis prediction cache parameters.
type CacheConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Addr          string        `mapstructure:"addr"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	PoolSize      int           `mapstructure:"pool_size"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	PredictionTTL time.Duration `mapstructure:"prediction_ttl"`
}

// KafkaConfig holds the change-event stream parameters.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	Acks         string        `mapstructure:"acks"` // none, one or all
	MaxRetries   int           `mapstructure:"max_retries"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
}

type WebSocketConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	SendBuffer   int           `mapstructure:"send_buffer"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig bounds session creation and prediction requests per
// client address.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig      `mapstructure:"server"`
	Log       logging.LogConfig `mapstructure:"log"`
	Metrics   MetricsConfig     `mapstructure:"metrics"`
	Sessions  SessionsConfig    `mapstructure:"sessions"`
	Predictor PredictorConfig   `mapstructure:"predictor"`
	Cache     CacheConfig       `mapstructure:"cache"`
	Kafka     KafkaConfig       `mapstructure:"kafka"`
	WebSocket WebSocketConfig   `mapstructure:"websocket"`
	CORS      CORSConfig        `mapstructure:"cors"`
	RateLimit RateLimitConfig   `mapstructure:"ratelimit"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of a fully-populated Config and
// returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	if c.Server.MaxBodySize < 0 {
		return fmt.Errorf("config: server.max_body_size must be ≥ 0, got %d", c.Server.MaxBodySize)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	if c.Sessions.MaxSessions < 1 {
		return fmt.Errorf("config: sessions.max_sessions must be ≥ 1, got %d", c.Sessions.MaxSessions)
	}
	if c.Sessions.IdleTTL <= 0 {
		return fmt.Errorf("config: sessions.idle_ttl must be positive")
	}

	if c.Predictor.BaseURL != "" {
		u, err := url.Parse(c.Predictor.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: predictor.base_url %q is not an absolute URL", c.Predictor.BaseURL)
		}
	}

	if c.Cache.Enabled {
		if c.Cache.Addr == "" {
			return fmt.Errorf("config: cache.addr is required when the cache is enabled")
		}
		if c.Cache.DB < 0 {
			return fmt.Errorf("config: cache.db must be ≥ 0, got %d", c.Cache.DB)
		}
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("config: ratelimit.requests_per_second must be > 0")
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("config: ratelimit.burst must be ≥ 1, got %d", c.RateLimit.Burst)
		}
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("config: kafka.topic is required when kafka is enabled")
		}
		switch c.Kafka.Acks {
		case "none", "one", "all":
		default:
			return fmt.Errorf("config: kafka.acks must be one of none, one, all, got %q", c.Kafka.Acks)
		}
	}

	return nil
}

//Personal.AI order the ending
