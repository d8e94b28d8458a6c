package config

import (
	"time"

	"github.com/spf13/viper"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodySize     = 1 << 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "molsketch"

	DefaultMaxSessions   = 1000
	DefaultIdleTTL       = 30 * time.Minute
	DefaultSweepInterval = time.Minute
	DefaultNotifyTimeout = 2 * time.Second

	DefaultPredictorTimeout   = 30 * time.Second
	DefaultPredictorUserAgent = "molsketch/1.0"

	DefaultCacheAddr     = "localhost:6379"
	DefaultCachePrefix   = "molsketch:"
	DefaultPredictionTTL = 24 * time.Hour

	DefaultKafkaBroker = "localhost:9092"
	DefaultKafkaTopic  = "molsketch.structure-changes"
	DefaultKafkaAcks   = "one"

	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 20

	DefaultWSWriteTimeout = 10 * time.Second
	DefaultWSSendBuffer   = 16
)

// setViperDefaults registers every key with viper so that environment
// overrides are honoured even when no config file mentions the key.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("server.max_body_size", DefaultMaxBodySize)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output_paths", []string{"stdout"})
	v.SetDefault("log.error_output_paths", []string{"stderr"})
	v.SetDefault("log.file.filename", "")
	v.SetDefault("log.file.max_size_mb", 100)
	v.SetDefault("log.file.max_backups", 5)
	v.SetDefault("log.file.max_age_days", 28)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)

	v.SetDefault("sessions.max_sessions", DefaultMaxSessions)
	v.SetDefault("sessions.idle_ttl", DefaultIdleTTL)
	v.SetDefault("sessions.sweep_interval", DefaultSweepInterval)
	v.SetDefault("sessions.notify_timeout", DefaultNotifyTimeout)

	v.SetDefault("predictor.base_url", "")
	v.SetDefault("predictor.timeout", DefaultPredictorTimeout)
	v.SetDefault("predictor.user_agent", DefaultPredictorUserAgent)
	v.SetDefault("predictor.api_key", "")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", DefaultCacheAddr)
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.pool_size", 10)
	v.SetDefault("cache.key_prefix", DefaultCachePrefix)
	v.SetDefault("cache.prediction_ttl", DefaultPredictionTTL)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{DefaultKafkaBroker})
	v.SetDefault("kafka.topic", DefaultKafkaTopic)
	v.SetDefault("kafka.acks", DefaultKafkaAcks)
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("kafka.batch_timeout", 10*time.Millisecond)

	v.SetDefault("websocket.enabled", true)
	v.SetDefault("websocket.write_timeout", DefaultWSWriteTimeout)
	v.SetDefault("websocket.send_buffer", DefaultWSSendBuffer)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_second", DefaultRateLimitRPS)
	v.SetDefault("ratelimit.burst", DefaultRateLimitBurst)
}

// ApplyDefaults fills every zero-value field in cfg with its default.
// Explicitly set fields are left unchanged.  Boolean toggles cannot be told
// apart from an explicit false and are left alone.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	// ── Sessions ──────────────────────────────────────────────────────────────
	if cfg.Sessions.MaxSessions == 0 {
		cfg.Sessions.MaxSessions = DefaultMaxSessions
	}
	if cfg.Sessions.IdleTTL == 0 {
		cfg.Sessions.IdleTTL = DefaultIdleTTL
	}
	if cfg.Sessions.SweepInterval == 0 {
		cfg.Sessions.SweepInterval = DefaultSweepInterval
	}
	if cfg.Sessions.NotifyTimeout == 0 {
		cfg.Sessions.NotifyTimeout = DefaultNotifyTimeout
	}

	// ── Predictor ─────────────────────────────────────────────────────────────
	if cfg.Predictor.Timeout == 0 {
		cfg.Predictor.Timeout = DefaultPredictorTimeout
	}
	if cfg.Predictor.UserAgent == "" {
		cfg.Predictor.UserAgent = DefaultPredictorUserAgent
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.Addr == "" {
		cfg.Cache.Addr = DefaultCacheAddr
	}
	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = DefaultCachePrefix
	}
	if cfg.Cache.PredictionTTL == 0 {
		cfg.Cache.PredictionTTL = DefaultPredictionTTL
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.Acks == "" {
		cfg.Kafka.Acks = DefaultKafkaAcks
	}

	// ── WebSocket ─────────────────────────────────────────────────────────────
	if cfg.WebSocket.WriteTimeout == 0 {
		cfg.WebSocket.WriteTimeout = DefaultWSWriteTimeout
	}
	if cfg.WebSocket.SendBuffer == 0 {
		cfg.WebSocket.SendBuffer = DefaultWSSendBuffer
	}

	// ── CORS ──────────────────────────────────────────────────────────────────
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}

	// ── Rate limit ────────────────────────────────────────────────────────────
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = DefaultRateLimitRPS
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = DefaultRateLimitBurst
	}
}

//Personal.AI order the ending
