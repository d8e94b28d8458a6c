// Command apiserver hosts molecule editing sessions over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	appPred "github.com/turtacn/molsketch/internal/application/prediction"
	appSketch "github.com/turtacn/molsketch/internal/application/sketch"
	"github.com/turtacn/molsketch/internal/config"
	domainPred "github.com/turtacn/molsketch/internal/domain/prediction"
	domainSketch "github.com/turtacn/molsketch/internal/domain/sketch"
	"github.com/turtacn/molsketch/internal/infrastructure/database/redis"
	"github.com/turtacn/molsketch/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molsketch/internal/infrastructure/notification"
	httpserver "github.com/turtacn/molsketch/internal/interfaces/http"
	"github.com/turtacn/molsketch/internal/interfaces/http/handlers"
	"github.com/turtacn/molsketch/internal/interfaces/http/middleware"
	"github.com/turtacn/molsketch/pkg/client"
)

// Build-time variables injected via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("API server exited with error", logging.Err(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting molsketch API server",
		logging.String("version", version),
		logging.String("addr", cfg.Server.Addr()))

	// ── Metrics ─────────────────────────────────────────────────────────────
	collector := prometheus.NewNopCollector()
	if cfg.Metrics.Enabled {
		c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return fmt.Errorf("metrics collector: %w", err)
		}
		collector = c
	}
	metrics := prometheus.NewAppMetrics(collector)

	// ── Change notification ─────────────────────────────────────────────────
	notifiers := []domainSketch.Notifier{notification.NewLogNotifier(logger)}

	var hub *notification.WebSocketHub
	if cfg.WebSocket.Enabled {
		hubCfg := notification.HubConfig{
			WriteTimeout: cfg.WebSocket.WriteTimeout,
			SendBuffer:   cfg.WebSocket.SendBuffer,
		}
		if slices.Contains(cfg.CORS.AllowedOrigins, "*") {
			hubCfg.CheckOrigin = func(*http.Request) bool { return true }
		}
		hub = notification.NewWebSocketHub(hubCfg, logger)
		notifiers = append(notifiers, hub)
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Acks:         cfg.Kafka.Acks,
			MaxRetries:   cfg.Kafka.MaxRetries,
			BatchTimeout: cfg.Kafka.BatchTimeout,
		}, logger.Named("kafka"))
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		notifiers = append(notifiers, notification.NewKafkaNotifier(producer, cfg.Kafka.Topic))
		logger.Info("Publishing structure changes to Kafka", logging.String("topic", cfg.Kafka.Topic))
	}

	// ── Sessions ────────────────────────────────────────────────────────────
	manager := appSketch.NewManager(appSketch.Config{
		MaxSessions:   cfg.Sessions.MaxSessions,
		IdleTTL:       cfg.Sessions.IdleTTL,
		SweepInterval: cfg.Sessions.SweepInterval,
		NotifyTimeout: cfg.Sessions.NotifyTimeout,
	},
		appSketch.WithNotifiers(notifiers...),
		appSketch.WithMetrics(metrics),
		appSketch.WithLogger(logger))
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Warn("Failed to close session manager", logging.Err(err))
		}
	}()
	go manager.Run(ctx)

	checkers := []handlers.HealthChecker{&sessionsHealthAdapter{manager: manager, limit: cfg.Sessions.MaxSessions}}

	// ── Prediction ──────────────────────────────────────────────────────────
	predOpts := []appPred.Option{appPred.WithMetrics(metrics), appPred.WithLogger(logger)}
	if cfg.Cache.Enabled {
		rc, err := redis.NewClient(&redis.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			PoolSize: cfg.Cache.PoolSize,
		}, logger)
		if err != nil {
			// Predictions still work uncached.
			logger.Warn("Prediction cache unavailable", logging.String("addr", cfg.Cache.Addr), logging.Err(err))
		} else {
			defer rc.Close()
			cache := redis.NewRedisCache(rc, logger,
				redis.WithPrefix(cfg.Cache.KeyPrefix),
				redis.WithDefaultTTL(cfg.Cache.PredictionTTL),
				redis.WithLookupObserver(func(result string) { prometheus.RecordCacheLookup(metrics, result) }))
			predOpts = append(predOpts, appPred.WithCache(cache, cfg.Cache.PredictionTTL))
			checkers = append(checkers, &redisHealthAdapter{client: rc})
		}
	}
	predService := appPred.NewService(newPredictor(cfg.Predictor, logger), predOpts...)

	// ── HTTP ────────────────────────────────────────────────────────────────
	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORS.AllowedOrigins
	cors.AllowWildcard = true

	routerCfg := httpserver.RouterConfig{
		PredictionHandler: handlers.NewPredictionHandler(predService, logger),
		NotationHandler:   handlers.NewNotationHandler(metrics, logger),
		HealthHandler:     handlers.NewHealthHandler(version, checkers...),
		CORS:              &cors,
		Logging:           middleware.DefaultLoggingConfig(),
		MaxBodySize:       cfg.Server.MaxBodySize,
		Logger:            logger,
		Metrics:           metrics,
	}
	var streamer handlers.EventStreamer
	if hub != nil {
		streamer = hub
	}
	routerCfg.SessionHandler = handlers.NewSessionHandler(manager, streamer, logger)
	if cfg.Metrics.Enabled {
		routerCfg.MetricsCollector = collector
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewTokenBucketLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, 5*time.Minute)
		defer limiter.Stop()
		routerCfg.RateLimiter = limiter
	}

	server := httpserver.NewServer(httpserver.ServerConfig{
		Addr:            cfg.Server.Addr(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, httpserver.NewRouter(routerCfg), logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received")
	if err := server.Stop(context.Background()); err != nil {
		logger.Error("HTTP server shutdown error", logging.Err(err))
	}
	logger.Info("API server stopped")
	return nil
}

// newPredictor returns nil when no predictor is configured; prediction
// requests then fail with PRED_006.
func newPredictor(cfg config.PredictorConfig, logger logging.Logger) domainPred.Predictor {
	if cfg.BaseURL == "" {
		logger.Warn("No predictor configured, prediction endpoints are disabled")
		return nil
	}
	opts := []client.Option{client.WithTimeout(cfg.Timeout), client.WithUserAgent(cfg.UserAgent)}
	if cfg.APIKey != "" {
		opts = append(opts, client.WithAPIKey(cfg.APIKey))
	}
	c, err := client.NewClient(cfg.BaseURL, opts...)
	if err != nil {
		logger.Warn("Invalid predictor configuration", logging.Err(err))
		return nil
	}
	return appPred.NewClientPredictor(c)
}

//Personal.AI order the ending
