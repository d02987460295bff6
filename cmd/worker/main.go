package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arogyacare/blood-api/internal/config"
	"github.com/arogyacare/blood-api/internal/repository/postgres"
	"github.com/arogyacare/blood-api/pkg/logger"
	redisbroker "github.com/arogyacare/blood-api/pkg/messaging/redis"
	"github.com/arogyacare/blood-api/pkg/metrics"
	"github.com/arogyacare/blood-api/pkg/worker"
)

// WorkerConfig is read from the environment; the worker runs headless
// in the same deployment as the API and shares its yaml config for the
// database and broker only.
type WorkerConfig struct {
	BatchSize       int           `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	PollInterval    time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	RetryAttempts   int           `envconfig:"OUTBOX_RETRY_ATTEMPTS" default:"3"`
	RetryDelay      time.Duration `envconfig:"OUTBOX_RETRY_DELAY" default:"1s"`
	MetricsPort     int           `envconfig:"METRICS_PORT" default:"9090"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func main() {
	var workerCfg WorkerConfig
	if err := envconfig.Process("", &workerCfg); err != nil {
		log.Fatal().Err(err).Msg("failed to process worker configuration")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)
	workerMetrics := metrics.NewMetrics("arogyacare", "blood_worker")

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     workerCfg.BatchSize,
		PollInterval:  workerCfg.PollInterval,
		RetryAttempts: workerCfg.RetryAttempts,
		RetryDelay:    workerCfg.RetryDelay,
	}, logger.NewLogger(nil), workerMetrics)

	ctx, cancel := context.WithCancel(context.Background())
	go processor.Start(ctx)

	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", workerCfg.MetricsPort),
		Handler: promhttp.Handler(),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down worker...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), workerCfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("metrics server forced to shutdown")
	}

	log.Info().Msg("worker exited properly")
}
