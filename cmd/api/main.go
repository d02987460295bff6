package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/arogyacare/blood-api/internal/config"
	"github.com/arogyacare/blood-api/internal/handler"
	donorHandler "github.com/arogyacare/blood-api/internal/handler/donor"
	profileHandler "github.com/arogyacare/blood-api/internal/handler/profile"
	requestHandler "github.com/arogyacare/blood-api/internal/handler/request"
	"github.com/arogyacare/blood-api/internal/middleware"
	"github.com/arogyacare/blood-api/internal/repository/postgres"
	"github.com/arogyacare/blood-api/internal/router"
	donorService "github.com/arogyacare/blood-api/internal/service/donor"
	profileService "github.com/arogyacare/blood-api/internal/service/profile"
	requestService "github.com/arogyacare/blood-api/internal/service/request"
	"github.com/arogyacare/blood-api/pkg/logger"
	"github.com/arogyacare/blood-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("arogyacare", "blood_api")

	// Repositories
	donorRepo := postgres.NewDonorRepository(db)
	requestRepo := postgres.NewBloodRequestRepository(db)
	profileRepo := postgres.NewBloodProfileRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	donorSvc := donorService.NewService(donorRepo, outboxRepo, cfg.Donor.CacheTTL(), appLogger, appMetrics)
	requestSvc := requestService.NewService(requestRepo, outboxRepo, appLogger)
	profileSvc := profileService.NewService(profileRepo)

	// Handlers
	h := handler.NewHandler(db)
	donorH := donorHandler.NewHandler(donorSvc)
	requestH := requestHandler.NewHandler(requestSvc)
	profileH := profileHandler.NewHandler(profileSvc)

	r := router.NewRouter(donorH, requestH, profileH, h, router.Config{
		RateLimit:     rate.Limit(cfg.Server.RateLimit),
		RateBurst:     cfg.Server.RateBurst,
		Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "blood_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
