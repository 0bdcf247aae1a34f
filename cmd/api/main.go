package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/overcomingroom/bellbell/internal/config"
	basicHandler "github.com/overcomingroom/bellbell/internal/handler/basicnotification"
	"github.com/overcomingroom/bellbell/internal/handler/health"
	memberHandler "github.com/overcomingroom/bellbell/internal/handler/member"
	"github.com/overcomingroom/bellbell/internal/handler/prometheus"
	notificationHandler "github.com/overcomingroom/bellbell/internal/handler/usernotification"
	weatherHandler "github.com/overcomingroom/bellbell/internal/handler/weather"
	"github.com/overcomingroom/bellbell/internal/middleware"
	"github.com/overcomingroom/bellbell/internal/repository"
	"github.com/overcomingroom/bellbell/internal/repository/postgres"
	"github.com/overcomingroom/bellbell/internal/repository/redis"
	"github.com/overcomingroom/bellbell/internal/router"
	basicService "github.com/overcomingroom/bellbell/internal/service/basicnotification"
	memberService "github.com/overcomingroom/bellbell/internal/service/member"
	notificationService "github.com/overcomingroom/bellbell/internal/service/usernotification"
	weatherService "github.com/overcomingroom/bellbell/internal/service/weather"
	"github.com/overcomingroom/bellbell/pkg/logger"
	"github.com/overcomingroom/bellbell/pkg/metrics"
	"github.com/overcomingroom/bellbell/pkg/migration"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	if cfg.Migration.Auto {
		if err := migration.AutoMigrate(migration.Config{
			MigrationsPath: cfg.Migration.Path,
			DatabaseURL:    cfg.Database.URL(),
		}); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.New("bellbell")

	// Initialize repositories
	base := postgres.NewBaseRepository(db)
	memberRepo := postgres.NewMemberRepository(base)
	var tokenRepo repository.TokenRepository = postgres.NewTokenRepository(base)
	userNotificationRepo := postgres.NewUserNotificationRepository(base)
	basicNotificationRepo := postgres.NewBasicNotificationRepository(base)
	locationRepo := postgres.NewLocationRepository(base)

	if cfg.Redis.Enabled() {
		client, err := redis.NewClient(context.Background(), cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer client.Close()
		tokenRepo = redis.NewTokenRepository(client, tokenRepo, cfg.Redis.TokenTTL, m.TokenCache)
		log.Info().Msg("token cache enabled")
	}

	// Initialize services
	memberSvc := memberService.NewService(memberRepo, tokenRepo)
	userNotificationSvc := notificationService.NewService(userNotificationRepo, memberSvc)
	basicNotificationSvc := basicService.NewService(basicNotificationRepo, memberSvc)
	weatherSvc := weatherService.NewService(locationRepo, memberSvc, weatherService.NewClient(cfg.Weather, m))

	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}

	// Setup router
	r := router.NewRouter(router.Handlers{
		Health:            health.NewHandler(db),
		Metrics:           prometheus.New(m),
		Member:            memberHandler.NewHandler(memberSvc),
		UserNotification:  notificationHandler.NewHandler(userNotificationSvc),
		BasicNotification: basicHandler.NewHandler(basicNotificationSvc),
		Weather:           weatherHandler.NewHandler(weatherSvc),
	}, router.RouterConfig{
		Mode:             cfg.Server.Mode,
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORSConfig:       corsConfig,
		Timeout:          time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	})
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
