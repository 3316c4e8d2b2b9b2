package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cognisync/cognisync-api/internal/config"
	"github.com/cognisync/cognisync-api/internal/database"
	"github.com/cognisync/cognisync-api/internal/logger"
	"github.com/cognisync/cognisync-api/internal/repository"
	"github.com/cognisync/cognisync-api/internal/security"
	"github.com/cognisync/cognisync-api/internal/server"
	"github.com/cognisync/cognisync-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, dotenvLoaded := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)
	if !dotenvLoaded {
		zlog.Info("no .env file found, using process environment")
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Run migrations
	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Token revocation is only available with redis
	var denylist security.Denylist
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			zlog.Fatal("failed to connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		denylist = security.NewRedisDenylist(rdb, "cognisync:revoked:")
		zlog.Info("token revocation enabled", zap.String("addr", cfg.RedisAddr))
	}

	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, denylist)
	hasher := security.NewPasswordHasher(cfg.HashConcurrency)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)

	// Services
	svc := server.Services{
		Tokens:    tokens,
		Auth:      services.NewAuthService(userRepo, hasher, tokens),
		Users:     services.NewUserService(userRepo, feedbackRepo),
		Tasks:     services.NewTaskService(taskRepo, userRepo, services.NewLoadEstimator(cfg.OpenAIAPIKey, cfg.OpenAIModel, zlog)),
		Schedules: services.NewScheduleService(scheduleRepo, userRepo),
		Feedback:  services.NewFeedbackService(feedbackRepo),
		Calendar:  services.NewCalendarService(calendarRepo),
		Insights:  services.NewInsightService(),
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.NewRouter(svc, zlog, cfg.CORSAllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("could not listen", zap.String("port", cfg.Port), zap.Error(err))
		}
	}()

	<-stop

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
		return
	}
	zlog.Info("server stopped")
}
