package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/puckline/stats-api/internal/config"
	"github.com/puckline/stats-api/internal/dataset"
	"github.com/puckline/stats-api/internal/handlers"
	"github.com/puckline/stats-api/internal/logic"
	"github.com/puckline/stats-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx := context.Background()

	// One-time blocking setup: load the three CSVs and fit the session.
	paths := dataset.Paths{
		Skaters:  cfg.SkatersCSV,
		Goalies:  cfg.GoaliesCSV,
		Schedule: cfg.ScheduleCSV,
	}
	loader := dataset.NewLoader(paths, cfg.LogDateLayout, logger)
	bundle, err := loader.Load(ctx)
	if err != nil {
		sugar.Fatalw("Dataset load failed", "error", err)
	}
	sess, err := logic.BuildSession(ctx, bundle, logger)
	if err != nil {
		sugar.Fatalw("Session fit failed", "error", err)
	}
	sessions := logic.NewSessionHolder(sess)

	// Optional prediction-response cache.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			sugar.Fatalw("Invalid REDIS_URL", "error", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			sugar.Warnw("Redis unreachable, caching disabled", "error", err)
			redisClient = nil
		}
	}

	h := handlers.New(handlers.Config{
		Logger:     logger,
		Redis:      redisClient,
		Sessions:   sessions,
		CacheTTL:   cfg.CacheTTL,
		Prediction: logic.NewPredictionService(sessions, logger),
		GameLog:    logic.NewGameLogService(sessions, logger),
	})

	refresher := worker.NewRefresher(worker.RefresherConfig{
		Interval: cfg.RefreshInterval,
		Paths:    paths,
		Loader:   loader,
		Sessions: sessions,
		Logger:   logger,
	})
	refresher.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		sugar.Infow("Server listening", "port", cfg.Port, "env", cfg.Env, "session_id", sess.ID)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	sugar.Info("Shutting down")
	refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Shutdown error", "error", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}
}
