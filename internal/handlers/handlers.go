package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/puckline/stats-api/internal/logic"
)

type Config struct {
	Logger   *zap.Logger
	Redis    *redis.Client // optional; nil disables response caching
	Sessions *logic.SessionHolder
	CacheTTL time.Duration
	// Services
	Prediction logic.PredictionService
	GameLog    logic.GameLogService
}

type Handler struct {
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	redis      *redis.Client
	sessions   *logic.SessionHolder
	cacheTTL   time.Duration
	prediction logic.PredictionService
	gameLog    logic.GameLogService
	startedAt  time.Time
}

func New(cfg Config) *Handler {
	return &Handler{
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		redis:      cfg.Redis,
		sessions:   cfg.Sessions,
		cacheTTL:   cfg.CacheTTL,
		prediction: cfg.Prediction,
		gameLog:    cfg.GameLog,
		startedAt:  time.Now(),
	}
}
