package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ai-study-assistant/internal/cache"
	"ai-study-assistant/internal/config"
	"ai-study-assistant/internal/pkg/logger"
	redisClient "ai-study-assistant/internal/platform/redis"
)

// ErrMissingAPIKey aborts startup; a missing credential is a deployment
// problem, never a per-request one.
var ErrMissingAPIKey = errors.New("completion API key not configured (set OPENROUTER_API_KEY or llm.api_key)")

type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Redis   *redisv9.Client
	History cache.HistoryStore

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	log := logger.New(cfg.Log.File, cfg.App.Env == "prod")

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute

	var (
		redisCli *redisv9.Client
		history  cache.HistoryStore
	)
	if cfg.Redis.Enabled {
		redisCli, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		history = cache.NewRedisHistoryStore(redisCli, sessionTTL)
		log.Info("session history backed by redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		history = cache.NewMemoryHistoryStore(sessionTTL)
		log.Info("session history kept in process memory")
	}

	return &App{
		Config:    cfg,
		Logger:    log,
		Redis:     redisCli,
		History:   history,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return closeErr
}
