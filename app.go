package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tds-assistant/config"
	"tds-assistant/repository"
	"tds-assistant/service"
)

// app holds the wired services for one process.
type app struct {
	cfg        *config.Config
	variant    service.Variant
	redis      *redis.Client
	settingsDB repository.SettingsRepository

	calculator *service.CalculatorService
	water      *service.WaterService
	ai         *service.AIService
	settings   *service.SettingsService
	learning   *service.LearningService
}

func newApp(ctx context.Context, logger *zap.Logger) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	variant, err := service.ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, variant: variant}

	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			a.redis.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
	}

	var cache repository.CacheRepository
	if a.redis != nil {
		cache = repository.NewRedisCache(a.redis, "tds:ai:", cfg.AI.CacheTTL)
	} else {
		cache = repository.NewMemoryCache(cfg.AI.CacheTTL)
	}

	switch cfg.Settings.Store {
	case config.StoreRedis:
		a.settingsDB = repository.NewSettingsRedis(a.redis, cfg.Settings.RedisKey)
	case config.StoreMemory:
		a.settingsDB = repository.NewSettingsMemory()
	default:
		if dir := filepath.Dir(cfg.Settings.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				a.close()
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		a.settingsDB, err = repository.NewSettingsSQLite(cfg.Settings.SQLitePath, logger)
		if err != nil {
			a.close()
			return nil, err
		}
	}

	a.calculator = service.NewCalculatorService(service.NewIncomeTaxEngine(), logger)
	a.water = service.NewWaterService(logger)
	a.ai = service.NewAIService(service.AIConfig{
		APIKey:      cfg.AI.APIKey,
		URL:         cfg.AI.URL,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Timeout:     cfg.AI.Timeout,
	}, variant, service.NewVariantResponder(variant), cache, logger)
	a.settings = service.NewSettingsService(a.settingsDB, logger)
	a.learning = service.NewLearningService(variant)

	if !a.ai.Enabled() {
		logger.Info("no API key configured, chat uses local answers only")
	}
	return a, nil
}

func (a *app) newSession(logger *zap.Logger) *service.ChatSession {
	return service.NewChatSession(a.ai, a.variant.Greeting(), logger)
}

func (a *app) close() error {
	var errs []error
	if a.settingsDB != nil {
		errs = append(errs, a.settingsDB.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	return errors.Join(errs...)
}
