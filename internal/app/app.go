package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/reflective-room/internal/repository"
	"github.com/noah-isme/reflective-room/internal/service"
	"github.com/noah-isme/reflective-room/pkg/cache"
	"github.com/noah-isme/reflective-room/pkg/config"
	"github.com/noah-isme/reflective-room/pkg/gemini"
)

// Build opens every backing collaborator named by cfg. Optional collaborators
// that fail to start are logged and left out rather than failing startup.
func Build(ctx context.Context, cfg *config.Config, logr *zap.Logger) (Dependencies, func(), error) {
	deps := Dependencies{}
	var closers []func() error

	if cfg.Metrics.Enabled {
		deps.Metrics = service.NewMetricsService()
	}

	var observer repository.Observer
	if deps.Metrics != nil {
		observer = deps.Metrics
	}
	store, err := OpenStore(ctx, cfg, observer, logr)
	if err != nil {
		return Dependencies{}, nil, err
	}
	deps.Store = store
	closers = append(closers, store.Close)

	if cfg.Store.AutoMigrate {
		if migrated, err := store.Migrate(ctx); err != nil {
			logr.Warn("record store migration skipped", zap.Error(err))
		} else if migrated {
			logr.Info("record store migrated to the canonical layout")
		}
	}

	deps.Sessions = repository.NewMemorySessionRepository()
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, keeping sessions in memory", zap.Error(err))
		} else {
			sessions := repository.NewRedisSessionRepository(client)
			deps.Sessions = sessions
			closers = append(closers, sessions.Close)
		}
	}

	if cfg.Reflection.Enabled || cfg.Speech.Enabled {
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:      cfg.Reflection.APIKey,
			TextModel:   cfg.Reflection.Model,
			SpeechModel: cfg.Speech.Model,
			Voice:       cfg.Speech.Voice,
		})
		if err != nil {
			logr.Warn("gemini client unavailable, reflections and audio disabled", zap.Error(err))
		} else {
			if cfg.Reflection.Enabled {
				deps.Reflector = client
			}
			if cfg.Speech.Enabled {
				deps.Speaker = client
			}
		}
	}

	cleanup := func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				logr.Warn("shutdown close failed", zap.Error(err))
			}
		}
	}
	return deps, cleanup, nil
}
