package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/reflective-room/internal/app"
	"github.com/noah-isme/reflective-room/pkg/config"
	"github.com/noah-isme/reflective-room/pkg/logger"
)

// @title Reflective Room API
// @version 1.0.0
// @description Community poetry submissions, reflections, posters and curation
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, cleanup, err := app.Build(context.Background(), cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open record store", "error", err)
	}
	defer cleanup()

	r := app.NewRouter(cfg, logr, deps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Errorw("server failed", "error", err)
	}
}
