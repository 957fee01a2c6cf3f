package main

import (
	"context"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/reflective-room/internal/app"
	"github.com/noah-isme/reflective-room/pkg/config"
	"github.com/noah-isme/reflective-room/pkg/logger"
)

type storeOpener func(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*app.Store, error)

type commandContext struct {
	backendFlag string

	loadConfig func() (*config.Config, error)
	openStore  storeOpener

	configOnce sync.Once
	config     *config.Config
	configErr  error
	logger     *zap.Logger
}

func newCommandContext() *commandContext {
	return &commandContext{
		loadConfig: config.Load,
		openStore: func(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*app.Store, error) {
			return app.OpenStore(ctx, cfg, nil, logr)
		},
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := c.loadConfig()
		if err != nil {
			c.configErr = err
			return
		}
		if backend := strings.ToLower(strings.TrimSpace(c.backendFlag)); backend != "" {
			cfg.Store.Backend = backend
		}
		logr, err := logger.New(cfg)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logr
	})
	return c.config, c.configErr
}

func (c *commandContext) withStore(cmd *cobra.Command, fn func(*app.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := c.openStore(cmd.Context(), cfg, c.logger)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
