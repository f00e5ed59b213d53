package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/katiamach/meteostat-client/internal/api"
	"github.com/katiamach/meteostat-client/internal/config"
	"github.com/katiamach/meteostat-client/internal/logger"
	"github.com/katiamach/meteostat-client/internal/scheduler"
	"github.com/katiamach/meteostat-client/internal/service"
	"github.com/katiamach/meteostat-client/pkg/meteostat"
)

func main() {
	// A missing .env file is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to load config: %v", err))
	}
	logger.SetLevel(cfg.LogLevel)

	opts := []meteostat.Option{meteostat.WithRefreshTTL(cfg.RefreshTTL)}
	if cfg.CacheDir != "" {
		opts = append(opts, meteostat.WithCacheDir(cfg.CacheDir))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, meteostat.WithBaseURL(cfg.BaseURL))
	}

	client, err := meteostat.New(context.Background(), opts...)
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to create meteostat client: %v", err))
	}

	weatherService := service.New(client)

	refreshJob := scheduler.New(weatherService, cfg.StationsRefresh)
	if err := refreshJob.Start(); err != nil {
		logger.Fatal(fmt.Errorf("failed to start refresh scheduler: %v", err))
	}
	defer refreshJob.Stop()

	if err := api.RunAPI(cfg, weatherService); err != nil {
		logger.Fatal(fmt.Errorf("failed to run meteostat api: %v", err))
	}
}
