package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/bench-history/internal/compare"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/factory"
	"github.com/DjordjeVuckovic/bench-history/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("APP_ENV"),
	}
}

type BenchAPIConfig struct {
	StorageConfig factory.StorageConfig
	Threshold     float64
	LogLevel      slog.Level
}

func (as *AppConfig) Load() (*BenchAPIConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/bench_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	threshold, err := compare.ParseThreshold(os.Getenv("ALERT_THRESHOLD"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALERT_THRESHOLD: %w", err)
	}

	level := slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	return &BenchAPIConfig{
		StorageConfig: *storageCfg,
		Threshold:     threshold,
		LogLevel:      level,
	}, nil
}
