// Package main Bench History API
// @title Bench History API
// @version 1.0
// @description Append-only benchmark history behind the data.js chart page
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	_ "github.com/DjordjeVuckovic/bench-history/internal/api/docs"
	"github.com/DjordjeVuckovic/bench-history/internal/api/router"
	apiserver "github.com/DjordjeVuckovic/bench-history/internal/api/server"
	"github.com/DjordjeVuckovic/bench-history/internal/metrics"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/factory"
	"github.com/labstack/echo/v4"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	sCfg, err := apiserver.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := factory.NewStore(context.Background(), &cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create store", "type", cfg.StorageConfig.Type, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close store", "error", err)
		}
	}()
	slog.Info("Store ready", "type", cfg.StorageConfig.Type)

	m := metrics.NewMetrics()

	s := apiserver.New(sCfg, factory.HealthChecker(store)).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*").
		SetupMetrics("/metrics", m)

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Bench History API is running")
	})

	historyRouter := router.NewHistoryRouter(s.Echo, store,
		router.WithThreshold(cfg.Threshold),
		router.WithObserver(m),
	)
	historyRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
