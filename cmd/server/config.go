package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppLogger installs the JSON logger at the configured level and logs
// what was loaded. Secrets are reported only as present or absent.
func setupAppLogger(cfg *config.Config) *slog.Logger {
	l := logger.Setup(logger.LoggerConfig{
		Level:  cfg.Server.LogLevel,
		Output: os.Stderr,
	})

	l.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))
	l.Debug("secrets configured",
		slog.Bool("database_url_present", cfg.Database.URL != ""),
		slog.Bool("jwt_secret_present", cfg.Auth.JWTSecret != ""))

	return l
}
