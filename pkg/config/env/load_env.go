package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file. ENV_PATH
// overrides defaultPath. A missing or unreadable file is an error only when
// env is "local" or empty; deployed environments configure the process
// directly. Variables already set are never overwritten.
func LoadDotEnv(env string, defaultPath string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	err := godotenv.Load(envPath)
	if err == nil {
		slog.Debug("Loaded .env file", "path", envPath)
		return nil
	}

	if env == "local" || env == "" {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("No .env file found in local mode", "path", envPath)
		} else {
			slog.Error("Failed to load environment variables in local mode", "path", envPath, "error", err)
		}
		return err
	}
	slog.Debug("Skipping .env ...", "env", env)
	return nil
}
