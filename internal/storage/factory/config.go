package factory

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/DjordjeVuckovic/bench-history/internal/benchdata"
	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/es"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/file"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/pg"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/sqlite"
	"github.com/DjordjeVuckovic/bench-history/pkg/utils"
)

type StorageConfig struct {
	storage.Type
	RepoURL  string
	MaxItems int

	File    *file.Config
	SQLite  *sqlite.Config
	Pg      *pg.PoolConfig
	Migrate bool
	Es      *es.ClientConfig
}

// LoadEnv reads the store selection from the environment. STORAGE_TYPE
// defaults to the data.js file store.
func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		storageType = storage.File
	}
	if !slices.Contains(storage.Types, storageType) {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			storage.Types)
	}

	cfg := &StorageConfig{
		Type:    storageType,
		RepoURL: os.Getenv("REPO_URL"),
	}

	if v := os.Getenv("MAX_ITEMS_IN_CHART"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid MAX_ITEMS_IN_CHART value: %q", v)
		}
		cfg.MaxItems = n
	}

	switch storageType {
	case storage.File:
		path := os.Getenv("DATA_FILE")
		if path == "" {
			path = benchdata.FileName
		}
		cfg.File = &file.Config{
			Path:  path,
			Watch: os.Getenv("DATA_FILE_WATCH") == "true",
		}

	case storage.SQLite:
		cfg.SQLite = &sqlite.Config{Path: os.Getenv("SQLITE_PATH")}
		if cfg.SQLite.Path == "" {
			slog.Error("SQLite path is not set")
			return nil, fmt.Errorf("SQLITE_PATH environment variable is not set")
		}

	case storage.PG:
		cfg.Pg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		cfg.Migrate = os.Getenv("PG_MIGRATE") == "true"

	case storage.ES:
		addresses := os.Getenv("ES_ADDRESSES")
		cfg.Es = &es.ClientConfig{
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		cfg.Es.Addresses = utils.SplitTrim(addresses, ",")
		if len(cfg.Es.Addresses) == 0 || cfg.Es.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses, "indexName", cfg.Es.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	}

	return cfg, nil
}
