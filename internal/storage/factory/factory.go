package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/bench-history/internal/history"
	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/es"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/file"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/inmem"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/pg"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/sqlite"
	"github.com/DjordjeVuckovic/bench-history/pkg/server"
)

// NewStore creates the storage.Store selected by cfg.Type.
func NewStore(ctx context.Context, cfg *StorageConfig) (storage.Store, error) {
	switch cfg.Type {
	case storage.File:
		if cfg.File == nil {
			return nil, fmt.Errorf("missing file store configuration")
		}
		fc := *cfg.File
		fc.RepoURL = cfg.RepoURL
		fc.MaxItems = cfg.MaxItems
		return file.NewStore(fc)

	case storage.InMem:
		return inmem.NewStore(cfg.RepoURL, history.Options{MaxItems: cfg.MaxItems}), nil

	case storage.SQLite:
		if cfg.SQLite == nil {
			return nil, fmt.Errorf("missing sqlite store configuration")
		}
		sc := *cfg.SQLite
		sc.RepoURL = cfg.RepoURL
		return sqlite.NewStore(ctx, sc)

	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL store configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		s := pg.NewStore(pool, cfg.RepoURL)
		if cfg.Migrate {
			if err := s.Migrate(ctx); err != nil {
				s.Close()
				return nil, err
			}
		}
		return s, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch store configuration")
		}
		ec := *cfg.Es
		ec.RepoURL = cfg.RepoURL
		return es.NewStore(ctx, ec)

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStore), cfg.Type)
	}
}

// HealthChecker returns a checker for stores that depend on a remote service.
func HealthChecker(s storage.Store) server.HealthChecker {
	switch st := s.(type) {
	case *pg.Store:
		return st.HealthChecker()
	case *es.Store:
		return st
	}
	return server.NewOkHealthChecker()
}
